package jwt

import (
	"time"
)

// TokenConfig holds the configuration for access tokens
type TokenConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}
