package jwt

import (
	"time"
)

// Option is a function that configures TokenConfig
type Option func(*TokenConfig)

// WithAccessTokenSecret sets the HMAC signing secret
func WithAccessTokenSecret(secret string) Option {
	return func(c *TokenConfig) {
		c.AccessTokenSecret = secret
	}
}

// WithAccessTokenExpiry sets the access token lifetime; zero keeps the default
func WithAccessTokenExpiry(expiry time.Duration) Option {
	return func(c *TokenConfig) {
		if expiry > 0 {
			c.AccessTokenExpiry = expiry
		}
	}
}

// WithIssuer sets the issuer written into and required from tokens
func WithIssuer(issuer string) Option {
	return func(c *TokenConfig) {
		c.Issuer = issuer
	}
}
