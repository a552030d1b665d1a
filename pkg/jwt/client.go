// Package jwt issues and validates the HS256 access tokens that carry the caller identity
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	// TokenTypeAccess marks tokens accepted by ValidateAccessToken
	TokenTypeAccess = "access"

	// DefaultIssuer is used when no issuer is configured
	DefaultIssuer = "procurement-service"
)

var (
	ErrAccessTokenSecretRequired = errors.New("access token secret is required")
	ErrInvalidTokenType          = errors.New("invalid token type")
	ErrInvalidToken              = errors.New("invalid token")
	ErrMissingSubject            = errors.New("token has no subject")
)

// TokenClaims represents the claims in an access token
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTClient defines the interface for JWT token operations
type JWTClient interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
	GetAccessTokenExpiry() time.Duration
}

// Client represents a JWT client that handles token operations
type Client struct {
	config TokenConfig
	now    func() time.Time
}

// New creates a new JWT client with the provided options
func New(opts ...Option) (JWTClient, error) {
	config := TokenConfig{
		AccessTokenExpiry: 15 * time.Minute,
		Issuer:            DefaultIssuer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.AccessTokenSecret == "" {
		return nil, ErrAccessTokenSecretRequired
	}

	return &Client{config: config, now: time.Now}, nil
}

// NewWithConfig creates a new JWT client from a config struct
func NewWithConfig(config TokenConfig) (JWTClient, error) {
	opts := []Option{
		WithAccessTokenSecret(config.AccessTokenSecret),
		WithAccessTokenExpiry(config.AccessTokenExpiry),
	}
	if config.Issuer != "" {
		opts = append(opts, WithIssuer(config.Issuer))
	}
	return New(opts...)
}

// GenerateAccessToken signs a token for the given user and role
func (c *Client) GenerateAccessToken(userID uint, role string) (string, error) {
	now := c.now()
	claims := TokenClaims{
		UserID:    userID,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
			ID:        ulid.Make().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.AccessTokenSecret))
}

// ValidateAccessToken parses the token, checks signature, expiry, issuer and type
func (c *Client) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.config.AccessTokenSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.config.Issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == 0 {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// GetAccessTokenExpiry returns the configured access token lifetime
func (c *Client) GetAccessTokenExpiry() time.Duration {
	return c.config.AccessTokenExpiry
}
