package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "access-secret-key"

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	client, err := New(append([]Option{WithAccessTokenSecret(testSecret)}, opts...)...)
	require.NoError(t, err)
	return client.(*Client)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrAccessTokenSecretRequired)
}

func TestNewWithConfig(t *testing.T) {
	client, err := NewWithConfig(TokenConfig{
		AccessTokenSecret: testSecret,
		AccessTokenExpiry: time.Hour,
		Issuer:            "procurement-test",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, client.GetAccessTokenExpiry())
}

func TestAccessToken_RoundTrip(t *testing.T) {
	client := newTestClient(t)

	token, err := client.GenerateAccessToken(42, "supplier")
	require.NoError(t, err)

	claims, err := client.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "supplier", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	client := newTestClient(t, WithAccessTokenExpiry(time.Minute))
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return issued }

	token, err := client.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	client.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = client.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := newTestClient(t).GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	other, err := New(WithAccessTokenSecret("another-secret"))
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	token, err := newTestClient(t, WithIssuer("someone-else")).GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = newTestClient(t).ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAccessToken_WrongType(t *testing.T) {
	claims := TokenClaims{
		UserID:    1,
		Role:      "admin",
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestClient(t).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := newTestClient(t).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
