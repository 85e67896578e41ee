package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignKey = "test-sign-key"

func TestNewToken_RoundTrip(t *testing.T) {
	signed, err := NewToken(123, "ada@example.com", "", time.Hour, testSignKey, "HS256")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseToken(signed, testSignKey, "HS256")
	require.NoError(t, err)

	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Empty(t, claims.TokenType)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, int64(123), identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)
}

func TestNewToken_ServiceTokenType(t *testing.T) {
	signed, err := NewToken(7, "", ServiceTokenType, 365*24*time.Hour, testSignKey, "HS256")
	require.NoError(t, err)

	claims, err := ParseToken(signed, testSignKey, "HS256")
	require.NoError(t, err)

	assert.Equal(t, ServiceTokenType, claims.TokenType)
}

func TestNewToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		ttl       time.Duration
		signKey   string
		algorithm string
	}{
		{"empty sign key", time.Hour, "", "HS256"},
		{"zero ttl", 0, testSignKey, "HS256"},
		{"negative ttl", -time.Minute, testSignKey, "HS256"},
		{"unknown algorithm", time.Hour, testSignKey, "HS9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewToken(1, "", "", tt.ttl, tt.signKey, tt.algorithm)
			assert.Error(t, err)
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSignKey, "HS256")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongKey(t *testing.T) {
	signed, err := NewToken(1, "", "", time.Hour, testSignKey, "HS256")
	require.NoError(t, err)

	_, err = ParseToken(signed, "other-key", "HS256")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_AlgorithmMismatchRejected(t *testing.T) {
	// A token signed with a different algorithm must be rejected even though
	// its own header declares that algorithm.
	signed, err := NewToken(1, "", "", time.Hour, testSignKey, "HS512")
	require.NoError(t, err)

	_, err = ParseToken(signed, testSignKey, "HS256")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingExpirationRejected(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSignKey, "HS256")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSignKey, "HS256")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_Identity_InvalidSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
	}{
		{"empty subject", ""},
		{"non-numeric subject", "ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}

			_, err := claims.Identity()
			assert.ErrorIs(t, err, ErrInvalidSubject)
		})
	}
}
