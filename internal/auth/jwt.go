// Package auth holds the two leaf primitives of the security boundary:
// Argon2id password hashing and the signed-token codec. Both are pure with
// respect to the process; all configuration (secret, algorithm, TTL) is
// supplied by the caller.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sixpath/sixpath-server/models"
)

// ServiceTokenType is the value of the "type" claim carried by long-lived
// machine-to-machine tokens issued via the service-token endpoint. Normal
// session tokens carry no type claim.
const ServiceTokenType = "service_token"

// Claims is the payload embedded in every signed token:
// { sub: numeric id as string, email, exp, iat, type? }.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`

	// TokenType distinguishes long-lived service tokens from session tokens.
	TokenType string `json:"type,omitempty"`
}

// Identity maps the claims onto the per-request resolved identity. The
// subject claim is parsed as the int64 account id.
func (c *Claims) Identity() (models.Identity, error) {
	if c.Subject == "" {
		return models.Identity{}, ErrInvalidSubject
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidSubject, err)
	}

	return models.Identity{ID: id, Email: c.Email}, nil
}

// NewToken creates a signed token for the given account. The expiration is
// now + ttl; tokenType is embedded as the "type" claim when non-empty.
//
// Returns an error if the sign key is empty, the ttl is not positive, the
// algorithm is unknown, or signing fails.
func NewToken(userID int64, email, tokenType string, ttl time.Duration, signKey, algorithm string) (string, error) {
	if signKey == "" || ttl <= 0 {
		return "", errors.New("invalid params for generating token")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return "", fmt.Errorf("unknown signing algorithm %q", algorithm)
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     email,
		TokenType: tokenType,
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and expiration of tokenString and returns
// its claims. Only the single configured algorithm is accepted; the alg field
// inside the token itself is never trusted. An expiration claim is mandatory.
//
// Every failure mode is normalised to [ErrInvalidToken] so callers cannot
// build an oracle out of the error distinctions.
func ParseToken(tokenString, signKey, algorithm string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(signKey), nil },
		jwt.WithValidMethods([]string{algorithm}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}
