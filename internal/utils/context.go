// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys and HTTP
// response writing.
package utils

import (
	"context"

	"github.com/sixpath/sixpath-server/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authentication middleware stores
// the resolved caller identity for the duration of one request.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.IdentityCtxKey, identity)
var IdentityCtxKey = contextKey("identity")

// IdentityFromContext retrieves the resolved caller identity from the context.
//
// Returns the identity and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}
