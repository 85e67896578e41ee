package auth

import "errors"

var (
	// ErrInvalidToken covers every token decode failure: malformed structure,
	// bad signature, unexpected signing algorithm, and expiry. Callers must
	// not distinguish the sub-cause to clients; all of them map to the same
	// unauthorized outcome.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidSubject is returned when a validated token carries a subject
	// claim that is absent or not a numeric account identifier.
	ErrInvalidSubject = errors.New("invalid token subject")
)
