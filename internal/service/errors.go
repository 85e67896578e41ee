package service

import "errors"

var (
	// ErrInvalidDataProvided signals a request payload that fails basic
	// validation (missing required fields, non-positive ids).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the uniform login failure: unknown username and
	// wrong password are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers every token rejection: bad signature, expiry,
	// malformed claims, wrong algorithm.
	ErrInvalidToken = errors.New("token is expired or invalid")

	// ErrForbidden is returned when the caller attempts to mutate another
	// account-owner's record.
	ErrForbidden = errors.New("operation not permitted on another account")
)
