package models

// Identity is the resolved caller identity for the duration of one request.
// It is produced by validating a bearer token and is the only source of truth
// for "who is making this request"; services must never trust identifiers
// supplied in the request body for authorization decisions.
type Identity struct {
	// ID is the account identifier extracted from the token subject claim.
	ID int64

	// Email is the account email carried in the token claims.
	Email string

	// Role is reserved for future authorization policies. Empty in tokens
	// issued by the current server.
	Role string
}
