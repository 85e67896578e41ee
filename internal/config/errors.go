package config

import "errors"

// Validation errors returned by validate when required configuration is
// incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates the token signing secret is absent.
	// There is no default; startup must fail.
	ErrMissingTokenSignKey = errors.New("token signing key is required")

	// ErrInvalidStorageConfigs indicates invalid storage settings: an
	// unsupported backend type, a postgres backend without a DSN, or a
	// sqlite backend without a file path.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
