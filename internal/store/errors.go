package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// account fails because a record with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrPersonNotFound is returned when a query expected to match a person
	// record produces an empty result set.
	ErrPersonNotFound = errors.New("person was not found")

	// ErrConnectionNotFound is returned when a query targets a connection
	// that does not exist.
	ErrConnectionNotFound = errors.New("connection was not found")

	// ErrReferralNotFound is returned when a query targets a referral that
	// does not exist.
	ErrReferralNotFound = errors.New("referral was not found")

	// ErrPersonReferenceMissing is returned when an insert references a
	// person id that does not exist (foreign key violation).
	ErrPersonReferenceMissing = errors.New("referenced person does not exist")

	// ErrEmptyPatch is returned when an update carries no fields to apply.
	ErrEmptyPatch = errors.New("nothing to update")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
