package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

import (
	"context"

	"github.com/sixpath/sixpath-server/models"
)

// PersonRepository is the data-access contract for the users table, covering
// both passive contacts and account-owner records.
type PersonRepository interface {
	// Create persists a new person record and returns it with the
	// server-assigned ID and CreatedAt. A duplicate username yields
	// [ErrUsernameAlreadyExists].
	Create(ctx context.Context, person models.Person) (models.Person, error)

	// GetByID returns the record with the given id or [ErrPersonNotFound].
	GetByID(ctx context.Context, id int64) (models.Person, error)

	// GetByUsername returns the account record with the given username or
	// [ErrPersonNotFound].
	GetByUsername(ctx context.Context, username string) (models.Person, error)

	// List returns a page of records ordered by id.
	List(ctx context.Context, limit, offset uint64) ([]models.Person, error)

	// Update applies the non-nil fields of patch and returns the updated
	// record. An empty patch yields [ErrEmptyPatch]; a missing record yields
	// [ErrPersonNotFound].
	Update(ctx context.Context, id int64, patch models.PersonPatch) (models.Person, error)

	// UpdatePasswordHash replaces the stored credential hash of an account
	// record. A missing record yields [ErrPersonNotFound].
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error

	// Delete removes the record or yields [ErrPersonNotFound].
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of person records.
	Count(ctx context.Context) (int, error)

	// FilterOptions returns the distinct non-null companies and sectors.
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
}

// ConnectionRepository is the data-access contract for network edges.
type ConnectionRepository interface {
	// Create persists a new connection. A reference to a missing person
	// yields [ErrPersonReferenceMissing].
	Create(ctx context.Context, conn models.Connection) (models.Connection, error)

	// GetByID returns the edge with the given id or [ErrConnectionNotFound].
	GetByID(ctx context.Context, id int64) (models.Connection, error)

	// ListAll returns every edge in the network ordered by id.
	ListAll(ctx context.Context) ([]models.Connection, error)

	// Update applies the non-nil fields of patch and returns the updated
	// edge. An empty patch yields [ErrEmptyPatch]; a missing edge yields
	// [ErrConnectionNotFound].
	Update(ctx context.Context, id int64, patch models.ConnectionPatch) (models.Connection, error)

	// Delete removes the edge or yields [ErrConnectionNotFound].
	Delete(ctx context.Context, id int64) error
}

// ReferralRepository is the data-access contract for job referrals.
type ReferralRepository interface {
	// Create persists a new referral. A missing referrer yields
	// [ErrPersonReferenceMissing].
	Create(ctx context.Context, ref models.Referral) (models.Referral, error)

	// GetByID returns the referral with the given id or [ErrReferralNotFound].
	GetByID(ctx context.Context, id int64) (models.Referral, error)

	// ListByReferrer returns a page of referrals made by the given person,
	// ordered by id.
	ListByReferrer(ctx context.Context, referrerID int64, limit, offset uint64) ([]models.Referral, error)

	// Update applies the non-nil fields of patch and returns the updated
	// referral. An empty patch yields [ErrEmptyPatch]; a missing referral
	// yields [ErrReferralNotFound].
	Update(ctx context.Context, id int64, patch models.ReferralPatch) (models.Referral, error)

	// Delete removes the referral or yields [ErrReferralNotFound].
	Delete(ctx context.Context, id int64) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
