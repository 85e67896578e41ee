package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

import (
	"context"

	"github.com/sixpath/sixpath-server/models"
)

// AuthService owns the security boundary: account registration, credential
// verification, token issuance, and per-request identity resolution.
type AuthService interface {
	// Register creates the account-owner record with hashed credentials.
	Register(ctx context.Context, req models.RegisterRequest) (models.Person, error)

	// Login verifies the credential pair and returns a signed session token.
	// Unknown username and wrong password both yield [ErrInvalidCredentials].
	Login(ctx context.Context, req models.LoginRequest) (string, error)

	// IssueServiceToken verifies the credential pair and returns a long-lived
	// token carrying the service-token type claim.
	IssueServiceToken(ctx context.Context, req models.LoginRequest, expirationDays int) (string, error)

	// Authenticate resolves a raw bearer token into the caller's identity.
	// Any validation failure yields [ErrInvalidToken].
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)

	// ChangePassword replaces the credential hash of the given account.
	ChangePassword(ctx context.Context, userID int64, newPassword string) error
}

// PersonService orchestrates CRUD over contact and account records.
type PersonService interface {
	Create(ctx context.Context, req models.CreatePersonRequest) (models.Person, error)
	GetByID(ctx context.Context, id int64) (models.Person, error)
	GetByUsername(ctx context.Context, username string) (models.Person, error)
	List(ctx context.Context, limit, offset uint64) ([]models.Person, error)

	// Update applies a partial update. Mutating an account-owner record other
	// than the caller's own yields [ErrForbidden].
	Update(ctx context.Context, callerID, id int64, patch models.PersonPatch) (models.Person, error)

	// Delete removes a record under the same ownership rule as Update.
	Delete(ctx context.Context, callerID, id int64) error

	Count(ctx context.Context) (int, error)
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
}

// ConnectionService orchestrates CRUD over network edges.
type ConnectionService interface {
	Create(ctx context.Context, req models.CreateConnectionRequest) (models.Connection, error)
	GetByID(ctx context.Context, id int64) (models.Connection, error)
	ListAll(ctx context.Context) ([]models.Connection, error)
	Update(ctx context.Context, id int64, patch models.ConnectionPatch) (models.Connection, error)
	Delete(ctx context.Context, id int64) error
}

// ReferralService orchestrates CRUD over job referrals.
type ReferralService interface {
	Create(ctx context.Context, req models.CreateReferralRequest) (models.Referral, error)
	GetByID(ctx context.Context, id int64) (models.Referral, error)

	// ListMine returns the referrals whose referrer is the caller.
	ListMine(ctx context.Context, callerID int64, limit, offset uint64) ([]models.Referral, error)

	Update(ctx context.Context, id int64, patch models.ReferralPatch) (models.Referral, error)
	Delete(ctx context.Context, id int64) error
}
