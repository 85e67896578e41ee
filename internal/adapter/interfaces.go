// Package adapter provides a typed HTTP client for the sixpath REST API.
//
// The primary abstraction is [APIClient], which decouples command-line tools
// (such as the CSV seeder) from the raw HTTP surface. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] for transport-agnostic error handling (e.g.
// [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/sixpath/sixpath-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_client_mock.go -package=mock

// APIClient defines programmatic access to the sixpath server. Implementations
// are responsible for serialisation, bearer-token management, and mapping
// transport-level errors to the sentinel values defined in this package.
type APIClient interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It is called automatically after a successful
	// Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account on the server and stores the session token
	// obtained by a follow-up login.
	Register(ctx context.Context, req models.RegisterRequest) (models.PersonResponse, error)

	// Login authenticates with the server and stores the returned bearer
	// token via SetToken.
	Login(ctx context.Context, req models.LoginRequest) error

	// CreateContact creates a passive contact record.
	CreateContact(ctx context.Context, req models.CreatePersonRequest) (models.PersonResponse, error)

	// ListContacts fetches a page of person records.
	ListContacts(ctx context.Context, limit, offset uint64) ([]models.PersonResponse, error)

	// CreateConnection creates a network edge between two existing people.
	CreateConnection(ctx context.Context, req models.CreateConnectionRequest) (models.ConnectionResponse, error)

	// CreateReferral creates a referral record.
	CreateReferral(ctx context.Context, req models.CreateReferralRequest) (models.ReferralResponse, error)
}
