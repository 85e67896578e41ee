package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sixpath/sixpath-server/internal/auth"
	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/models"
)

// authService is the concrete implementation of AuthService. It handles
// account registration, credential verification with Argon2id, and the JWT
// token lifecycle using a PersonRepository for persistence.
type authService struct {
	// personRepository is the data-access layer used to create and look up
	// account records.
	personRepository store.PersonRepository

	// hasher derives and verifies Argon2id credential digests.
	hasher *auth.Hasher

	// dummyHash is a digest of a throwaway password, verified against when the
	// username does not resolve to an account so the failure path costs the
	// same as a real verification.
	dummyHash string

	// tokenSignKey is the secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenAlgorithm is the single accepted JWT signing algorithm.
	tokenAlgorithm string

	// tokenDuration controls how long a newly issued session JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given PersonRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(personRepository store.PersonRepository, hasher *auth.Hasher, cfg config.App, logger *logger.Logger) AuthService {
	dummyHash, err := hasher.Hash("sixpath-dummy-credential")
	if err != nil {
		// Only reachable when the OS random source is broken; the server
		// cannot hash real passwords either at that point.
		logger.Fatal().Err(err).Msg("cannot derive dummy credential hash")
	}

	return &authService{
		personRepository: personRepository,
		hasher:           hasher,
		dummyHash:        dummyHash,
		tokenSignKey:     cfg.TokenSignKey,
		tokenAlgorithm:   cfg.TokenAlgorithm,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// Register creates a new account-owner record.
//
// It validates that both Username and Password are non-empty, hashes the
// password with Argon2id, and delegates persistence to the PersonRepository.
//
// Returns the persisted record (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if Username, Password, FirstName or LastName is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Person, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.Person{}, ErrInvalidDataProvided
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.Person{}, fmt.Errorf("error hashing password: %w", err)
	}

	person := models.Person{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		Sector:       req.Sector,
		IsAccount:    true,
		Email:        req.Email,
		Phone:        req.Phone,
		LinkedInURL:  req.LinkedInURL,
		HowIKnowThem: req.HowIKnowThem,
		WhenIMetThem: req.WhenIMetThem,
		Notes:        req.Notes,
		Username:     &req.Username,
		PasswordHash: &passwordHash,
	}

	registered, err := a.personRepository.Create(ctx, person)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("account creation ended with error")
		return models.Person{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return registered, nil
}

// Login verifies the credential pair and issues a signed session token.
//
// Unknown username, a record without credentials, and a wrong password all
// take the same code path (a full Argon2id verification) and all surface as
// ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	account, err := a.verifyCredentials(ctx, req)
	if err != nil {
		return "", err
	}

	return a.signToken(account, "", a.tokenDuration)
}

// IssueServiceToken verifies the credential pair and issues a long-lived
// machine-to-machine token carrying the service-token type claim.
func (a *authService) IssueServiceToken(ctx context.Context, req models.LoginRequest, expirationDays int) (string, error) {
	if expirationDays <= 0 {
		return "", ErrInvalidDataProvided
	}

	account, err := a.verifyCredentials(ctx, req)
	if err != nil {
		return "", err
	}

	ttl := time.Duration(expirationDays) * 24 * time.Hour

	return a.signToken(account, auth.ServiceTokenType, ttl)
}

// Authenticate resolves a raw bearer token into the caller's identity.
//
// It delegates to auth.ParseToken, verifying the signature against the single
// configured algorithm. Any validation failure (expired, malformed, wrong
// algorithm, unparsable subject) is normalised to ErrInvalidToken so that
// callers do not need to inspect low-level JWT errors.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	claims, err := auth.ParseToken(tokenString, a.tokenSignKey, a.tokenAlgorithm)
	if err != nil {
		// The caller only ever sees ErrInvalidToken; the specific cause
		// (expired, bad signature, wrong algorithm) goes to the log.
		log.Debug().Err(err).Msg("token rejected")
		return models.Identity{}, ErrInvalidToken
	}

	identity, err := claims.Identity()
	if err != nil {
		log.Debug().Err(err).Msg("token subject rejected")
		return models.Identity{}, ErrInvalidToken
	}

	return identity, nil
}

// ChangePassword replaces the credential hash of the given account. The
// target is always the resolved caller; handlers never pass a foreign id.
func (a *authService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := a.personRepository.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

func (a *authService) verifyCredentials(ctx context.Context, req models.LoginRequest) (models.Person, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.Person{}, ErrInvalidDataProvided
	}

	account, err := a.personRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			a.hasher.Verify(req.Password, a.dummyHash)
			return models.Person{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("account search by username failed")
		return models.Person{}, fmt.Errorf("account search by username failed: %w", err)
	}

	if !account.IsAccount || account.PasswordHash == nil {
		a.hasher.Verify(req.Password, a.dummyHash)
		return models.Person{}, ErrInvalidCredentials
	}

	if !a.hasher.Verify(req.Password, *account.PasswordHash) {
		log.Error().Int64("id", account.ID).Str("username", req.Username).Msg("wrong password")
		return models.Person{}, ErrInvalidCredentials
	}

	return account, nil
}

func (a *authService) signToken(account models.Person, tokenType string, ttl time.Duration) (string, error) {
	var email string
	if account.Email != nil {
		email = *account.Email
	}

	signed, err := auth.NewToken(account.ID, email, tokenType, ttl, a.tokenSignKey, a.tokenAlgorithm)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}
