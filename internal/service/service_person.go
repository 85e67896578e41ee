package service

import (
	"context"
	"fmt"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/models"
)

const (
	// DefaultListLimit applies when the caller does not supply a page size.
	DefaultListLimit = 100

	// MaxListLimit caps the page size regardless of what the caller asks for.
	MaxListLimit = 1000
)

// personService is the concrete implementation of PersonService: thin CRUD
// orchestration over the PersonRepository plus the cross-account ownership
// rule on mutations.
type personService struct {
	personRepository store.PersonRepository
	logger           *logger.Logger
}

// NewPersonService constructs a PersonService over the given repository.
func NewPersonService(personRepository store.PersonRepository, logger *logger.Logger) PersonService {
	return &personService{
		personRepository: personRepository,
		logger:           logger,
	}
}

// Create persists a new passive contact. Credential fields are never set on
// this path; accounts come in through registration only.
func (s *personService) Create(ctx context.Context, req models.CreatePersonRequest) (models.Person, error) {
	log := logger.FromContext(ctx)

	if req.FirstName == "" || req.LastName == "" {
		log.Error().Msg("invalid person data provided")
		return models.Person{}, ErrInvalidDataProvided
	}

	created, err := s.personRepository.Create(ctx, req.Person())
	if err != nil {
		log.Err(err).Msg("person creation ended with error")
		return models.Person{}, fmt.Errorf("person creation ended with error: %w", err)
	}

	return created, nil
}

func (s *personService) GetByID(ctx context.Context, id int64) (models.Person, error) {
	found, err := s.personRepository.GetByID(ctx, id)
	if err != nil {
		return models.Person{}, fmt.Errorf("person search by id failed: %w", err)
	}

	return found, nil
}

func (s *personService) GetByUsername(ctx context.Context, username string) (models.Person, error) {
	if username == "" {
		return models.Person{}, ErrInvalidDataProvided
	}

	found, err := s.personRepository.GetByUsername(ctx, username)
	if err != nil {
		return models.Person{}, fmt.Errorf("person search by username failed: %w", err)
	}

	return found, nil
}

// List returns a page of records. Limit is defaulted and capped.
func (s *personService) List(ctx context.Context, limit, offset uint64) ([]models.Person, error) {
	limit = clampLimit(limit)

	people, err := s.personRepository.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("person listing failed: %w", err)
	}

	return people, nil
}

// Update applies a partial update. A record that belongs to another account
// owner may not be mutated: the ownership check runs before any write.
func (s *personService) Update(ctx context.Context, callerID, id int64, patch models.PersonPatch) (models.Person, error) {
	log := logger.FromContext(ctx)

	if err := s.checkOwnership(ctx, callerID, id); err != nil {
		return models.Person{}, err
	}

	updated, err := s.personRepository.Update(ctx, id, patch)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("person update ended with error")
		return models.Person{}, fmt.Errorf("person update ended with error: %w", err)
	}

	return updated, nil
}

// Delete removes a record under the same ownership rule as Update.
func (s *personService) Delete(ctx context.Context, callerID, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.checkOwnership(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.personRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("person deletion ended with error")
		return fmt.Errorf("person deletion ended with error: %w", err)
	}

	return nil
}

func (s *personService) Count(ctx context.Context) (int, error) {
	count, err := s.personRepository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("person count failed: %w", err)
	}

	return count, nil
}

func (s *personService) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	options, err := s.personRepository.FilterOptions(ctx)
	if err != nil {
		return models.FilterOptions{}, fmt.Errorf("filter options lookup failed: %w", err)
	}

	return options, nil
}

// checkOwnership rejects mutations of account-owner records other than the
// caller's own. Passive contacts carry no credentials and are shared data, so
// they are mutable by any authenticated caller.
func (s *personService) checkOwnership(ctx context.Context, callerID, id int64) error {
	target, err := s.personRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("person search by id failed: %w", err)
	}

	if target.IsAccount && target.ID != callerID {
		logger.FromContext(ctx).Error().
			Int64("caller_id", callerID).
			Int64("target_id", id).
			Msg("cross-account mutation rejected")
		return ErrForbidden
	}

	return nil
}

func clampLimit(limit uint64) uint64 {
	switch {
	case limit == 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
