package service

import (
	"context"
	"fmt"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/models"
)

// connectionService is the concrete implementation of ConnectionService.
type connectionService struct {
	connectionRepository store.ConnectionRepository
	logger               *logger.Logger
}

// NewConnectionService constructs a ConnectionService over the given repository.
func NewConnectionService(connectionRepository store.ConnectionRepository, logger *logger.Logger) ConnectionService {
	return &connectionService{
		connectionRepository: connectionRepository,
		logger:               logger,
	}
}

// Create persists a new network edge between two existing people.
func (s *connectionService) Create(ctx context.Context, req models.CreateConnectionRequest) (models.Connection, error) {
	log := logger.FromContext(ctx)

	if req.Person1ID <= 0 || req.Person2ID <= 0 || req.Person1ID == req.Person2ID {
		log.Error().
			Int64("person1_id", req.Person1ID).
			Int64("person2_id", req.Person2ID).
			Msg("invalid connection data provided")
		return models.Connection{}, ErrInvalidDataProvided
	}

	created, err := s.connectionRepository.Create(ctx, req.Connection())
	if err != nil {
		log.Err(err).Msg("connection creation ended with error")
		return models.Connection{}, fmt.Errorf("connection creation ended with error: %w", err)
	}

	return created, nil
}

func (s *connectionService) GetByID(ctx context.Context, id int64) (models.Connection, error) {
	found, err := s.connectionRepository.GetByID(ctx, id)
	if err != nil {
		return models.Connection{}, fmt.Errorf("connection search by id failed: %w", err)
	}

	return found, nil
}

func (s *connectionService) ListAll(ctx context.Context) ([]models.Connection, error) {
	connections, err := s.connectionRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("connection listing failed: %w", err)
	}

	return connections, nil
}

func (s *connectionService) Update(ctx context.Context, id int64, patch models.ConnectionPatch) (models.Connection, error) {
	log := logger.FromContext(ctx)

	updated, err := s.connectionRepository.Update(ctx, id, patch)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("connection update ended with error")
		return models.Connection{}, fmt.Errorf("connection update ended with error: %w", err)
	}

	return updated, nil
}

func (s *connectionService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.connectionRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("connection deletion ended with error")
		return fmt.Errorf("connection deletion ended with error: %w", err)
	}

	return nil
}
