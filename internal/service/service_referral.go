package service

import (
	"context"
	"fmt"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/models"
)

// referralService is the concrete implementation of ReferralService.
type referralService struct {
	referralRepository store.ReferralRepository
	logger             *logger.Logger
}

// NewReferralService constructs a ReferralService over the given repository.
func NewReferralService(referralRepository store.ReferralRepository, logger *logger.Logger) ReferralService {
	return &referralService{
		referralRepository: referralRepository,
		logger:             logger,
	}
}

// Create persists a new referral attributed to an existing person.
func (s *referralService) Create(ctx context.Context, req models.CreateReferralRequest) (models.Referral, error) {
	log := logger.FromContext(ctx)

	if req.ReferrerID <= 0 {
		log.Error().Int64("referrer_id", req.ReferrerID).Msg("invalid referral data provided")
		return models.Referral{}, ErrInvalidDataProvided
	}

	created, err := s.referralRepository.Create(ctx, req.Referral())
	if err != nil {
		log.Err(err).Msg("referral creation ended with error")
		return models.Referral{}, fmt.Errorf("referral creation ended with error: %w", err)
	}

	return created, nil
}

func (s *referralService) GetByID(ctx context.Context, id int64) (models.Referral, error) {
	found, err := s.referralRepository.GetByID(ctx, id)
	if err != nil {
		return models.Referral{}, fmt.Errorf("referral search by id failed: %w", err)
	}

	return found, nil
}

// ListMine returns a page of the caller's own referrals.
func (s *referralService) ListMine(ctx context.Context, callerID int64, limit, offset uint64) ([]models.Referral, error) {
	limit = clampLimit(limit)

	referrals, err := s.referralRepository.ListByReferrer(ctx, callerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("referral listing failed: %w", err)
	}

	return referrals, nil
}

func (s *referralService) Update(ctx context.Context, id int64, patch models.ReferralPatch) (models.Referral, error) {
	log := logger.FromContext(ctx)

	updated, err := s.referralRepository.Update(ctx, id, patch)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("referral update ended with error")
		return models.Referral{}, fmt.Errorf("referral update ended with error: %w", err)
	}

	return updated, nil
}

func (s *referralService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.referralRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("referral deletion ended with error")
		return fmt.Errorf("referral deletion ended with error: %w", err)
	}

	return nil
}
