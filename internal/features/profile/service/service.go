package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/logger"
	"fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/profile/repository"
)

type profileService struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func NewProfileService(repo repository.UserRepository) ProfileService {
	return &profileService{
		repo: repo,
		log:  logger.With("profile_service"),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.UserRecord, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*models.UserRecord, error) {
	record, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	record = models.NewUserRecord(userID)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("Created user record")
	return record, nil
}

// Save reads the remote record once, runs the persisted-field guard over the
// patch and merge-writes the result. A guard violation aborts the write.
func (s *profileService) Save(ctx context.Context, userID string, patch *models.RecordPatch) (*models.UserRecord, error) {
	remote, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := GuardPatch(remote, patch); err != nil {
		s.log.Error().
			Str("user_id", userID).
			Err(err).
			Msg("Persisted-field guard rejected the write")
		appErr := apperrors.NewInvariantViolationError("subscription.is_early_adopter",
			"the early adopter flag cannot be cleared").WithUserID(userID)
		appErr.Cause = err
		return nil, appErr
	}

	return s.repo.Save(ctx, userID, patch)
}
