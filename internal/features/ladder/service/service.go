package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/logger"
	"fitladder-backend/internal/features/ladder/models"
	pmodels "fitladder-backend/internal/features/profile/models"
	profileservice "fitladder-backend/internal/features/profile/service"
	"fitladder-backend/internal/features/score"
	vmodels "fitladder-backend/internal/features/verification/models"
)

type ladderService struct {
	profiles profileservice.ProfileService
	limiter  *Limiter
	policy   score.ExtensionPolicy
	notifier Notifier

	// Защита от двойной отправки в рамках одного процесса. От гонки двух
	// устройств не спасает.
	inFlight sync.Map

	log zerolog.Logger
}

func NewLadderService(
	profiles profileservice.ProfileService,
	limiter *Limiter,
	policy score.ExtensionPolicy,
	notifier Notifier,
) LadderService {
	return &ladderService{
		profiles: profiles,
		limiter:  limiter,
		policy:   policy,
		notifier: notifier,
		log:      logger.With("ladder_service"),
	}
}

func (s *ladderService) CheckLimit(ctx context.Context, userID string) (*models.LimitCheck, error) {
	return s.limiter.Check(ctx, userID)
}

// ConfirmSubmit runs the full submission: limiter gate, aggregation,
// extension policy, guarded merge-write, limiter commit. A second call with
// an unchanged computed score writes nothing and keeps the quota untouched.
func (s *ladderService) ConfirmSubmit(ctx context.Context, userID string) (result *models.SubmitResult, err error) {
	if _, busy := s.inFlight.LoadOrStore(userID, struct{}{}); busy {
		return nil, models.ErrSubmissionInProgress
	}
	defer s.inFlight.Delete(userID)

	defer func() {
		if err != nil {
			s.notifyFailure(ctx, userID, err)
		}
	}()

	// Лимит проверяем заново: UI мог проверить его давно
	check, err := s.limiter.Check(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !check.CanSubmit {
		appErr := apperrors.NewSubmissionLimitError(check.CurrentCount, s.limiter.Limit()).WithUserID(userID)
		appErr.Cause = models.ErrLimitReached
		return nil, appErr
	}

	record, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := score.Aggregate(record.Scores)
	if err != nil {
		return nil, err
	}

	status := record.VerificationStatusFor(vmodels.TierLimitBreak)
	stored := s.policy.Apply(raw, status, vmodels.TierLimitBreak)

	if stored == record.LadderScore {
		s.log.Debug().
			Str("user_id", userID).
			Float64("score", stored).
			Msg("Score unchanged, skipping remote write")
		return &models.SubmitResult{
			Skipped:      true,
			LadderScore:  stored,
			RawScore:     raw,
			CurrentCount: check.CurrentCount,
		}, nil
	}

	now := time.Now()
	patch := &pmodels.RecordPatch{
		LadderScore:          &stored,
		RawScore:             &raw,
		LastLadderSubmission: &now,
	}
	if _, err = s.profiles.Save(ctx, userID, patch); err != nil {
		return nil, err
	}

	count, err := s.limiter.Increment(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, userID, models.Notification{
		Title:   "Ladder updated",
		Message: "Your score has been submitted to the leaderboard",
		Type:    "success",
	})

	s.log.Info().
		Str("user_id", userID).
		Float64("raw_score", raw).
		Float64("ladder_score", stored).
		Int("submission_count", count).
		Msg("Ladder submission committed")

	return &models.SubmitResult{
		Submitted:    true,
		LadderScore:  stored,
		RawScore:     raw,
		CurrentCount: count,
	}, nil
}

func (s *ladderService) notifyFailure(ctx context.Context, userID string, err error) {
	notification := models.Notification{
		Title:   "Submission failed",
		Message: "Could not submit your score, please try again later",
		Type:    "error",
	}

	switch {
	case errors.Is(err, models.ErrLimitReached):
		notification.Message = "Daily submission limit reached, come back tomorrow"
	case errors.Is(err, score.ErrNoScores):
		notification.Message = "At least one category score is required"
		notification.Action = "open_assessment"
	}

	s.notifier.Notify(ctx, userID, notification)
}
