package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fitladder-backend/internal/common/logger"
	pmodels "fitladder-backend/internal/features/profile/models"
	profileservice "fitladder-backend/internal/features/profile/service"
	sealservice "fitladder-backend/internal/features/seals/service"
	"fitladder-backend/internal/features/verification/models"
	"fitladder-backend/internal/features/verification/repository"
)

// VerificationValidity как долго действует подтвержденный результат
const VerificationValidity = 365 * 24 * time.Hour

type verificationService struct {
	requests repository.RequestRepository
	profiles profileservice.ProfileService
	seals    sealservice.SealService
	now      func() time.Time
	log      zerolog.Logger
}

func NewVerificationService(
	requests repository.RequestRepository,
	profiles profileservice.ProfileService,
	seals sealservice.SealService,
) VerificationService {
	return &verificationService{
		requests: requests,
		profiles: profiles,
		seals:    seals,
		now:      time.Now,
		log:      logger.With("verification_service"),
	}
}

// CanApply walks the application guards in order and reports the first one
// that blocks. The pending-request guard is a pre-check query: two clients
// racing past it may both file; the reviewer sees the duplicate.
func (s *verificationService) CanApply(ctx context.Context, userID string) (*models.Eligibility, error) {
	if userID == "" {
		return &models.Eligibility{ReasonCode: models.ReasonUnauthenticated}, nil
	}

	record, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pmodels.ErrUserNotFound) {
			return &models.Eligibility{ReasonCode: models.ReasonUserNotFound}, nil
		}
		return nil, err
	}

	if record.IsVerified {
		return &models.Eligibility{ReasonCode: models.ReasonAlreadyVerified}, nil
	}

	if record.LadderScore <= 0 {
		return &models.Eligibility{ReasonCode: models.ReasonNoScore}, nil
	}

	pending, err := s.requests.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return &models.Eligibility{ReasonCode: models.ReasonPendingExists}, nil
	}

	latest, err := s.requests.GetLatestByUser(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrRequestNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status == models.StatusRejected {
		if left := models.CooldownRemaining(latest.UpdatedAt, s.now()); left > 0 {
			return &models.Eligibility{
				ReasonCode:       models.ReasonCooldown,
				CooldownDaysLeft: left,
			}, nil
		}
	}

	return &models.Eligibility{CanApply: true}, nil
}

// CreateRequest consumes the seal cost and files a request. The eligibility
// guards are re-run at write time: the UI check may be stale.
func (s *verificationService) CreateRequest(ctx context.Context, userID string, input CreateInput) (*models.Request, error) {
	eligibility, err := s.CanApply(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanApply {
		return nil, eligibilityError(eligibility.ReasonCode)
	}

	record, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := s.seals.Quote(record.LadderScore, record.Scores)
	if quote.Required == 0 {
		return nil, models.ErrNothingToVerify
	}

	tier := models.TierRankExam
	if quote.Required >= 3 {
		tier = models.TierLimitBreak
	}

	if _, err := s.seals.Consume(ctx, userID, quote.Required); err != nil {
		return nil, err
	}

	now := s.now()
	request := &models.Request{
		ID:             uuid.New().String(),
		UserID:         userID,
		Status:         models.StatusPending,
		Tier:           tier,
		SocialAccount:  input.SocialAccount,
		VideoLink:      input.VideoLink,
		Description:    input.Description,
		RequestedItems: input.RequestedItems,
		TargetData:     input.TargetData,
		PaymentStatus:  "not_required",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.createWithApplicationNumber(ctx, request); err != nil {
		return nil, err
	}

	// Отмечаем заявку на записи пользователя
	patch := &pmodels.RecordPatch{
		VerificationRequestID: &request.ID,
		Verifications: map[models.Tier]models.Fields{
			tier: {Status: models.StatusPending, RequestID: &request.ID},
		},
	}
	if _, err := s.profiles.Save(ctx, userID, patch); err != nil {
		s.log.Error().
			Str("user_id", userID).
			Str("request_id", request.ID).
			Err(err).
			Msg("Request created but user record not stamped")
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("application_number", request.ApplicationNumber).
		Str("tier", string(tier)).
		Msg("Verification request created")

	return request, nil
}

// createWithApplicationNumber allocates a human-readable number from the
// per-day counter. A collision on insert falls back to a timestamp-derived
// suffix instead of failing the whole request.
func (s *verificationService) createWithApplicationNumber(ctx context.Context, request *models.Request) error {
	day := s.now().Format("20060102")

	seq, err := s.requests.NextSequence(ctx, day)
	if err != nil {
		return err
	}

	request.ApplicationNumber = fmt.Sprintf("%s-%s-%04d", models.RequestTag, day, seq)
	err = s.requests.Create(ctx, request)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicateApplicationNumber) {
		return err
	}

	s.log.Warn().
		Str("application_number", request.ApplicationNumber).
		Msg("Application number collision, falling back to timestamp suffix")

	request.ApplicationNumber = fmt.Sprintf("%s-%s-%d", models.RequestTag, day, s.now().UnixMilli()%1000000)
	return s.requests.Create(ctx, request)
}

// Approve folds approved into verified and stamps the verified fields onto
// the user record.
func (s *verificationService) Approve(ctx context.Context, requestID string) (*models.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, models.StatusVerified, "")
	if err != nil {
		return nil, err
	}

	record, err := s.profiles.Get(ctx, request.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	verifiedScore := record.LadderScore
	expiresAt := now.Add(VerificationValidity)
	patch := &pmodels.RecordPatch{
		IsVerified:            pmodels.Some(true),
		VerifiedLadderScore:   &verifiedScore,
		VerifiedAt:            &now,
		VerificationExpiredAt: &expiresAt,
		VerificationRequestID: &request.ID,
		Verifications: map[models.Tier]models.Fields{
			request.Tier: {
				Status:                models.StatusVerified,
				VerifiedLadderScore:   &verifiedScore,
				VerifiedAt:            &now,
				VerificationExpiredAt: &expiresAt,
				RequestID:             &request.ID,
			},
		},
	}
	if _, err := s.profiles.Save(ctx, request.UserID, patch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", request.UserID).
		Str("request_id", request.ID).
		Float64("verified_score", verifiedScore).
		Msg("Verification request approved")

	return updated, nil
}

// Reject records the reason; the cooldown is computed on read from the
// request's updated_at, nothing else to store.
func (s *verificationService) Reject(ctx context.Context, requestID string, reason string) (*models.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusPending {
		return nil, models.ErrNotPending
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, models.StatusRejected, reason)
	if err != nil {
		return nil, err
	}

	patch := &pmodels.RecordPatch{
		Verifications: map[models.Tier]models.Fields{
			request.Tier: {Status: models.StatusRejected, RequestID: &request.ID},
		},
	}
	if _, err := s.profiles.Save(ctx, request.UserID, patch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", request.UserID).
		Str("request_id", request.ID).
		Str("reason", reason).
		Msg("Verification request rejected")

	return updated, nil
}

func (s *verificationService) ListPending(ctx context.Context, limit int) ([]*models.Request, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.requests.ListByStatus(ctx, models.StatusPending, limit)
}

func eligibilityError(reasonCode string) error {
	switch reasonCode {
	case models.ReasonAlreadyVerified:
		return models.ErrAlreadyVerified
	case models.ReasonPendingExists:
		return models.ErrPendingExists
	case models.ReasonCooldown:
		return models.ErrCooldownActive
	case models.ReasonNoScore:
		return models.ErrNoCompositeScore
	case models.ReasonUserNotFound:
		return pmodels.ErrUserNotFound
	default:
		return fmt.Errorf("cannot apply for verification: %s", reasonCode)
	}
}
