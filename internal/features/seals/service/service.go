package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	apperrors "fitladder-backend/internal/common/errors"
	"fitladder-backend/internal/common/logger"
	pmodels "fitladder-backend/internal/features/profile/models"
	"fitladder-backend/internal/features/profile/repository"
	"fitladder-backend/internal/features/seals/models"
	"fitladder-backend/internal/features/score"
)

type sealService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func NewSealService(users repository.UserRepository) SealService {
	return &sealService{
		users: users,
		log:   logger.With("seal_service"),
	}
}

// CalculateQuote classifies the scores into a verification tier and its seal
// cost. Exceeding the ceiling anywhere demands the limit-break tier; merely
// strong scores point at the rank exam. Broad over-performance is cheaper to
// cover with a subscription, which the quote then recommends instead.
func CalculateQuote(composite float64, categories score.CategoryScores) models.Quote {
	present := categories.Present()

	overCeiling := 0
	strong := 0
	for _, v := range present {
		if v > models.LimitBreakThreshold {
			overCeiling++
		}
		if v >= models.RankExamThreshold {
			strong++
		}
	}

	if overCeiling > 0 || composite > models.LimitBreakThreshold {
		quote := models.Quote{
			Required:       models.CostLimitBreak,
			Recommendation: models.RecommendationLimitBreak,
		}
		if overCeiling >= 2 {
			quote.Recommendation = models.RecommendationSubscribe
			quote.RecommendSubscription = true
		}
		return quote
	}

	if composite >= models.RankExamThreshold || strong > 0 {
		quote := models.Quote{
			Required:       models.CostRankExam,
			Recommendation: models.RecommendationRankExam,
		}
		if strong >= 4 {
			quote.Recommendation = models.RecommendationSubscribe
			quote.RecommendSubscription = true
		}
		return quote
	}

	return models.Quote{}
}

// ConsumeFromRecord deducts seals from the record's balances in place,
// monthly bucket first. Early adopters bypass consumption entirely.
func ConsumeFromRecord(record *pmodels.UserRecord, amount int) (models.Balances, error) {
	if amount < 0 {
		return models.Balances{}, models.ErrNegativeAmount
	}

	if record.Subscription.IsEarlyAdopter {
		return models.Balances{
			MonthlySeals: record.MonthlySeals,
			HonorSeals:   record.HonorSeals,
			Bypassed:     true,
		}, nil
	}

	if record.MonthlySeals+record.HonorSeals < amount {
		return models.Balances{}, models.ErrInsufficientSeals
	}

	fromMonthly := amount
	if fromMonthly > record.MonthlySeals {
		fromMonthly = record.MonthlySeals
	}
	record.MonthlySeals -= fromMonthly
	record.HonorSeals -= amount - fromMonthly

	return models.Balances{
		MonthlySeals: record.MonthlySeals,
		HonorSeals:   record.HonorSeals,
	}, nil
}

func (s *sealService) Quote(composite float64, categories score.CategoryScores) models.Quote {
	return CalculateQuote(composite, categories)
}

func (s *sealService) Consume(ctx context.Context, userID string, amount int) (*models.Balances, error) {
	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances, err := ConsumeFromRecord(record, amount)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientSeals) {
			appErr := apperrors.NewInsufficientSealsError(amount, record.MonthlySeals+record.HonorSeals).WithUserID(userID)
			appErr.Cause = err
			return nil, appErr
		}
		return nil, err
	}

	if balances.Bypassed || amount == 0 {
		// Балансы не менялись, запись не нужна
		return &balances, nil
	}

	patch := &pmodels.RecordPatch{
		MonthlySeals: &record.MonthlySeals,
		HonorSeals:   &record.HonorSeals,
	}
	if _, err := s.users.Save(ctx, userID, patch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Int("amount", amount).
		Int("monthly_left", balances.MonthlySeals).
		Int("honor_left", balances.HonorSeals).
		Msg("Seals consumed")

	return &balances, nil
}

// ResetMonthly tops the monthly bucket back up to the quota for paying or
// privileged accounts, at most once per calendar month.
func (s *sealService) ResetMonthly(ctx context.Context, record *pmodels.UserRecord) (*pmodels.UserRecord, error) {
	if record.Subscription.Status != pmodels.SubscriptionStatusActive && !record.Subscription.IsEarlyAdopter {
		return record, nil
	}

	month := time.Now().Format("2006-01")
	if record.LastMonthlyResetMonth == month {
		return record, nil
	}

	quota := models.MonthlyQuota
	patch := &pmodels.RecordPatch{
		MonthlySeals:          &quota,
		LastMonthlyResetMonth: &month,
	}

	updated, err := s.users.Save(ctx, record.ID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", record.ID).
		Str("month", month).
		Msg("Monthly seals reset")

	return updated, nil
}
