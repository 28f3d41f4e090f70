package models

import (
	"errors"
	"time"

	"fitladder-backend/internal/features/score"
	vmodels "fitladder-backend/internal/features/verification/models"
)

var (
	ErrUserNotFound        = errors.New("user record not found")
	ErrPrivilegeRegression = errors.New("attempt to clear the early adopter flag")
)

// Статусы подписки
const (
	SubscriptionStatusNone    = "none"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Subscription is the paid-plan part of the user record. IsEarlyAdopter is a
// one-way flag: once true it must never be written back to false.
type Subscription struct {
	Status         string `json:"status"`
	IsEarlyAdopter bool   `json:"is_early_adopter"`
}

// UserRecord is the remote user document. Owned by the user; never deleted,
// only updated.
type UserRecord struct {
	ID     string       `json:"id"`
	Weight float64      `json:"weight"`
	Age    int          `json:"age"`
	Gender score.Gender `json:"gender"`

	Scores      score.CategoryScores `json:"scores"`
	LadderScore float64              `json:"ladder_score"`
	RawScore    float64              `json:"raw_score"`

	// Пять защищаемых полей верификации (см. guard)
	IsVerified            bool       `json:"is_verified"`
	VerifiedLadderScore   *float64   `json:"verified_ladder_score,omitempty"`
	VerifiedAt            *time.Time `json:"verified_at,omitempty"`
	VerificationExpiredAt *time.Time `json:"verification_expired_at,omitempty"`
	VerificationRequestID *string    `json:"verification_request_id,omitempty"`

	Verifications map[vmodels.Tier]vmodels.Fields `json:"verifications,omitempty"`

	Subscription          Subscription `json:"subscription"`
	HonorSeals            int          `json:"honor_seals"`
	MonthlySeals          int          `json:"monthly_seals"`
	LastMonthlyResetMonth string       `json:"last_monthly_reset_month,omitempty"`

	LastLadderSubmission *time.Time `json:"last_ladder_submission,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerificationStatusFor returns the effective verification status of the
// user for a tier.
func (u *UserRecord) VerificationStatusFor(tier vmodels.Tier) vmodels.Status {
	if u.IsVerified {
		return vmodels.StatusVerified
	}
	if f, ok := u.Verifications[tier]; ok && f.Status != "" {
		return f.Status
	}
	return vmodels.StatusNotApplied
}

// NewUserRecord returns a fresh record with zeroed scores and balances.
func NewUserRecord(id string) *UserRecord {
	now := time.Now()
	return &UserRecord{
		ID:           id,
		Subscription: Subscription{Status: SubscriptionStatusNone},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
