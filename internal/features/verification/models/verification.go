package models

import (
	"errors"
	"time"
)

var (
	ErrAlreadyVerified  = errors.New("user is already verified")
	ErrPendingExists    = errors.New("a pending verification request already exists")
	ErrRequestNotFound  = errors.New("verification request not found")
	ErrNotPending       = errors.New("verification request is not pending")
	ErrNoCompositeScore = errors.New("a positive composite score is required before applying")
	ErrCooldownActive   = errors.New("verification cooldown is still active")
	ErrNothingToVerify  = errors.New("current scores do not require verification")
)

const (
	// CooldownDays сколько дней после отклонения нельзя подавать новую заявку
	CooldownDays = 7

	// RequestTag префикс номера заявки
	RequestTag = "FIT"
)

// Status represents the verification lifecycle state for a tier
type Status string

const (
	StatusNotApplied Status = "not_applied"
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusVerified   Status = "verified"
)

// Tier is a named verification gate
type Tier string

const (
	TierLimitBreak Tier = "limit_break"
	TierRankExam   Tier = "rank_exam"
)

// Fields holds the per-tier verification state stored on the user record
type Fields struct {
	Status                Status     `json:"status"`
	VerifiedLadderScore   *float64   `json:"verified_ladder_score,omitempty"`
	VerifiedAt            *time.Time `json:"verified_at,omitempty"`
	VerificationExpiredAt *time.Time `json:"verification_expired_at,omitempty"`
	RequestID             *string    `json:"verification_request_id,omitempty"`
}

// SocialAccount identifies the applicant's public account used for review
type SocialAccount struct {
	Type   string `json:"type"`
	Handle string `json:"handle"`
}

// Request represents a human-reviewed verification request
type Request struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	ApplicationNumber string        `json:"application_number"`
	Status            Status        `json:"status"`
	Tier              Tier          `json:"tier"`
	SocialAccount     SocialAccount `json:"social_account"`
	VideoLink         string        `json:"video_link"`
	Description       string        `json:"description"`
	RequestedItems    []string      `json:"requested_items"`
	TargetData        string        `json:"target_data"`
	PaymentStatus     string        `json:"payment_status"`
	RejectionReason   string        `json:"rejection_reason,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Eligibility is the result of the pre-application check
type Eligibility struct {
	CanApply         bool   `json:"can_apply"`
	ReasonCode       string `json:"reason_code,omitempty"`
	CooldownDaysLeft int    `json:"cooldown_days_left,omitempty"`
}

// Причины отказа в подаче заявки
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonUserNotFound    = "user_not_found"
	ReasonAlreadyVerified = "already_verified"
	ReasonNoScore         = "no_composite_score"
	ReasonPendingExists   = "pending_request_exists"
	ReasonCooldown        = "rejection_cooldown"
)

// EffectiveStatus computes the readable status of a rejected request: a
// rejection older than the cooldown window counts as not_applied again.
// The transition is computed on read, never stored.
func EffectiveStatus(status Status, updatedAt time.Time, now time.Time) Status {
	if status == StatusRejected && !updatedAt.IsZero() {
		if now.Sub(updatedAt) >= CooldownDays*24*time.Hour {
			return StatusNotApplied
		}
	}
	return status
}

// CooldownRemaining returns how many whole days are left before a rejected
// user may apply again, rounded up. Zero means the cooldown has passed.
func CooldownRemaining(rejectedAt time.Time, now time.Time) int {
	deadline := rejectedAt.Add(CooldownDays * 24 * time.Hour)
	if !now.Before(deadline) {
		return 0
	}
	left := deadline.Sub(now)
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) > 0 {
		days++
	}
	return days
}
