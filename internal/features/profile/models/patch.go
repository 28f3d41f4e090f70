package models

import (
	"time"

	"fitladder-backend/internal/features/score"
	vmodels "fitladder-backend/internal/features/verification/models"
)

// Optional wraps a patch field so "omitted" and "explicitly set to the zero
// value" stay distinguishable after the request payload has been decoded.
type Optional[T any] struct {
	set   bool
	value T
}

// Some returns an explicitly set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// IsSet reports whether the field was explicitly provided.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Value returns the wrapped value; meaningful only when IsSet is true.
func (o Optional[T]) Value() T {
	return o.value
}

// SubscriptionPatch is a partial update of the subscription object.
type SubscriptionPatch struct {
	Status         *string
	IsEarlyAdopter Optional[bool]
}

// RecordPatch is a partial update of a user record. Nil pointer means the
// field is omitted and keeps its remote value on merge. The guarded fields
// use Optional so an explicit false is not mistaken for an omission.
type RecordPatch struct {
	Weight *float64
	Age    *int
	Gender *score.Gender

	Scores      *score.CategoryScores
	LadderScore *float64
	RawScore    *float64

	IsVerified            Optional[bool]
	VerifiedLadderScore   *float64
	VerifiedAt            *time.Time
	VerificationExpiredAt *time.Time
	VerificationRequestID *string

	Verifications map[vmodels.Tier]vmodels.Fields

	Subscription          *SubscriptionPatch
	HonorSeals            *int
	MonthlySeals          *int
	LastMonthlyResetMonth *string

	LastLadderSubmission *time.Time
}

// Apply merges the patch into the record. Explicitly clearing IsVerified
// also clears the four dependent verification fields: that is the
// legitimate "re-submission drops verification" rule.
func (p *RecordPatch) Apply(record *UserRecord) {
	if p.Weight != nil {
		record.Weight = *p.Weight
	}
	if p.Age != nil {
		record.Age = *p.Age
	}
	if p.Gender != nil {
		record.Gender = *p.Gender
	}
	if p.Scores != nil {
		record.Scores = *p.Scores
	}
	if p.LadderScore != nil {
		record.LadderScore = *p.LadderScore
	}
	if p.RawScore != nil {
		record.RawScore = *p.RawScore
	}

	if p.IsVerified.IsSet() {
		record.IsVerified = p.IsVerified.Value()
		if !p.IsVerified.Value() {
			record.VerifiedLadderScore = nil
			record.VerifiedAt = nil
			record.VerificationExpiredAt = nil
			record.VerificationRequestID = nil
		}
	}
	if p.VerifiedLadderScore != nil {
		record.VerifiedLadderScore = p.VerifiedLadderScore
	}
	if p.VerifiedAt != nil {
		record.VerifiedAt = p.VerifiedAt
	}
	if p.VerificationExpiredAt != nil {
		record.VerificationExpiredAt = p.VerificationExpiredAt
	}
	if p.VerificationRequestID != nil {
		record.VerificationRequestID = p.VerificationRequestID
	}

	for tier, fields := range p.Verifications {
		if record.Verifications == nil {
			record.Verifications = make(map[vmodels.Tier]vmodels.Fields)
		}
		record.Verifications[tier] = fields
	}

	if p.Subscription != nil {
		if p.Subscription.Status != nil {
			record.Subscription.Status = *p.Subscription.Status
		}
		if p.Subscription.IsEarlyAdopter.IsSet() {
			record.Subscription.IsEarlyAdopter = p.Subscription.IsEarlyAdopter.Value()
		}
	}

	if p.HonorSeals != nil {
		record.HonorSeals = *p.HonorSeals
	}
	if p.MonthlySeals != nil {
		record.MonthlySeals = *p.MonthlySeals
	}
	if p.LastMonthlyResetMonth != nil {
		record.LastMonthlyResetMonth = *p.LastMonthlyResetMonth
	}
	if p.LastLadderSubmission != nil {
		record.LastLadderSubmission = p.LastLadderSubmission
	}
}
