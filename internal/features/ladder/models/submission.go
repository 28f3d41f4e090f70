package models

import (
	"errors"
	"time"
)

var (
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrLimitReached         = errors.New("daily submission limit reached")
)

const (
	// DefaultDailyLimit дневной лимит отправок в ладдер
	DefaultDailyLimit = 3

	// DateLayout формат даты в состоянии лимитера
	DateLayout = "2006-01-02"
)

// Причины отказа лимитера
const (
	ReasonLimitReached = "daily_limit_reached"
)

// SubmissionState is the per-user limiter state mirrored to the local
// key-value store. Field names match the persisted JSON document.
type SubmissionState struct {
	LastSubmissionTime   *string `json:"lastSubmissionTime"`
	DailySubmissionCount int     `json:"dailySubmissionCount"`
	LastSubmissionDate   string  `json:"lastSubmissionDate"`
}

// FreshState returns the safe default for a day with no submissions yet.
func FreshState(now time.Time) *SubmissionState {
	return &SubmissionState{
		LastSubmissionTime:   nil,
		DailySubmissionCount: 0,
		LastSubmissionDate:   now.Format(DateLayout),
	}
}

// Valid reports whether the persisted state can be trusted for "now": the
// date must be today, the count inside bounds, the timestamp parseable.
func (s *SubmissionState) Valid(now time.Time, limit int) bool {
	if s.LastSubmissionDate != now.Format(DateLayout) {
		return false
	}
	if s.DailySubmissionCount < 0 || s.DailySubmissionCount > limit {
		return false
	}
	if s.LastSubmissionTime != nil {
		if _, err := time.Parse(time.RFC3339, *s.LastSubmissionTime); err != nil {
			return false
		}
	}
	return true
}

// LimitCheck is the limiter's verdict for a submission attempt
type LimitCheck struct {
	CanSubmit    bool   `json:"can_submit"`
	Reason       string `json:"reason,omitempty"`
	CurrentCount int    `json:"current_count"`
}

// SubmitResult describes what the submission actually did
type SubmitResult struct {
	Submitted    bool    `json:"submitted"`
	Skipped      bool    `json:"skipped"`
	LadderScore  float64 `json:"ladder_score"`
	RawScore     float64 `json:"raw_score"`
	CurrentCount int     `json:"current_count"`
}

// Notification is the payload handed to the UI notification callback
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
}
