package models

import "errors"

var (
	ErrInsufficientSeals = errors.New("not enough seals")
	ErrNegativeAmount    = errors.New("seal amount must not be negative")
)

const (
	// MonthlyQuota сколько печатей начисляется подписчикам раз в месяц
	MonthlyQuota = 5

	// Стоимость заявок по уровням
	CostLimitBreak = 3
	CostRankExam   = 2

	// Пороговые значения очков
	LimitBreakThreshold = 100.0
	RankExamThreshold   = 80.0
)

// Recommendation names the verification tier the quote points the user at
type Recommendation string

const (
	RecommendationNone       Recommendation = ""
	RecommendationRankExam   Recommendation = "rank_exam"
	RecommendationLimitBreak Recommendation = "limit_break"
	RecommendationSubscribe  Recommendation = "subscribe"
)

// Quote is the seal cost computed from the user's current scores
type Quote struct {
	Required              int            `json:"required"`
	Recommendation        Recommendation `json:"recommendation"`
	RecommendSubscription bool           `json:"recommend_subscription"`
}

// Balances is the post-consumption split of the two seal buckets
type Balances struct {
	MonthlySeals int  `json:"monthly_seals"`
	HonorSeals   int  `json:"honor_seals"`
	Bypassed     bool `json:"bypassed,omitempty"`
}
