package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fitladder-backend/internal/common/logger"
	"fitladder-backend/internal/features/ladder/models"
	"fitladder-backend/internal/features/ladder/repository"
)

// Limiter enforces the per-user daily submission quota. It keeps an
// in-process cache mirroring the persisted state; the persisted copy is
// re-read before every decision and the mirror serves as the fallback when
// that read fails, so a store outage does not hand out a fresh quota. The
// read-modify-write against the store is not atomic: two devices racing can
// both count the same prior value. A soft quota, not a security boundary.
type Limiter struct {
	store repository.StateStore
	limit int

	mu    sync.Mutex
	cache map[string]*models.SubmissionState

	now func() time.Time
	log zerolog.Logger
}

func NewLimiter(store repository.StateStore, limit int) *Limiter {
	if limit <= 0 {
		limit = models.DefaultDailyLimit
	}
	return &Limiter{
		store: store,
		limit: limit,
		cache: make(map[string]*models.SubmissionState),
		now:   time.Now,
		log:   logger.With("submission_limiter"),
	}
}

// Limit returns the configured daily limit.
func (l *Limiter) Limit() int {
	return l.limit
}

// cached returns a copy of the in-process mirror for the user if it is
// still valid for today, nil otherwise.
func (l *Limiter) cached(userID string, now time.Time) *models.SubmissionState {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.cache[userID]
	if !ok || !state.Valid(now, l.limit) {
		return nil
	}

	copied := *state
	return &copied
}

// loadValidated re-reads the persisted state and replaces anything that
// cannot be trusted (stale date, impossible count, unparseable timestamp)
// with a fresh default, persisting the correction. A failed read falls back
// to the in-process mirror so the quota is not reset by a store outage.
func (l *Limiter) loadValidated(ctx context.Context, userID string, now time.Time) (*models.SubmissionState, error) {
	state, err := l.store.Load(ctx, userID)
	if err != nil {
		l.log.Warn().
			Str("user_id", userID).
			Err(err).
			Msg("Submission state read failed, using the in-process mirror")
		state = l.cached(userID, now)
	}

	if state == nil || !state.Valid(now, l.limit) {
		state = models.FreshState(now)
		if err := l.store.Save(ctx, userID, state); err != nil {
			return nil, err
		}
	}

	l.mu.Lock()
	l.cache[userID] = state
	l.mu.Unlock()

	return state, nil
}

// Check reports whether the user may submit right now.
func (l *Limiter) Check(ctx context.Context, userID string) (*models.LimitCheck, error) {
	now := l.now()

	state, err := l.loadValidated(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if state.DailySubmissionCount >= l.limit {
		return &models.LimitCheck{
			CanSubmit:    false,
			Reason:       models.ReasonLimitReached,
			CurrentCount: state.DailySubmissionCount,
		}, nil
	}

	return &models.LimitCheck{
		CanSubmit:    true,
		CurrentCount: state.DailySubmissionCount,
	}, nil
}

// Increment commits one submission. It re-reads the persisted copy
// immediately before incrementing; a date rollover mid-flight restarts the
// count at one.
func (l *Limiter) Increment(ctx context.Context, userID string) (int, error) {
	now := l.now()

	state, err := l.store.Load(ctx, userID)
	if err != nil {
		state = l.cached(userID, now)
	}
	if state == nil || !state.Valid(now, l.limit) {
		state = models.FreshState(now)
	}

	stamp := now.Format(time.RFC3339)
	state.DailySubmissionCount++
	state.LastSubmissionTime = &stamp
	state.LastSubmissionDate = now.Format(models.DateLayout)

	if err := l.store.Save(ctx, userID, state); err != nil {
		return 0, err
	}

	l.mu.Lock()
	l.cache[userID] = state
	l.mu.Unlock()

	return state.DailySubmissionCount, nil
}
