package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitladder-backend/internal/features/ladder/models"
)

type fakeStateStore struct {
	states  map[string]*models.SubmissionState
	loadErr error
	saves   int
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[string]*models.SubmissionState)}
}

func (f *fakeStateStore) Load(_ context.Context, userID string) (*models.SubmissionState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.states[userID], nil
}

func (f *fakeStateStore) Save(_ context.Context, userID string, state *models.SubmissionState) error {
	f.states[userID] = state
	f.saves++
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLimiterCheck(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("fresh user may submit", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Zero(t, check.CurrentCount)
	})

	t.Run("at the limit", func(t *testing.T) {
		store := newFakeStateStore()
		store.states["user-1"] = &models.SubmissionState{
			DailySubmissionCount: 3,
			LastSubmissionDate:   now.Format(models.DateLayout),
		}
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.False(t, check.CanSubmit)
		assert.Equal(t, models.ReasonLimitReached, check.Reason)
		assert.Equal(t, 3, check.CurrentCount)
	})

	t.Run("yesterday's state resets on read", func(t *testing.T) {
		store := newFakeStateStore()
		store.states["user-1"] = &models.SubmissionState{
			DailySubmissionCount: 3,
			LastSubmissionDate:   now.AddDate(0, 0, -1).Format(models.DateLayout),
		}
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Zero(t, check.CurrentCount)
		assert.Equal(t, now.Format(models.DateLayout), store.states["user-1"].LastSubmissionDate)
	})

	t.Run("corrupted store self-heals instead of failing", func(t *testing.T) {
		store := newFakeStateStore()
		store.loadErr = errors.New("unexpected end of JSON input")
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
	})

	t.Run("impossible count is distrusted", func(t *testing.T) {
		store := newFakeStateStore()
		store.states["user-1"] = &models.SubmissionState{
			DailySubmissionCount: 99,
			LastSubmissionDate:   now.Format(models.DateLayout),
		}
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Zero(t, check.CurrentCount)
	})

	t.Run("unparseable timestamp is distrusted", func(t *testing.T) {
		bad := "not-a-time"
		store := newFakeStateStore()
		store.states["user-1"] = &models.SubmissionState{
			LastSubmissionTime:   &bad,
			DailySubmissionCount: 2,
			LastSubmissionDate:   now.Format(models.DateLayout),
		}
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Zero(t, check.CurrentCount)
	})
}

func TestLimiterIncrement(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("counts one two three, then the gate closes", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		for want := 1; want <= 3; want++ {
			count, err := limiter.Increment(context.Background(), "user-1")
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.False(t, check.CanSubmit)
	})

	t.Run("stamps time and date", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		_, err := limiter.Increment(context.Background(), "user-1")
		require.NoError(t, err)

		state := store.states["user-1"]
		require.NotNil(t, state.LastSubmissionTime)
		assert.Equal(t, now.Format(time.RFC3339), *state.LastSubmissionTime)
		assert.Equal(t, now.Format(models.DateLayout), state.LastSubmissionDate)
	})

	t.Run("rollover mid-flight restarts at one", func(t *testing.T) {
		store := newFakeStateStore()
		store.states["user-1"] = &models.SubmissionState{
			DailySubmissionCount: 3,
			LastSubmissionDate:   now.AddDate(0, 0, -1).Format(models.DateLayout),
		}
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		count, err := limiter.Increment(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestLimiterMirrorFallback(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("read outage keeps today's count", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		for i := 0; i < 2; i++ {
			_, err := limiter.Increment(context.Background(), "user-1")
			require.NoError(t, err)
		}

		store.loadErr = errors.New("connection refused")

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Equal(t, 2, check.CurrentCount)
	})

	t.Run("read outage at the limit still blocks", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		for i := 0; i < 3; i++ {
			_, err := limiter.Increment(context.Background(), "user-1")
			require.NoError(t, err)
		}

		store.loadErr = errors.New("connection refused")

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.False(t, check.CanSubmit)
		assert.Equal(t, 3, check.CurrentCount)
	})

	t.Run("increment during a read outage extends the mirror", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now)

		for i := 0; i < 2; i++ {
			_, err := limiter.Increment(context.Background(), "user-1")
			require.NoError(t, err)
		}

		store.loadErr = errors.New("connection refused")

		count, err := limiter.Increment(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("stale mirror does not leak into a new day", func(t *testing.T) {
		store := newFakeStateStore()
		limiter := NewLimiter(store, 3)
		limiter.now = fixedClock(now.AddDate(0, 0, -1))

		for i := 0; i < 3; i++ {
			_, err := limiter.Increment(context.Background(), "user-1")
			require.NoError(t, err)
		}

		limiter.now = fixedClock(now)
		store.loadErr = errors.New("connection refused")

		check, err := limiter.Check(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, check.CanSubmit)
		assert.Zero(t, check.CurrentCount)
	})
}

func TestLimiterDefaultLimit(t *testing.T) {
	limiter := NewLimiter(newFakeStateStore(), 0)
	assert.Equal(t, models.DefaultDailyLimit, limiter.Limit())
}
