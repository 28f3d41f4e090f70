package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	rejectedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("rejection inside the window stays rejected", func(t *testing.T) {
		now := rejectedAt.Add(6 * 24 * time.Hour)
		assert.Equal(t, StatusRejected, EffectiveStatus(StatusRejected, rejectedAt, now))
	})

	t.Run("rejection past the window reads as not applied", func(t *testing.T) {
		now := rejectedAt.Add(CooldownDays * 24 * time.Hour)
		assert.Equal(t, StatusNotApplied, EffectiveStatus(StatusRejected, rejectedAt, now))
	})

	t.Run("other statuses pass through", func(t *testing.T) {
		now := rejectedAt.Add(30 * 24 * time.Hour)
		assert.Equal(t, StatusPending, EffectiveStatus(StatusPending, rejectedAt, now))
		assert.Equal(t, StatusVerified, EffectiveStatus(StatusVerified, rejectedAt, now))
	})

	t.Run("zero timestamp never flips", func(t *testing.T) {
		assert.Equal(t, StatusRejected, EffectiveStatus(StatusRejected, time.Time{}, time.Now()))
	})
}

func TestCooldownRemaining(t *testing.T) {
	rejectedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"immediately after rejection", rejectedAt, 7},
		{"partial days round up", rejectedAt.Add(3*24*time.Hour + time.Hour), 4},
		{"last hour still counts as one day", rejectedAt.Add(7*24*time.Hour - time.Hour), 1},
		{"exactly at the deadline", rejectedAt.Add(7 * 24 * time.Hour), 0},
		{"long past the deadline", rejectedAt.Add(30 * 24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CooldownRemaining(rejectedAt, tt.now))
		})
	}
}
