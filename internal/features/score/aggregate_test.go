package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestAggregate(t *testing.T) {
	t.Run("mean of all five categories", func(t *testing.T) {
		got, err := Aggregate(CategoryScores{
			Strength:       ptr(80),
			ExplosivePower: ptr(60),
			Cardio:         ptr(70),
			MuscleMass:     ptr(90),
			BodyFat:        ptr(50),
		})
		require.NoError(t, err)
		assert.InDelta(t, 70.0, got, 1e-9)
	})

	t.Run("missing categories are excluded, not counted as zero", func(t *testing.T) {
		got, err := Aggregate(CategoryScores{
			Strength: ptr(90),
			Cardio:   ptr(60),
		})
		require.NoError(t, err)
		assert.InDelta(t, 75.0, got, 1e-9)
	})

	t.Run("single category passes through", func(t *testing.T) {
		got, err := Aggregate(CategoryScores{MuscleMass: ptr(83.5)})
		require.NoError(t, err)
		assert.InDelta(t, 83.5, got, 1e-9)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		got, err := Aggregate(CategoryScores{
			Strength: ptr(70.123),
			Cardio:   ptr(70.124),
		})
		require.NoError(t, err)
		assert.InDelta(t, 70.12, got, 1e-9)
	})

	t.Run("an explicit zero still counts", func(t *testing.T) {
		got, err := Aggregate(CategoryScores{
			Strength: ptr(0),
			Cardio:   ptr(80),
		})
		require.NoError(t, err)
		assert.InDelta(t, 40.0, got, 1e-9)
	})

	t.Run("no categories at all", func(t *testing.T) {
		_, err := Aggregate(CategoryScores{})
		assert.ErrorIs(t, err, ErrNoScores)
	})
}
