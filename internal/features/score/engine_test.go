package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneRepMax(t *testing.T) {
	t.Run("single rep taken at face value", func(t *testing.T) {
		oneRM, err := OneRepMax(100, 1)
		require.NoError(t, err)
		assert.Equal(t, 100.0, oneRM)
	})

	t.Run("multi rep uses Brzycki", func(t *testing.T) {
		oneRM, err := OneRepMax(100, 5)
		require.NoError(t, err)
		assert.InDelta(t, 112.5, oneRM, 1e-9)
	})

	t.Run("rejects non positive weight", func(t *testing.T) {
		_, err := OneRepMax(0, 5)
		assert.ErrorIs(t, err, ErrInvalidWeight)

		_, err = OneRepMax(-10, 5)
		assert.ErrorIs(t, err, ErrInvalidWeight)
	})

	t.Run("rejects reps outside 1..10", func(t *testing.T) {
		_, err := OneRepMax(100, 0)
		assert.ErrorIs(t, err, ErrInvalidReps)

		_, err = OneRepMax(100, 11)
		assert.ErrorIs(t, err, ErrInvalidReps)
	})
}

func TestStrengthIndex(t *testing.T) {
	t.Run("rejects non positive body weight", func(t *testing.T) {
		_, err := StrengthIndex(100, 0, GenderMale)
		assert.ErrorIs(t, err, ErrInvalidBodyWeight)
	})

	t.Run("positive for a typical lifter", func(t *testing.T) {
		index, err := StrengthIndex(100, 80, GenderMale)
		require.NoError(t, err)
		assert.Greater(t, index, 0.0)
	})

	t.Run("female polynomial differs from male", func(t *testing.T) {
		male, err := StrengthIndex(100, 70, GenderMale)
		require.NoError(t, err)

		female, err := StrengthIndex(100, 70, GenderFemale)
		require.NoError(t, err)

		assert.NotEqual(t, male, female)
		assert.Greater(t, female, male)
	})

	t.Run("heavier body weight lowers the index", func(t *testing.T) {
		light, err := StrengthIndex(100, 70, GenderMale)
		require.NoError(t, err)

		heavy, err := StrengthIndex(100, 110, GenderMale)
		require.NoError(t, err)

		assert.Greater(t, light, heavy)
	})
}

func TestAgeCoefficient(t *testing.T) {
	tests := []struct {
		name string
		age  int
		want float64
	}{
		{"youth below 14 gets flat bonus", 10, 1.23},
		{"taper starts at 14", 14, 1.23},
		{"taper midpoint", 18, 1.23 - (1.23-1.0)*4.0/9.0},
		{"taper ends at 23", 23, 1.0},
		{"reference band lower edge", 24, 1.0},
		{"reference band upper edge", 40, 1.0},
		{"first veteran band", 41, 1.045},
		{"45 still first band", 45, 1.045},
		{"50", 50, 1.1},
		{"60", 60, 1.2},
		{"70", 70, 1.3},
		{"79", 79, 1.4},
		{"80 and older", 80, 1.45},
		{"well past 80", 92, 1.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AgeCoefficient(tt.age), 1e-9)
		})
	}
}

func TestExerciseScore(t *testing.T) {
	t.Run("computes a positive score", func(t *testing.T) {
		got, err := ExerciseScore(LiftInput{
			Exercise:     ExerciseBenchPress,
			LiftedWeight: 100,
			Reps:         5,
			BodyWeight:   80,
			Age:          30,
			Gender:       GenderMale,
		})
		require.NoError(t, err)
		assert.Greater(t, got, 0.0)
	})

	t.Run("age bonus raises the score", func(t *testing.T) {
		input := LiftInput{
			Exercise:     ExerciseSquat,
			LiftedWeight: 120,
			Reps:         3,
			BodyWeight:   75,
			Age:          30,
			Gender:       GenderMale,
		}
		reference, err := ExerciseScore(input)
		require.NoError(t, err)

		input.Age = 55
		veteran, err := ExerciseScore(input)
		require.NoError(t, err)

		assert.InDelta(t, reference*1.15, veteran, 1e-9)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		_, err := ExerciseScore(LiftInput{
			Exercise:     ExerciseType("curl"),
			LiftedWeight: 50,
			Reps:         5,
			BodyWeight:   80,
			Age:          30,
			Gender:       GenderMale,
		})
		assert.ErrorIs(t, err, ErrUnknownExercise)
	})

	t.Run("propagates lift validation errors", func(t *testing.T) {
		_, err := ExerciseScore(LiftInput{
			Exercise:     ExerciseDeadlift,
			LiftedWeight: 180,
			Reps:         12,
			BodyWeight:   90,
			Age:          30,
			Gender:       GenderMale,
		})
		assert.ErrorIs(t, err, ErrInvalidReps)
	})
}
