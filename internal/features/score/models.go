package score

import "errors"

var (
	ErrInvalidWeight        = errors.New("lifted weight must be greater than zero")
	ErrInvalidReps          = errors.New("reps must be between 1 and 10")
	ErrInvalidBodyWeight    = errors.New("body weight must be greater than zero")
	ErrDegenerateBodyWeight = errors.New("body weight produces a zero denominator")
	ErrUnknownExercise      = errors.New("unknown exercise type")
	ErrNoScores             = errors.New("at least one category score is required")
)

// Gender of the athlete; the normalization polynomial differs per gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ExerciseType identifies a scored lift
type ExerciseType string

const (
	ExerciseBenchPress    ExerciseType = "bench_press"
	ExerciseSquat         ExerciseType = "squat"
	ExerciseDeadlift      ExerciseType = "deadlift"
	ExerciseOverheadPress ExerciseType = "overhead_press"
	ExerciseBarbellRow    ExerciseType = "barbell_row"
)

// anchors map each exercise to the normalized-index value worth exactly 100 points
var anchors = map[ExerciseType]float64{
	ExerciseBenchPress:    95.0,
	ExerciseSquat:         130.0,
	ExerciseDeadlift:      150.0,
	ExerciseOverheadPress: 62.0,
	ExerciseBarbellRow:    85.0,
}

// CategoryScores holds the up-to-five per-category raw scores. Pointers
// distinguish "not measured yet" from an actual zero.
type CategoryScores struct {
	Strength       *float64 `json:"strength,omitempty"`
	ExplosivePower *float64 `json:"explosive_power,omitempty"`
	Cardio         *float64 `json:"cardio,omitempty"`
	MuscleMass     *float64 `json:"muscle_mass,omitempty"`
	BodyFat        *float64 `json:"body_fat,omitempty"`
}

// Present returns the values of the categories that have been measured.
func (s CategoryScores) Present() []float64 {
	var out []float64
	for _, p := range []*float64{s.Strength, s.ExplosivePower, s.Cardio, s.MuscleMass, s.BodyFat} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// LiftInput is the input of a single exercise score computation
type LiftInput struct {
	Exercise     ExerciseType `json:"exercise"`
	LiftedWeight float64      `json:"lifted_weight"`
	Reps         int          `json:"reps"`
	BodyWeight   float64      `json:"body_weight"`
	Age          int          `json:"age"`
	Gender       Gender       `json:"gender"`
}
