package score

import "math"

// Коэффициенты нормализующего полинома по массе тела (на основе формулы Уилкса).
// Индекс = 1ПМ * 600 / P(масса), где P это полином четвертой степени.
var (
	maleCoefficients   = [5]float64{47.46178854, 8.472061379, 0.07369410346, -0.001395833811, 7.07665973e-06}
	femaleCoefficients = [5]float64{-125.4255398, 13.71219419, -0.03307250631, -0.001050400051, 9.38773881e-06}
)

const normalizationScale = 600.0

// OneRepMax estimates the single-rep maximum from a lift. A single rep is
// taken at face value; multi-rep sets use the Brzycki estimate.
func OneRepMax(weight float64, reps int) (float64, error) {
	if weight <= 0 {
		return 0, ErrInvalidWeight
	}
	if reps < 1 || reps > 10 {
		return 0, ErrInvalidReps
	}

	if reps == 1 {
		return weight, nil
	}
	return weight * 36.0 / (37.0 - float64(reps)), nil
}

// StrengthIndex normalizes a one-rep max by body weight into a dimensionless
// index using a gender-specific quartic rational polynomial.
func StrengthIndex(oneRM, bodyWeight float64, gender Gender) (float64, error) {
	if bodyWeight <= 0 {
		return 0, ErrInvalidBodyWeight
	}

	c := maleCoefficients
	if gender == GenderFemale {
		c = femaleCoefficients
	}

	denom := c[0] + c[1]*bodyWeight + c[2]*math.Pow(bodyWeight, 2) +
		c[3]*math.Pow(bodyWeight, 3) + c[4]*math.Pow(bodyWeight, 4)
	if denom == 0 {
		return 0, ErrDegenerateBodyWeight
	}

	return oneRM * normalizationScale / denom, nil
}

// AgeCoefficient returns the age correction applied to the strength index.
// Youth below 14 get a flat bonus that tapers linearly to 1.0 by 23; the
// 24-40 range is the reference band; older athletes get stepped bonuses.
func AgeCoefficient(age int) float64 {
	switch {
	case age < 14:
		return 1.23
	case age <= 23:
		// Линейная интерполяция 1.23 -> 1.0 на отрезке 14..23
		return 1.23 - (1.23-1.0)*float64(age-14)/9.0
	case age <= 40:
		return 1.0
	case age <= 45:
		return 1.045
	case age <= 50:
		return 1.1
	case age <= 55:
		return 1.15
	case age <= 60:
		return 1.2
	case age <= 65:
		return 1.25
	case age <= 70:
		return 1.3
	case age <= 75:
		return 1.35
	case age <= 79:
		return 1.4
	default:
		return 1.45
	}
}

// ExerciseScore computes the normalized 0-100+ score of a single lift. The
// result is unbounded above; capping is the caller's policy decision.
func ExerciseScore(input LiftInput) (float64, error) {
	oneRM, err := OneRepMax(input.LiftedWeight, input.Reps)
	if err != nil {
		return 0, err
	}

	index, err := StrengthIndex(oneRM, input.BodyWeight, input.Gender)
	if err != nil {
		return 0, err
	}

	anchor, ok := anchors[input.Exercise]
	if !ok {
		return 0, ErrUnknownExercise
	}

	return index * AgeCoefficient(input.Age) / anchor * 100.0, nil
}
