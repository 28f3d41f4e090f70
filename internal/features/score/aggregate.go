package score

import "math"

// Aggregate returns the composite score: the arithmetic mean of the present
// category scores rounded to two decimals. Fails when nothing is measured,
// there is no meaningful average of an empty set.
func Aggregate(scores CategoryScores) (float64, error) {
	present := scores.Present()
	if len(present) == 0 {
		return 0, ErrNoScores
	}

	sum := 0.0
	for _, v := range present {
		sum += v
	}

	return math.Round(sum/float64(len(present))*100) / 100, nil
}
