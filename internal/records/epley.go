package records

import "math"

// epleyRepsCap keeps the Epley denominator positive; past 30 reps the
// estimate stops being meaningful anyway.
const epleyRepsCap = 30

// EstimateOneRepMax estimates a one-rep max from a weight/reps pair
// using the (inverted) Epley formula. A true single needs no estimate
// and returns the weight as-is; zero-rep sets estimate nothing.
func EstimateOneRepMax(weightKilos float64, reps int) float64 {
	if reps <= 0 || weightKilos <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKilos
	}
	if reps > epleyRepsCap {
		reps = epleyRepsCap
	}
	return math.Round(weightKilos / (1.0278 - 0.0278*float64(reps)))
}
