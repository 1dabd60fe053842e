package formulas

import "math"

// Estimate1RM estimates a one-rep max from a set using the Epley formula:
// 1RM = weight * (1 + 0.0333 * reps). A single rep is its own max.
func Estimate1RM(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight*(1+0.0333*float64(reps))*100) / 100
}

// RoundToIncrement rounds a weight to the nearest loadable increment
// (e.g. 0.25 lb for microplates, 2.5 kg for standard plates).
func RoundToIncrement(value, increment float64) float64 {
	if increment <= 0 {
		return value
	}
	return math.Round(value/increment) * increment
}
