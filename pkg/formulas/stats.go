package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TargetSampleSize is the number of observations at which the
// data-sufficiency term of Confidence saturates.
const TargetSampleSize = 6

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the variance of a slice of float64 values.
// Empty and singleton inputs return 0.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Slope calculates the ordinary least-squares slope of values against
// their indices (x = 0..n-1). Returns 0 when fewer than two points exist,
// which also guards the zero-variance-of-x case.
func Slope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, values, nil, false)
	return beta
}

// RSquared measures how well a linear trend explains the series.
// Returns 0 for fewer than three points.
func RSquared(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	r2 := stat.RSquared(xs, values, nil, alpha, beta)
	if math.IsNaN(r2) {
		// Perfectly flat series: the trend explains everything there is.
		return 1
	}
	return Clamp(r2, 0, 1)
}

// Confidence combines a data-sufficiency term (sampleSize / TargetSampleSize,
// capped at 1) and a consistency term (1 - variance/maxAbs, floored at 0)
// into a single score in [0,1]. Every signal type uses this so confidences
// are comparable across signals.
func Confidence(sampleSize int, values []float64) float64 {
	sufficiency := math.Min(1, float64(sampleSize)/float64(TargetSampleSize))

	maxAbs := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}
	consistency := math.Max(0, 1-Variance(values)/maxAbs)

	return (sufficiency + consistency) / 2
}

// Clamp constrains v to the closed range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
