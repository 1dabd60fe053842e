package formulas

import (
	"github.com/markcheno/go-talib"
)

// SmoothedTrend calculates the per-sample fractional growth rate of a series
// after smoothing it with an exponential moving average. Smoothing keeps a
// single outlier session from swinging the derived rate.
//
// Returns (rate, true) on success, (0, false) when the series is too short
// to smooth (fewer than period+1 samples) or has a non-positive baseline.
func SmoothedTrend(values []float64, period int) (float64, bool) {
	if period < 2 || len(values) < period+1 {
		return 0, false
	}

	ema := talib.Ema(values, period)

	// talib leaves the lookback prefix as zeros; the first usable sample
	// is at index period-1.
	base := ema[period-1]
	last := ema[len(ema)-1]
	span := len(ema) - period
	if base <= 0 || span < 1 {
		return 0, false
	}

	return (last - base) / base / float64(span), true
}
