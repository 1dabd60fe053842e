package plateau

import (
	"github.com/rs/zerolog"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/pkg/formulas"
)

// Config holds detector thresholds. Zero values are filled with defaults.
type Config struct {
	WindowWeeks           int     // sessions inspected per signal (default 4)
	SignificanceThreshold float64 // minimum per-session growth rate (default 0.005)
	RPEThreshold          float64 // elevated-effort cutoff (default 8.5)
}

// Default thresholds, tuned for roughly-weekly session cadence.
const (
	DefaultWindowWeeks           = 4
	DefaultSignificanceThreshold = 0.005
	DefaultRPEThreshold          = 8.5

	// regressionRate is the per-session rate below which a lift is going
	// backwards rather than merely stalling.
	regressionRate = -0.01

	// sustainedCompletionFloor marks chronic under-completion of target reps.
	sustainedCompletionFloor = 0.85
)

// Detector inspects a window of recent sessions and emits plateau signals.
type Detector struct {
	cfg Config
	log zerolog.Logger
}

// NewDetector creates a plateau detector with defaults applied.
func NewDetector(cfg Config, log zerolog.Logger) *Detector {
	if cfg.WindowWeeks <= 0 {
		cfg.WindowWeeks = DefaultWindowWeeks
	}
	if cfg.SignificanceThreshold == 0 {
		cfg.SignificanceThreshold = DefaultSignificanceThreshold
	}
	if cfg.RPEThreshold == 0 {
		cfg.RPEThreshold = DefaultRPEThreshold
	}
	return &Detector{
		cfg: cfg,
		log: log.With().Str("module", "plateau").Logger(),
	}
}

// Detect returns zero or more plateau signals for the history. Histories
// shorter than the window return no signals: partial history is never
// evidence of a plateau.
func (d *Detector) Detect(history domain.ExerciseHistory) []Signal {
	if len(history.Sessions) < d.cfg.WindowWeeks {
		d.log.Debug().
			Str("exercise", history.ExerciseID).
			Int("sessions", len(history.Sessions)).
			Int("window", d.cfg.WindowWeeks).
			Msg("insufficient history for plateau detection")
		return nil
	}

	window := windowOldestFirst(history.Sessions, d.cfg.WindowWeeks)
	recentRPE := recentAvgRPE(history.Sessions, 3)

	signals := make([]Signal, 0, 4)
	if s, ok := d.weightStagnation(window, recentRPE); ok {
		signals = append(signals, s)
	}
	if s, ok := d.rpeElevation(window); ok {
		signals = append(signals, s)
	}
	if s, ok := d.volumeStagnation(window, recentRPE); ok {
		signals = append(signals, s)
	}
	if s, ok := d.completionDecline(window, recentRPE); ok {
		signals = append(signals, s)
	}

	d.log.Debug().
		Str("exercise", history.ExerciseID).
		Int("signals", len(signals)).
		Msg("plateau detection complete")

	return signals
}

// weightStagnation checks first-set weight growth against the significance
// threshold, normalized by the oldest weight in the window.
func (d *Detector) weightStagnation(window []domain.SessionRecord, recentRPE float64) (Signal, bool) {
	weights := make([]float64, len(window))
	for i, s := range window {
		weights[i] = s.FirstSetWeight()
	}

	rate := progressionRate(weights)
	if rate >= d.cfg.SignificanceThreshold {
		return Signal{}, false
	}

	action := ActionContinue
	switch {
	case recentRPE > d.cfg.RPEThreshold:
		action = ActionDeload
	case rate < regressionRate:
		action = ActionChangeExercise
	case rate < 0.001:
		action = ActionAdjustVolume
	}

	return Signal{
		Type:              SignalWeightStagnation,
		Severity:          formulas.Clamp(1-rate/d.cfg.SignificanceThreshold, 0, 1),
		Confidence:        formulas.Confidence(len(weights), weights),
		RecommendedAction: action,
	}, true
}

// rpeElevation fires when logged effort across the window is high on
// average or trending upward. Sessions without RPE contribute nothing.
func (d *Detector) rpeElevation(window []domain.SessionRecord) (Signal, bool) {
	var rpes []float64
	for _, s := range window {
		rpes = append(rpes, s.RPEValues()...)
	}
	if len(rpes) == 0 {
		return Signal{}, false
	}

	mean := formulas.Mean(rpes)
	slope := formulas.Slope(rpes)
	if mean <= d.cfg.RPEThreshold && slope <= 0.1 {
		return Signal{}, false
	}

	action := ActionAdjustVolume
	if mean > 9 {
		action = ActionDeload
	}

	return Signal{
		Type:              SignalRPEElevation,
		Severity:          formulas.Clamp((mean-7)/3, 0, 1),
		Confidence:        formulas.Confidence(len(rpes), rpes),
		RecommendedAction: action,
	}, true
}

// volumeStagnation mirrors the weight check on total session volume.
func (d *Detector) volumeStagnation(window []domain.SessionRecord, recentRPE float64) (Signal, bool) {
	volumes := make([]float64, len(window))
	for i, s := range window {
		volumes[i] = s.TotalVolume()
	}

	rate := progressionRate(volumes)
	if rate >= d.cfg.SignificanceThreshold {
		return Signal{}, false
	}

	action := ActionAdjustVolume
	if recentRPE > d.cfg.RPEThreshold {
		action = ActionDeload
	}

	return Signal{
		Type:              SignalVolumeStagnation,
		Severity:          formulas.Clamp(1-rate/d.cfg.SignificanceThreshold, 0, 1),
		Confidence:        formulas.Confidence(len(volumes), volumes),
		RecommendedAction: action,
	}, true
}

// completionDecline fires on a falling completion trend or a sustained
// completion ratio below the floor.
func (d *Detector) completionDecline(window []domain.SessionRecord, recentRPE float64) (Signal, bool) {
	var ratios []float64
	for _, s := range window {
		target := s.TargetReps * s.TargetSets
		if target <= 0 {
			continue
		}
		ratios = append(ratios, float64(s.CompletedReps())/float64(target))
	}
	if len(ratios) == 0 {
		return Signal{}, false
	}

	mean := formulas.Mean(ratios)
	slope := formulas.Slope(ratios)
	if slope >= -1e-9 && mean >= sustainedCompletionFloor {
		return Signal{}, false
	}

	action := ActionAdjustVolume
	if recentRPE > d.cfg.RPEThreshold {
		action = ActionDeload
	}

	return Signal{
		Type:              SignalCompletionDecline,
		Severity:          formulas.Clamp(1-mean, 0, 1),
		Confidence:        formulas.Confidence(len(ratios), ratios),
		RecommendedAction: action,
	}, true
}

// windowOldestFirst takes the n most recent sessions (stored newest-first)
// and returns them oldest to newest for trend analysis.
func windowOldestFirst(sessions []domain.SessionRecord, n int) []domain.SessionRecord {
	if n > len(sessions) {
		n = len(sessions)
	}
	window := make([]domain.SessionRecord, n)
	for i := 0; i < n; i++ {
		window[i] = sessions[n-1-i]
	}
	return window
}

// progressionRate is the OLS slope normalized by the oldest value,
// i.e. fractional growth per session. A non-positive baseline yields 0.
func progressionRate(values []float64) float64 {
	if len(values) == 0 || values[0] <= 0 {
		return 0
	}
	return formulas.Slope(values) / values[0]
}

// recentAvgRPE averages all logged RPEs across the n most recent sessions,
// defaulting to 7 when nothing was logged.
func recentAvgRPE(sessions []domain.SessionRecord, n int) float64 {
	if n > len(sessions) {
		n = len(sessions)
	}
	var rpes []float64
	for _, s := range sessions[:n] {
		rpes = append(rpes, s.RPEValues()...)
	}
	if len(rpes) == 0 {
		return 7
	}
	return formulas.Mean(rpes)
}
