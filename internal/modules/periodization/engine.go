package periodization

import (
	"github.com/rs/zerolog"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/pkg/formulas"
)

const (
	plateRounding = 0.25
	dupWindow     = 7
	defaultRest   = 180
)

// Config holds the periodization scheme and its tunables.
type Config struct {
	Model     Model
	TargetRPE float64            // autoregulation set point, default 7.5
	Baseline  *domain.SessionPlan // plan for empty histories, default DefaultBaseline
}

// Engine produces the next session's intensity/volume pattern. It is only
// consulted when no deload is required.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// NewEngine creates a periodization engine with defaults applied.
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	if cfg.Model == "" {
		cfg.Model = ModelLinear
	}
	if cfg.TargetRPE == 0 {
		cfg.TargetRPE = DefaultTargetRPE
	}
	if cfg.Baseline == nil {
		baseline := DefaultBaseline
		cfg.Baseline = &baseline
	}
	return &Engine{
		cfg: cfg,
		log: log.With().Str("module", "periodization").Logger(),
	}
}

// NextSession computes the next session plan under the configured model.
// An empty history yields the neutral baseline plan.
func (e *Engine) NextSession(history domain.ExerciseHistory) domain.SessionPlan {
	if len(history.Sessions) == 0 {
		e.log.Debug().Str("exercise", history.ExerciseID).Msg("empty history, returning baseline plan")
		return *e.cfg.Baseline
	}

	switch e.cfg.Model {
	case ModelDUP:
		return e.dailyUndulating(history)
	case ModelAutoregulated:
		return e.autoregulated(history)
	default:
		return e.linear(history)
	}
}

// linear adds a fixed increment over the last logged weight; reps and sets
// are unchanged.
func (e *Engine) linear(history domain.ExerciseHistory) domain.SessionPlan {
	last := history.Sessions[0]

	increment := LinearIncrementCompound
	if history.ExerciseType == domain.ExerciseIsolation {
		increment = LinearIncrementIsolation
	}

	reps, sets := targetsOrBaseline(last, *e.cfg.Baseline)

	return domain.SessionPlan{
		TargetWeight:    formulas.RoundToIncrement(last.FirstSetWeight()+increment, plateRounding),
		TargetReps:      reps,
		TargetSets:      sets,
		ExpectedRPE:     e.cfg.TargetRPE,
		RestTimeSeconds: defaultRest,
	}
}

// dailyUndulating classifies recent sessions into intensity zones and picks
// the next zone so that intensity waves instead of grinding.
func (e *Engine) dailyUndulating(history domain.ExerciseHistory) domain.SessionPlan {
	window := history.Sessions
	if len(window) > dupWindow {
		window = window[:dupWindow]
	}

	ref := recentTopWeight(window)
	if ref <= 0 {
		return *e.cfg.Baseline
	}

	zones := make([]zone, len(window))
	for i, s := range window {
		zones[i] = classifyZone(s, ref)
	}

	next := nextZone(zones)
	target := zoneTargets[next]

	e.log.Debug().
		Str("exercise", history.ExerciseID).
		Str("last_zone", string(zones[0])).
		Str("next_zone", string(next)).
		Msg("dup zone selected")

	return domain.SessionPlan{
		TargetWeight:    formulas.RoundToIncrement(ref*target.weightFactor, plateRounding),
		TargetReps:      target.reps,
		TargetSets:      target.sets,
		ExpectedRPE:     target.expectedRPE,
		RestTimeSeconds: target.restSeconds,
	}
}

// autoregulated moves the last weight by a function of the gap between the
// last session's average RPE and the target RPE.
func (e *Engine) autoregulated(history domain.ExerciseHistory) domain.SessionPlan {
	last := history.Sessions[0]
	target := e.cfg.TargetRPE

	weight := last.FirstSetWeight()
	if lastRPE, ok := last.AvgRPE(); ok {
		switch {
		case lastRPE > target+1:
			weight *= 1 - 0.05*(lastRPE-target)
		case lastRPE < target-1:
			weight *= 1 + 0.025*(target-lastRPE)
		}
	}

	reps, sets := targetsOrBaseline(last, *e.cfg.Baseline)

	return domain.SessionPlan{
		TargetWeight:    formulas.RoundToIncrement(weight, plateRounding),
		TargetReps:      reps,
		TargetSets:      sets,
		ExpectedRPE:     target,
		RestTimeSeconds: defaultRest,
	}
}

// classifyZone buckets a session by its average set weight relative to the
// recent top weight.
func classifyZone(s domain.SessionRecord, ref float64) zone {
	if len(s.Sets) == 0 {
		return zoneLight
	}
	sum := 0.0
	for _, set := range s.Sets {
		sum += set.Weight
	}
	ratio := sum / float64(len(s.Sets)) / ref

	switch {
	case ratio >= heavyCutoff:
		return zoneHeavy
	case ratio >= moderateCutoff:
		return zoneModerate
	default:
		return zoneLight
	}
}

// nextZone picks the following intensity zone. Heavy never repeats
// back-to-back; a zone missing from the last three sessions is owed;
// otherwise the light -> moderate -> heavy cycle continues.
func nextZone(zones []zone) zone {
	last := zones[0]
	if last == zoneHeavy {
		return zoneLight
	}

	recent := zones
	if len(recent) > 3 {
		recent = recent[:3]
	}
	if !containsZone(recent, zoneLight) {
		return zoneLight
	}
	if !containsZone(recent, zoneHeavy) {
		return zoneHeavy
	}

	if last == zoneLight {
		return zoneModerate
	}
	return zoneHeavy
}

func containsZone(zones []zone, z zone) bool {
	for _, candidate := range zones {
		if candidate == z {
			return true
		}
	}
	return false
}

// recentTopWeight is the heaviest set lifted across the window, a proxy for
// current strength capacity.
func recentTopWeight(window []domain.SessionRecord) float64 {
	top := 0.0
	for _, s := range window {
		if w := s.TopSetWeight(); w > top {
			top = w
		}
	}
	return top
}

// targetsOrBaseline keeps the last session's targets, falling back to the
// baseline scheme when a session carries no targets.
func targetsOrBaseline(last domain.SessionRecord, baseline domain.SessionPlan) (reps, sets int) {
	reps, sets = last.TargetReps, last.TargetSets
	if reps <= 0 {
		reps = baseline.TargetReps
	}
	if sets <= 0 {
		sets = baseline.TargetSets
	}
	return reps, sets
}
