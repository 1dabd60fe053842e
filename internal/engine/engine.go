package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/modules/deload"
	"github.com/fitforge/coach/internal/modules/periodization"
	"github.com/fitforge/coach/internal/modules/personalization"
	"github.com/fitforge/coach/internal/modules/plateau"
	"github.com/fitforge/coach/pkg/formulas"
)

// state tracks the per-call pipeline position. Nothing persists between
// calls; every invocation starts at idle.
type state string

const (
	stateIdle          state = "idle"
	stateDetecting     state = "detecting"
	stateDeloading     state = "deloading"
	statePeriodizing   state = "periodizing"
	statePersonalizing state = "personalizing"
	stateDone          state = "done"
)

// Engine is the single public entry point: detection, deload check,
// periodization, and personalization in that order. It is a pure
// computation and safe for concurrent use.
type Engine struct {
	log  zerolog.Logger // tagged with the engine module
	root zerolog.Logger // untagged, handed to submodules
}

// New creates a recommendation engine.
func New(log zerolog.Logger) *Engine {
	return &Engine{
		log:  log.With().Str("module", "engine").Logger(),
		root: log,
	}
}

// Recommend produces the next-session recommendation for one exercise.
// Malformed input fails fast; insufficient data degrades to conservative
// defaults with confidence reflecting the shortfall.
func (e *Engine) Recommend(history domain.ExerciseHistory, cfg Config) (*Recommendation, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := history.Validate(); err != nil {
		return nil, &MalformedHistoryError{Reason: err.Error()}
	}

	st := stateIdle
	transition := func(next state) {
		e.log.Debug().
			Str("exercise", history.ExerciseID).
			Str("from", string(st)).
			Str("to", string(next)).
			Msg("state transition")
		st = next
	}

	transition(stateDetecting)
	detector := plateau.NewDetector(plateau.Config{
		WindowWeeks:           cfg.PlateauWindowWeeks,
		SignificanceThreshold: cfg.SignificanceThreshold,
		RPEThreshold:          cfg.RPEThreshold,
	}, e.root)
	signals := detector.Detect(history)

	advisor := deload.NewAdvisor(e.root)
	assessment := advisor.Assess(history, signals)

	var plan domain.SessionPlan
	var reasoning string
	if assessment.ShouldDeload {
		transition(stateDeloading)
		var last domain.SessionRecord
		if len(history.Sessions) > 0 {
			last = history.Sessions[0]
		}
		plan = advisor.GenerateDeloadSession(last, assessment)
		reasoning = "Deload: " + assessment.Reasoning
	} else {
		transition(statePeriodizing)
		per := periodization.NewEngine(periodization.Config{
			Model:     cfg.PeriodizationModel,
			TargetRPE: cfg.TargetRPE,
			Baseline:  cfg.Baseline,
		}, e.root)
		plan = per.NextSession(history)
		reasoning = fmt.Sprintf("Progression under the %s model", cfg.PeriodizationModel)
	}

	transition(statePersonalizing)
	var warnings []string
	var persResult *personalization.Result
	if cfg.Personalization != nil {
		svc := personalization.NewService(e.root)
		result := svc.Personalize(history, *cfg.Personalization)
		if result.Degraded {
			warnings = append(warnings, "personalization degraded: historical response rate underivable, neutral modifier applied")
		}
		if assessment.ShouldDeload {
			// Deload sessions are recovery, not progression.
			result.ProgressionRate = 0
		} else {
			lastWeight := 0.0
			if len(history.Sessions) > 0 {
				lastWeight = history.Sessions[0].FirstSetWeight()
			}
			plan = svc.ScalePlan(plan, lastWeight, result)
		}
		persResult = &result
	}

	transition(stateDone)
	rec := &Recommendation{
		Plan:            plan,
		Signals:         signals,
		Deload:          assessment,
		Personalization: persResult,
		Confidence:      confidenceBreakdown(history, persResult),
		Warnings:        warnings,
		Reasoning:       reasoning,
	}

	e.log.Debug().
		Str("exercise", history.ExerciseID).
		Bool("deload", assessment.ShouldDeload).
		Float64("target_weight", plan.TargetWeight).
		Int("signals", len(signals)).
		Msg("recommendation assembled")

	return rec, nil
}

// confidenceBreakdown derives the three confidence components from the
// first-set weight series, oldest first.
func confidenceBreakdown(history domain.ExerciseHistory, pers *personalization.Result) ConfidenceBreakdown {
	n := len(history.Sessions)
	if n == 0 {
		return ConfidenceBreakdown{}
	}
	weights := make([]float64, n)
	for i, s := range history.Sessions {
		weights[n-1-i] = s.FirstSetWeight()
	}

	var deltas []float64
	for i := 1; i < len(weights); i++ {
		deltas = append(deltas, weights[i]-weights[i-1])
	}

	consistency := 0.0
	if len(deltas) > 0 {
		consistency = formulas.Confidence(len(deltas), deltas)
	}
	if pers != nil && pers.Degraded {
		consistency /= 2
	}

	return ConfidenceBreakdown{
		DataQuality:         formulas.Confidence(n, weights),
		HistoricalAccuracy:  formulas.RSquared(weights),
		ResponseConsistency: consistency,
	}
}
