package deload

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/modules/plateau"
	"github.com/fitforge/coach/pkg/formulas"
)

const (
	// deloadDropRatio: a first-set weight at or below 90% of the prior
	// session's is treated as a past deload. This is a heuristic, not
	// ground truth; it can misfire on exercise-variation changes.
	deloadDropRatio = 0.9

	// deloadScanCapWeeks bounds the backwards scan for a past deload.
	deloadScanCapWeeks = 12

	// highSeverity marks signals strong enough to drive the decision.
	highSeverity = 0.7

	// plateRounding is the smallest loadable weight step.
	plateRounding = 0.25
)

// Advisor decides whether accumulated fatigue warrants a deload and shapes
// the reduced session.
type Advisor struct {
	log zerolog.Logger
}

// NewAdvisor creates a deload advisor.
func NewAdvisor(log zerolog.Logger) *Advisor {
	return &Advisor{log: log.With().Str("module", "deload").Logger()}
}

// Assess weighs plateau signals, recent effort, and time since the last
// deload. RPE-based need dominates: average RPE above 9 over the last three
// sessions always triggers a deload.
func (a *Advisor) Assess(history domain.ExerciseHistory, signals []plateau.Signal) Recommendation {
	weeksSince := weeksSinceLastDeload(history.Sessions)
	recentRPE := recentAvgRPE(history.Sessions, 3)

	timeBasedNeed := weeksSince >= 4
	highSeverityCount := 0
	for _, s := range signals {
		if s.Severity > highSeverity {
			highSeverityCount++
		}
	}
	signalBasedNeed := highSeverityCount >= 2
	rpeBasedNeed := recentRPE > 9

	shouldDeload := rpeBasedNeed || signalBasedNeed || (timeBasedNeed && len(signals) > 0)
	if !shouldDeload {
		return Recommendation{
			ShouldDeload:  false,
			Urgency:       UrgencyOptional,
			Strategy:      StrategyVolume,
			DurationWeeks: 1,
			Reasoning:     "No deload indicators present",
		}
	}

	strategy := pickStrategy(signals, recentRPE)

	urgency := UrgencyOptional
	switch {
	case rpeBasedNeed:
		urgency = UrgencyImmediate
	case signalBasedNeed:
		urgency = UrgencyRecommended
	}

	duration := 1
	if urgency == UrgencyImmediate {
		duration = 2
	}

	intensityCut, volumeCut := reductions(strategy)

	rec := Recommendation{
		ShouldDeload:       true,
		Urgency:            urgency,
		Strategy:           strategy,
		DurationWeeks:      duration,
		IntensityReduction: intensityCut,
		VolumeReduction:    volumeCut,
		Reasoning:          buildReasoning(rpeBasedNeed, signalBasedNeed, timeBasedNeed, recentRPE, weeksSince, signals),
	}

	a.log.Debug().
		Str("exercise", history.ExerciseID).
		Str("urgency", string(urgency)).
		Str("strategy", string(strategy)).
		Float64("recent_rpe", recentRPE).
		Int("weeks_since_deload", weeksSince).
		Msg("deload warranted")

	return rec
}

// GenerateDeloadSession builds the reduced session from the last performed
// session and the chosen reductions. Deterministic: the same inputs always
// produce the same plan.
func (a *Advisor) GenerateDeloadSession(last domain.SessionRecord, rec Recommendation) domain.SessionPlan {
	weight := formulas.RoundToIncrement(last.FirstSetWeight()*(1-rec.IntensityReduction), plateRounding)

	reps := int(math.Floor(float64(last.TargetReps) * (1 - rec.VolumeReduction)))
	sets := int(math.Floor(float64(last.TargetSets) * (1 - rec.VolumeReduction)))
	if reps < 1 {
		reps = 1
	}
	if sets < 1 {
		sets = 1
	}

	return domain.SessionPlan{
		TargetWeight:    weight,
		TargetReps:      reps,
		TargetSets:      sets,
		ExpectedRPE:     5,
		RestTimeSeconds: 180,
	}
}

func pickStrategy(signals []plateau.Signal, recentRPE float64) Strategy {
	switch {
	case recentRPE > 9:
		return StrategyCombined
	case hasSignal(signals, plateau.SignalRPEElevation) && hasSignal(signals, plateau.SignalVolumeStagnation):
		return StrategyVolume
	case hasSignal(signals, plateau.SignalWeightStagnation) && recentRPE > 8:
		return StrategyIntensity
	default:
		return StrategyCombined
	}
}

func reductions(s Strategy) (intensity, volume float64) {
	switch s {
	case StrategyIntensity:
		return 0.15, 0
	case StrategyVolume:
		return 0, 0.5
	default:
		return 0.10, 0.30
	}
}

// buildReasoning concatenates a clause per contributing trigger.
// Deterministic string construction, not free-form generation.
func buildReasoning(rpeNeed, signalNeed, timeNeed bool, recentRPE float64, weeksSince int, signals []plateau.Signal) string {
	var clauses []string
	if rpeNeed {
		clauses = append(clauses, fmt.Sprintf("average RPE %.1f over the last 3 sessions exceeds 9.0", recentRPE))
	}
	if signalNeed {
		var names []string
		for _, s := range signals {
			if s.Severity > highSeverity {
				names = append(names, string(s.Type))
			}
		}
		clauses = append(clauses, fmt.Sprintf("high-severity plateau signals: %s", strings.Join(names, ", ")))
	}
	if timeNeed && len(signals) > 0 {
		clauses = append(clauses, fmt.Sprintf("%d weeks since the last detected deload with plateau signals present", weeksSince))
	}
	return strings.Join(clauses, "; ")
}

// weeksSinceLastDeload scans newest to oldest for a session whose first-set
// weight dropped at least 10% from the prior session, capped at 12 weeks.
// Assumes roughly one session per week.
func weeksSinceLastDeload(sessions []domain.SessionRecord) int {
	scan := len(sessions) - 1
	if scan > deloadScanCapWeeks {
		scan = deloadScanCapWeeks
	}
	for i := 0; i < scan; i++ {
		prior := sessions[i+1].FirstSetWeight()
		if prior > 0 && sessions[i].FirstSetWeight() <= prior*deloadDropRatio {
			return i
		}
	}
	if scan < 0 {
		return 0
	}
	return scan
}

func hasSignal(signals []plateau.Signal, t plateau.SignalType) bool {
	for _, s := range signals {
		if s.Type == t {
			return true
		}
	}
	return false
}

// recentAvgRPE averages logged RPEs across the n most recent sessions,
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
