package personalization

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/pkg/formulas"
)

const (
	// PopulationBaselineRate is the reference weekly progression rate a
	// lifter's own history is compared against.
	PopulationBaselineRate = 0.015

	// responseHistoryCap bounds how far back the response rate looks.
	responseHistoryCap = 12

	// emaPeriod smooths the estimated-1RM series before deriving a rate.
	emaPeriod = 3

	// volumeWindow is how many recent sessions feed the weekly-volume mean.
	volumeWindow = 4

	// volumeToleranceFloor is the minimum assumed weekly set tolerance.
	volumeToleranceFloor = 8

	plateRounding = 0.25
)

// Service scales raw recommendations by training age, historical response,
// and recovery profile.
type Service struct {
	log zerolog.Logger
}

// NewService creates a personalization service.
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("module", "personalization").Logger()}
}

// Personalize computes the per-lifter scaling factors. When the historical
// response rate cannot be derived the response modifier falls back to 1.0
// and the result is flagged degraded; this is never an error.
func (s *Service) Personalize(history domain.ExerciseHistory, factors Factors) Result {
	base := baseRate(factors.TrainingAgeMonths)
	recovery := recoveryModifier(factors.RecoveryRate)

	response := 1.0
	degraded := false
	if rate, ok := s.historicalResponseRate(history); ok {
		response = formulas.Clamp(rate/PopulationBaselineRate, 0.5, 2.0)
	} else {
		degraded = true
		s.log.Debug().
			Str("exercise", history.ExerciseID).
			Msg("response rate underivable, using neutral modifier")
	}

	return Result{
		ProgressionRate:      base * response * recovery,
		ResponseModifier:     response,
		RecoveryModifier:     recovery,
		Volume:               s.volumeRecommendation(history, factors),
		DeloadFrequencyWeeks: deloadFrequencyWeeks(factors),
		Degraded:             degraded,
	}
}

// ScalePlan applies the personalized modifiers to a raw plan by scaling its
// weight increment over the last session. Reductions pass through unscaled.
func (s *Service) ScalePlan(plan domain.SessionPlan, lastWeight float64, result Result) domain.SessionPlan {
	increment := plan.TargetWeight - lastWeight
	if lastWeight <= 0 || increment <= 0 {
		return plan
	}

	scaled := lastWeight + increment*result.ResponseModifier*result.RecoveryModifier
	plan.TargetWeight = formulas.RoundToIncrement(scaled, plateRounding)
	return plan
}

// historicalResponseRate derives the lifter's weekly progression rate from
// the EMA-smoothed estimated-1RM series of recent sessions.
func (s *Service) historicalResponseRate(history domain.ExerciseHistory) (float64, bool) {
	sessions := history.Sessions
	if len(sessions) > responseHistoryCap {
		sessions = sessions[:responseHistoryCap]
	}

	// Oldest first for trend math.
	e1rms := make([]float64, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		if v := sessionE1RM(sessions[i]); v > 0 {
			e1rms = append(e1rms, v)
		}
	}

	return formulas.SmoothedTrend(e1rms, emaPeriod)
}

// sessionE1RM is the best estimated single within a session.
func sessionE1RM(s domain.SessionRecord) float64 {
	best := 0.0
	for _, set := range s.Sets {
		if !set.Completed {
			continue
		}
		if v := formulas.Estimate1RM(set.Weight, set.Reps); v > best {
			best = v
		}
	}
	return best
}

// volumeRecommendation compares current weekly volume to estimated
// tolerance and proposes one set per week toward it, with a two-set band.
func (s *Service) volumeRecommendation(history domain.ExerciseHistory, factors Factors) VolumeRecommendation {
	recent := history.Sessions
	if len(recent) > volumeWindow {
		recent = recent[:volumeWindow]
	}

	current := 0.0
	if len(recent) > 0 {
		counts := make([]float64, len(recent))
		for i, session := range recent {
			counts[i] = float64(len(session.Sets))
		}
		current = formulas.Mean(counts)
	}

	tolerance := factors.VolumeTolerance
	if tolerance <= 0 {
		for _, session := range history.Sessions {
			if n := len(session.Sets); n > tolerance {
				tolerance = n
			}
		}
	}
	if tolerance < volumeToleranceFloor {
		tolerance = volumeToleranceFloor
	}

	recommended := int(math.Round(current))
	switch {
	case current < float64(tolerance):
		recommended++
	case current > float64(tolerance):
		recommended--
	}
	if recommended < 1 {
		recommended = 1
	}

	minSets := recommended - 2
	if minSets < 1 {
		minSets = 1
	}

	return VolumeRecommendation{
		CurrentWeeklySets:     current,
		RecommendedWeeklySets: recommended,
		MinWeeklySets:         minSets,
		MaxWeeklySets:         recommended + 2,
		ToleranceWeeklySets:   tolerance,
	}
}

// baseRate is the expected weekly progression for a training age:
// novices progress fastest, advanced lifters slowest.
func baseRate(trainingAgeMonths int) float64 {
	switch {
	case trainingAgeMonths < 6:
		return 0.025
	case trainingAgeMonths < 24:
		return 0.015
	default:
		return 0.008
	}
}

func recoveryModifier(rate domain.RecoveryRate) float64 {
	switch rate {
	case domain.RecoveryFast:
		return 1.2
	case domain.RecoverySlow:
		return 0.8
	default:
		return 1.0
	}
}

// deloadFrequencyWeeks is the personalized deload cadence: base 4 weeks
// (3 beyond two years of training age), stretched or shortened by recovery.
func deloadFrequencyWeeks(factors Factors) int {
	base := 4.0
	if factors.TrainingAgeMonths > 24 {
		base = 3.0
	}

	modifier := 1.0
	switch factors.RecoveryRate {
	case domain.RecoveryFast:
		modifier = 1.3
	case domain.RecoverySlow:
		modifier = 0.7
	}

	return int(math.Round(base * modifier))
}
