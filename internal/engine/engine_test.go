package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/modules/deload"
	"github.com/fitforge/coach/internal/modules/periodization"
	"github.com/fitforge/coach/internal/modules/personalization"
	"github.com/fitforge/coach/internal/modules/plateau"
)

var testBase = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func session(weeksAgo int, weight float64, reps, sets int, rpe float64) domain.SessionRecord {
	date := testBase.AddDate(0, 0, -7*weeksAgo)
	s := domain.SessionRecord{Date: date, TargetReps: reps, TargetSets: sets}
	for i := 0; i < sets; i++ {
		set := domain.SetRecord{
			SetNumber: i + 1,
			Weight:    weight,
			Reps:      reps,
			Completed: true,
			Timestamp: date,
		}
		if rpe > 0 {
			v := rpe
			set.RPE = &v
		}
		s.Sets = append(s.Sets, set)
	}
	return s
}

func compoundHistory(sessions ...domain.SessionRecord) domain.ExerciseHistory {
	return domain.ExerciseHistory{
		ExerciseID:   "barbell-bench-press",
		ExerciseType: domain.ExerciseCompound,
		Sessions:     sessions,
	}
}

func newTestEngine() *Engine {
	return New(zerolog.Nop())
}

func TestRecommendInvalidConfig(t *testing.T) {
	e := newTestEngine()
	h := compoundHistory(session(0, 185, 5, 3, 7))

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative significance threshold", cfg: Config{SignificanceThreshold: -0.005}},
		{name: "unknown model", cfg: Config{PeriodizationModel: "block"}},
		{name: "rpe threshold out of range", cfg: Config{RPEThreshold: 11}},
		{name: "target rpe out of range", cfg: Config{TargetRPE: 0.5}},
		{name: "window too small", cfg: Config{PlateauWindowWeeks: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Recommend(h, tt.cfg)
			require.Error(t, err)
			var cfgErr *InvalidConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRecommendMalformedHistory(t *testing.T) {
	e := newTestEngine()

	// Sessions stored oldest-first violate the ordering invariant.
	h := compoundHistory(
		session(2, 175, 5, 3, 7),
		session(1, 180, 5, 3, 7),
		session(0, 185, 5, 3, 7),
	)

	_, err := e.Recommend(h, DefaultConfig())
	require.Error(t, err)
	var histErr *MalformedHistoryError
	assert.ErrorAs(t, err, &histErr)
}

func TestRecommendLinearProgressionScenario(t *testing.T) {
	e := newTestEngine()

	// Three clean sessions at +2.5/session, steady RPE 7: no signals, no
	// deload, next linear step is 187.5.
	h := compoundHistory(
		session(0, 185, 5, 3, 7),
		session(1, 180, 5, 3, 7),
		session(2, 175, 5, 3, 7),
	)

	rec, err := e.Recommend(h, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, rec.Signals)
	assert.False(t, rec.Deload.ShouldDeload)
	assert.InDelta(t, 187.5, rec.Plan.TargetWeight, 1e-9)
	assert.Equal(t, 5, rec.Plan.TargetReps)
	assert.Equal(t, 3, rec.Plan.TargetSets)
	assert.Nil(t, rec.Personalization)
}

func TestRecommendDeloadScenario(t *testing.T) {
	e := newTestEngine()

	// Six sessions flat at 185 with RPE climbing to the 9s: stagnation plus
	// elevation, and an immediate deload that skips periodization.
	h := compoundHistory(
		session(0, 185, 5, 3, 9.2),
		session(1, 185, 5, 3, 9.5),
		session(2, 185, 5, 3, 9.3),
		session(3, 185, 5, 3, 9.0),
		session(4, 185, 5, 3, 8.0),
		session(5, 185, 5, 3, 7.0),
	)

	rec, err := e.Recommend(h, DefaultConfig())
	require.NoError(t, err)

	types := make(map[plateau.SignalType]bool)
	for _, s := range rec.Signals {
		types[s.Type] = true
	}
	assert.True(t, types[plateau.SignalWeightStagnation])
	assert.True(t, types[plateau.SignalRPEElevation])

	require.True(t, rec.Deload.ShouldDeload)
	assert.Equal(t, deload.UrgencyImmediate, rec.Deload.Urgency)
	assert.Equal(t, deload.StrategyCombined, rec.Deload.Strategy)
	assert.Equal(t, 2, rec.Deload.DurationWeeks)

	// Combined deload: 10% intensity, 30% volume off the last session.
	assert.InDelta(t, 166.5, rec.Plan.TargetWeight, 1e-9)
	assert.Equal(t, 3, rec.Plan.TargetReps)
	assert.Equal(t, 2, rec.Plan.TargetSets)
	assert.InDelta(t, 5.0, rec.Plan.ExpectedRPE, 1e-9)
	assert.Contains(t, rec.Reasoning, "Deload")
}

func TestRecommendEmptyHistoryDUP(t *testing.T) {
	e := newTestEngine()

	cfg := DefaultConfig()
	cfg.PeriodizationModel = periodization.ModelDUP

	rec, err := e.Recommend(compoundHistory(), cfg)
	require.NoError(t, err, "empty history must not error")
	assert.Equal(t, periodization.DefaultBaseline, rec.Plan)
	assert.Empty(t, rec.Signals)
	assert.False(t, rec.Deload.ShouldDeload)
	assert.Zero(t, rec.Confidence.DataQuality)
}

func TestRecommendDeterminism(t *testing.T) {
	e := newTestEngine()

	h := compoundHistory(
		session(0, 185, 5, 3, 8.1),
		session(1, 182.5, 5, 3, 7.9),
		session(2, 180, 5, 3, 8.4),
		session(3, 177.5, 5, 3, 7.2),
		session(4, 175, 5, 3, 7.0),
	)
	cfg := DefaultConfig()
	cfg.Personalization = &personalization.Factors{
		TrainingAgeMonths: 18,
		RecoveryRate:      domain.RecoveryAverage,
	}

	first, err := e.Recommend(h, cfg)
	require.NoError(t, err)
	second, err := e.Recommend(h, cfg)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "identical inputs must yield byte-identical output")
}

func TestRecommendPersonalizationScalesIncrement(t *testing.T) {
	e := newTestEngine()

	// A strong responder on a fast recovery profile gets a larger jump than
	// the stock 2.5 linear increment.
	h := compoundHistory(
		session(0, 150, 5, 3, 7),
		session(1, 140, 5, 3, 7),
		session(2, 130, 5, 3, 7),
		session(3, 120, 5, 3, 7),
		session(4, 110, 5, 3, 7),
		session(5, 100, 5, 3, 7),
	)
	cfg := DefaultConfig()
	cfg.Personalization = &personalization.Factors{
		TrainingAgeMonths: 3,
		RecoveryRate:      domain.RecoveryFast,
	}

	rec, err := e.Recommend(h, cfg)
	require.NoError(t, err)
	require.NotNil(t, rec.Personalization)
	assert.False(t, rec.Personalization.Degraded)
	assert.Empty(t, rec.Warnings)

	// Response modifier clamps at 2.0, recovery fast is 1.2:
	// 150 + 2.5*2.0*1.2 = 156.
	if !rec.Deload.ShouldDeload {
		assert.InDelta(t, 156.0, rec.Plan.TargetWeight, 1e-9)
	}
}

func TestRecommendPersonalizationDegrades(t *testing.T) {
	e := newTestEngine()

	// Two sessions cannot support a response-rate derivation: the engine
	// returns the unscaled plan plus a warning instead of failing.
	h := compoundHistory(
		session(0, 185, 5, 3, 7),
		session(1, 182.5, 5, 3, 7),
	)
	cfg := DefaultConfig()
	cfg.Personalization = &personalization.Factors{
		TrainingAgeMonths: 12,
		RecoveryRate:      domain.RecoveryAverage,
	}

	rec, err := e.Recommend(h, cfg)
	require.NoError(t, err)
	require.NotNil(t, rec.Personalization)
	assert.True(t, rec.Personalization.Degraded)
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "personalization degraded")
	assert.InDelta(t, 187.5, rec.Plan.TargetWeight, 1e-9, "neutral modifiers leave the linear step unscaled")
}

func TestRecommendDeloadZeroesProgressionRate(t *testing.T) {
	e := newTestEngine()

	h := compoundHistory(
		session(0, 185, 5, 3, 9.5),
		session(1, 185, 5, 3, 9.5),
		session(2, 185, 5, 3, 9.5),
		session(3, 185, 5, 3, 9.5),
	)
	cfg := DefaultConfig()
	cfg.Personalization = &personalization.Factors{
		TrainingAgeMonths: 12,
		RecoveryRate:      domain.RecoveryAverage,
	}

	rec, err := e.Recommend(h, cfg)
	require.NoError(t, err)
	require.True(t, rec.Deload.ShouldDeload)
	require.NotNil(t, rec.Personalization)
	assert.Zero(t, rec.Personalization.ProgressionRate, "a deload session carries no progression")
}
