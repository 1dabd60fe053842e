package personalization

import "github.com/fitforge/coach/internal/domain"

// Factors are the caller-supplied traits of the lifter. The historical
// response rate is derived from history, never supplied.
type Factors struct {
	TrainingAgeMonths int                 `json:"training_age_months" yaml:"training_age_months"`
	RecoveryRate      domain.RecoveryRate `json:"recovery_rate" yaml:"recovery_rate"`
	VolumeTolerance   int                 `json:"volume_tolerance,omitempty" yaml:"volume_tolerance,omitempty"` // sets/week, 0 = estimate from history
}

// VolumeRecommendation proposes a weekly set count moving toward tolerance.
type VolumeRecommendation struct {
	CurrentWeeklySets     float64 `json:"current_weekly_sets"`
	RecommendedWeeklySets int     `json:"recommended_weekly_sets"`
	MinWeeklySets         int     `json:"min_weekly_sets"`
	MaxWeeklySets         int     `json:"max_weekly_sets"`
	ToleranceWeeklySets   int     `json:"tolerance_weekly_sets"`
}

// Result carries the personalized scaling factors and volume guidance.
type Result struct {
	ProgressionRate      float64              `json:"progression_rate"` // fractional weight gain per week
	ResponseModifier     float64              `json:"response_modifier"`
	RecoveryModifier     float64              `json:"recovery_modifier"`
	Volume               VolumeRecommendation `json:"volume"`
	DeloadFrequencyWeeks int                  `json:"deload_frequency_weeks"`
	Degraded             bool                 `json:"degraded"` // response rate underivable, modifier fell back to 1.0
}
