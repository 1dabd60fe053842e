package engine

import (
	"fmt"

	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/modules/periodization"
	"github.com/fitforge/coach/internal/modules/personalization"
	"github.com/fitforge/coach/internal/modules/plateau"
)

// Config is the caller-supplied engine configuration. Zero-value fields are
// filled with defaults before validation.
type Config struct {
	PeriodizationModel    periodization.Model     `json:"periodization_model" yaml:"periodization_model"`
	PlateauWindowWeeks    int                     `json:"plateau_window_weeks" yaml:"plateau_window_weeks"`
	SignificanceThreshold float64                 `json:"significance_threshold" yaml:"significance_threshold"`
	RPEThreshold          float64                 `json:"rpe_threshold" yaml:"rpe_threshold"`
	TargetRPE             float64                 `json:"target_rpe" yaml:"target_rpe"`
	Personalization       *personalization.Factors `json:"personalization,omitempty" yaml:"personalization,omitempty"`
	Baseline              *domain.SessionPlan     `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

// DefaultConfig returns the engine defaults: linear progression, four-week
// plateau window, 0.5% per-session significance.
func DefaultConfig() Config {
	return Config{
		PeriodizationModel:    periodization.ModelLinear,
		PlateauWindowWeeks:    plateau.DefaultWindowWeeks,
		SignificanceThreshold: plateau.DefaultSignificanceThreshold,
		RPEThreshold:          plateau.DefaultRPEThreshold,
		TargetRPE:             periodization.DefaultTargetRPE,
	}
}

func (c Config) withDefaults() Config {
	if c.PeriodizationModel == "" {
		c.PeriodizationModel = periodization.ModelLinear
	}
	if c.PlateauWindowWeeks == 0 {
		c.PlateauWindowWeeks = plateau.DefaultWindowWeeks
	}
	if c.SignificanceThreshold == 0 {
		c.SignificanceThreshold = plateau.DefaultSignificanceThreshold
	}
	if c.RPEThreshold == 0 {
		c.RPEThreshold = plateau.DefaultRPEThreshold
	}
	if c.TargetRPE == 0 {
		c.TargetRPE = periodization.DefaultTargetRPE
	}
	return c
}

func (c Config) validate() error {
	if !periodization.ValidModel(c.PeriodizationModel) {
		return &InvalidConfigError{
			Field:  "periodization_model",
			Reason: fmt.Sprintf("unknown model %q", c.PeriodizationModel),
		}
	}
	if c.PlateauWindowWeeks < 2 {
		return &InvalidConfigError{
			Field:  "plateau_window_weeks",
			Reason: fmt.Sprintf("window of %d sessions cannot carry a trend", c.PlateauWindowWeeks),
		}
	}
	if c.SignificanceThreshold < 0 {
		return &InvalidConfigError{
			Field:  "significance_threshold",
			Reason: fmt.Sprintf("must be non-negative, got %g", c.SignificanceThreshold),
		}
	}
	if c.RPEThreshold < 1 || c.RPEThreshold > 10 {
		return &InvalidConfigError{
			Field:  "rpe_threshold",
			Reason: fmt.Sprintf("must be within [1,10], got %g", c.RPEThreshold),
		}
	}
	if c.TargetRPE < 1 || c.TargetRPE > 10 {
		return &InvalidConfigError{
			Field:  "target_rpe",
			Reason: fmt.Sprintf("must be within [1,10], got %g", c.TargetRPE),
		}
	}
	return nil
}
