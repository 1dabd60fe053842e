package engine

import (
	"github.com/fitforge/coach/internal/domain"
	"github.com/fitforge/coach/internal/modules/deload"
	"github.com/fitforge/coach/internal/modules/personalization"
	"github.com/fitforge/coach/internal/modules/plateau"
)

// ConfidenceBreakdown qualifies how much the recommendation can be trusted.
type ConfidenceBreakdown struct {
	// DataQuality reflects sample size and consistency of the history.
	DataQuality float64 `json:"data_quality"`
	// HistoricalAccuracy is how well a linear trend explains past loading.
	HistoricalAccuracy float64 `json:"historical_accuracy"`
	// ResponseConsistency measures session-to-session progress stability;
	// halved when personalization had to fall back to neutral modifiers.
	ResponseConsistency float64 `json:"response_consistency"`
}

// Recommendation is the full envelope returned to the caller: the plan plus
// all the evidence that produced it.
type Recommendation struct {
	Plan            domain.SessionPlan      `json:"plan"`
	Signals         []plateau.Signal        `json:"signals"`
	Deload          deload.Recommendation   `json:"deload"`
	Personalization *personalization.Result `json:"personalization,omitempty"`
	Confidence      ConfidenceBreakdown     `json:"confidence"`
	Warnings        []string                `json:"warnings,omitempty"`
	Reasoning       string                  `json:"reasoning"`
}
