package periodization

import "github.com/fitforge/coach/internal/domain"

// Model selects the progression scheme for the next session
type Model string

const (
	ModelLinear        Model = "linear"
	ModelDUP           Model = "dup"
	ModelAutoregulated Model = "autoregulated"
)

// ValidModel reports whether m names a known periodization model.
func ValidModel(m Model) bool {
	switch m {
	case ModelLinear, ModelDUP, ModelAutoregulated:
		return true
	}
	return false
}

// Linear weight increments per session, in the history's weight unit.
const (
	LinearIncrementCompound  = 2.5
	LinearIncrementIsolation = 1.25
)

// DefaultTargetRPE is the autoregulation set point.
const DefaultTargetRPE = 7.5

// DefaultBaseline is the neutral plan returned for an empty history:
// an unloaded-barbell starting scheme rather than a failure.
var DefaultBaseline = domain.SessionPlan{
	TargetWeight:    45,
	TargetReps:      8,
	TargetSets:      3,
	ExpectedRPE:     6.5,
	RestTimeSeconds: 120,
}

// zone is a daily-undulating intensity classification
type zone string

const (
	zoneHeavy    zone = "heavy"
	zoneModerate zone = "moderate"
	zoneLight    zone = "light"
)

// zoneTarget maps a zone to concrete session targets. Weight is a factor
// applied to the most recent top weight.
type zoneTarget struct {
	weightFactor float64
	reps         int
	sets         int
	expectedRPE  float64
	restSeconds  int
}

var zoneTargets = map[zone]zoneTarget{
	zoneHeavy:    {weightFactor: 1.05, reps: 3, sets: 4, expectedRPE: 8.5, restSeconds: 240},
	zoneModerate: {weightFactor: 0.85, reps: 8, sets: 3, expectedRPE: 7.5, restSeconds: 180},
	zoneLight:    {weightFactor: 0.65, reps: 15, sets: 3, expectedRPE: 6.5, restSeconds: 120},
}

// Zone classification cutoffs relative to the recent top weight.
const (
	heavyCutoff    = 0.85
	moderateCutoff = 0.70
)
