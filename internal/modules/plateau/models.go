package plateau

// SignalType identifies which progress metric has stalled
type SignalType string

const (
	SignalWeightStagnation  SignalType = "weight_stagnation"
	SignalRPEElevation      SignalType = "rpe_elevation"
	SignalVolumeStagnation  SignalType = "volume_stagnation"
	SignalCompletionDecline SignalType = "completion_decline"
)

// Action is the coaching response a signal suggests on its own. Signals are
// evidence, not a verdict; the deload advisor weighs them together.
type Action string

const (
	ActionContinue       Action = "continue"
	ActionAdjustVolume   Action = "adjust_volume"
	ActionDeload         Action = "deload"
	ActionChangeExercise Action = "change_exercise"
)

// Signal is one piece of plateau evidence over the analysis window.
type Signal struct {
	Type              SignalType `json:"type"`
	Severity          float64    `json:"severity"`   // 0-1
	Confidence        float64    `json:"confidence"` // 0-1
	RecommendedAction Action     `json:"recommended_action"`
}
