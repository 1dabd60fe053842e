package deload

// Urgency grades how soon the deload should happen
type Urgency string

const (
	UrgencyImmediate   Urgency = "immediate"
	UrgencyRecommended Urgency = "recommended"
	UrgencyOptional    Urgency = "optional"
)

// Strategy selects which training stress gets reduced
type Strategy string

const (
	StrategyIntensity      Strategy = "intensity"
	StrategyVolume         Strategy = "volume"
	StrategyCombined       Strategy = "combined"
	StrategyActiveRecovery Strategy = "active_recovery"
)

// Recommendation is the advisor's verdict plus concrete reduction magnitudes.
type Recommendation struct {
	ShouldDeload       bool     `json:"should_deload"`
	Urgency            Urgency  `json:"urgency"`
	Strategy           Strategy `json:"strategy"`
	DurationWeeks      int      `json:"duration_weeks"`
	IntensityReduction float64  `json:"intensity_reduction"` // 0-0.3
	VolumeReduction    float64  `json:"volume_reduction"`    // 0-0.7
	Reasoning          string   `json:"reasoning"`
}
