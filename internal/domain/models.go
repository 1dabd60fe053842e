package domain

import "time"

// ExerciseType classifies an exercise by its loading pattern
type ExerciseType string

const (
	ExerciseCompound  ExerciseType = "compound"
	ExerciseIsolation ExerciseType = "isolation"
)

// SetRecord represents a single logged set. Immutable once logged.
type SetRecord struct {
	SetNumber int       `json:"set_number"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	RPE       *float64  `json:"rpe,omitempty"` // 1-10, nil when not logged
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionRecord represents one workout session for a single exercise.
// Sets are ordered chronologically, set 1 first.
type SessionRecord struct {
	Date       time.Time   `json:"date"`
	Sets       []SetRecord `json:"sets"`
	TargetReps int         `json:"target_reps"`
	TargetSets int         `json:"target_sets"`
}

// ExerciseHistory is the engine's read-only input: sessions sorted
// descending by date, Sessions[0] is always the last session.
type ExerciseHistory struct {
	ExerciseID   string          `json:"exercise_id"`
	ExerciseType ExerciseType    `json:"exercise_type"`
	Sessions     []SessionRecord `json:"sessions"`
}

// SessionPlan is the concrete prescription the engine produces.
type SessionPlan struct {
	TargetWeight    float64 `json:"target_weight"`
	TargetReps      int     `json:"target_reps"`
	TargetSets      int     `json:"target_sets"`
	ExpectedRPE     float64 `json:"expected_rpe"`
	RestTimeSeconds int     `json:"rest_time_seconds"`
}

// RecoveryRate describes how quickly a lifter recovers between sessions
type RecoveryRate string

const (
	RecoveryFast    RecoveryRate = "fast"
	RecoveryAverage RecoveryRate = "average"
	RecoverySlow    RecoveryRate = "slow"
)

// FirstSetWeight returns the weight of the first set, 0 for empty sessions.
func (s SessionRecord) FirstSetWeight() float64 {
	if len(s.Sets) == 0 {
		return 0
	}
	return s.Sets[0].Weight
}

// TopSetWeight returns the heaviest weight lifted in the session.
func (s SessionRecord) TopSetWeight() float64 {
	top := 0.0
	for _, set := range s.Sets {
		if set.Weight > top {
			top = set.Weight
		}
	}
	return top
}

// TotalVolume returns total session volume: Σ weight×reps over completed sets.
func (s SessionRecord) TotalVolume() float64 {
	total := 0.0
	for _, set := range s.Sets {
		if set.Completed {
			total += set.Weight * float64(set.Reps)
		}
	}
	return total
}

// CompletedReps returns the number of reps actually completed.
func (s SessionRecord) CompletedReps() int {
	total := 0
	for _, set := range s.Sets {
		if set.Completed {
			total += set.Reps
		}
	}
	return total
}

// RPEValues returns the logged RPE values in set order, skipping unlogged sets.
func (s SessionRecord) RPEValues() []float64 {
	values := make([]float64, 0, len(s.Sets))
	for _, set := range s.Sets {
		if set.RPE != nil {
			values = append(values, *set.RPE)
		}
	}
	return values
}

// AvgRPE returns the mean logged RPE of the session and whether any set
// carried an RPE at all.
func (s SessionRecord) AvgRPE() (float64, bool) {
	values := s.RPEValues()
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
