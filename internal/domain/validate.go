package domain

import "fmt"

// Validate checks structural invariants of a history snapshot: sessions
// sorted descending by date, non-negative weights, positive reps, and RPE
// within [1,10] when logged. The engine rejects violations before any
// analysis runs.
func (h ExerciseHistory) Validate() error {
	switch h.ExerciseType {
	case ExerciseCompound, ExerciseIsolation:
	default:
		return fmt.Errorf("unknown exercise type %q", h.ExerciseType)
	}

	for i, session := range h.Sessions {
		if i > 0 && session.Date.After(h.Sessions[i-1].Date) {
			return fmt.Errorf("sessions out of order: session %d (%s) is newer than session %d (%s)",
				i, session.Date.Format("2006-01-02"), i-1, h.Sessions[i-1].Date.Format("2006-01-02"))
		}
		if session.TargetReps < 0 || session.TargetSets < 0 {
			return fmt.Errorf("session %d has negative targets", i)
		}
		for j, set := range session.Sets {
			if set.Weight < 0 {
				return fmt.Errorf("session %d set %d has negative weight %.2f", i, j, set.Weight)
			}
			if set.Reps <= 0 {
				return fmt.Errorf("session %d set %d has non-positive reps %d", i, j, set.Reps)
			}
			if set.RPE != nil && (*set.RPE < 1 || *set.RPE > 10) {
				return fmt.Errorf("session %d set %d has RPE %.1f outside [1,10]", i, j, *set.RPE)
			}
		}
	}

	return nil
}
