package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rpe(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	newer := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	older := newer.AddDate(0, 0, -7)

	valid := ExerciseHistory{
		ExerciseID:   "barbell-row",
		ExerciseType: ExerciseCompound,
		Sessions: []SessionRecord{
			{Date: newer, TargetReps: 5, TargetSets: 3, Sets: []SetRecord{
				{SetNumber: 1, Weight: 135, Reps: 5, RPE: rpe(7), Completed: true, Timestamp: newer},
			}},
			{Date: older, TargetReps: 5, TargetSets: 3, Sets: []SetRecord{
				{SetNumber: 1, Weight: 130, Reps: 5, Completed: true, Timestamp: older},
			}},
		},
	}
	assert.NoError(t, valid.Validate())

	unsorted := valid
	unsorted.Sessions = []SessionRecord{valid.Sessions[1], valid.Sessions[0]}
	assert.Error(t, unsorted.Validate())

	badType := valid
	badType.ExerciseType = "cardio"
	assert.Error(t, badType.Validate())

	negWeight := valid
	negWeight.Sessions = []SessionRecord{{Date: newer, TargetReps: 5, TargetSets: 1, Sets: []SetRecord{
		{SetNumber: 1, Weight: -10, Reps: 5, Completed: true, Timestamp: newer},
	}}}
	assert.Error(t, negWeight.Validate())

	badRPE := valid
	badRPE.Sessions = []SessionRecord{{Date: newer, TargetReps: 5, TargetSets: 1, Sets: []SetRecord{
		{SetNumber: 1, Weight: 135, Reps: 5, RPE: rpe(11), Completed: true, Timestamp: newer},
	}}}
	assert.Error(t, badRPE.Validate())
}

func TestSessionAccessors(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := SessionRecord{
		Date:       date,
		TargetReps: 5,
		TargetSets: 3,
		Sets: []SetRecord{
			{SetNumber: 1, Weight: 185, Reps: 5, RPE: rpe(7), Completed: true, Timestamp: date},
			{SetNumber: 2, Weight: 190, Reps: 3, RPE: rpe(9), Completed: true, Timestamp: date},
			{SetNumber: 3, Weight: 185, Reps: 5, Completed: false, Timestamp: date},
		},
	}

	assert.InDelta(t, 185.0, s.FirstSetWeight(), 1e-9)
	assert.InDelta(t, 190.0, s.TopSetWeight(), 1e-9)
	assert.InDelta(t, 185*5+190*3, s.TotalVolume(), 1e-9, "incomplete sets do not count toward volume")
	assert.Equal(t, 8, s.CompletedReps())

	avg, ok := s.AvgRPE()
	assert.True(t, ok)
	assert.InDelta(t, 8.0, avg, 1e-9)

	empty := SessionRecord{Date: date}
	assert.Zero(t, empty.FirstSetWeight())
	_, ok = empty.AvgRPE()
	assert.False(t, ok)
}
