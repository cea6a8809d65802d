package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const SchemaVersion = 1

// SetEntry is a single logged set. Weight is always stored in kilograms;
// display units are applied at the edges.
type SetEntry struct {
	Exercise string
	WeightKg float64
	Reps     int
	LoggedAt time.Time
}

// ActiveWorkout is the in-progress session. At most one exists at a time.
type ActiveWorkout struct {
	WorkoutID string
	SplitID   string
	SplitName string
	StartedAt time.Time
	Sets      []SetEntry
}

// Workout is a completed session as persisted to the vault.
type Workout struct {
	ID            string
	SplitID       string
	SplitName     string
	StartedAt     time.Time
	EndedAt       time.Time
	DurationMin   int
	Sets          []SetEntry
	TotalVolumeKg float64
}

func (e SetEntry) Validate() error {
	if strings.TrimSpace(e.Exercise) == "" {
		return fmt.Errorf("exercise name is required")
	}
	if math.IsNaN(e.WeightKg) || math.IsInf(e.WeightKg, 0) || e.WeightKg < 0 {
		return fmt.Errorf("weight must be a non-negative finite number")
	}
	if e.Reps < 1 {
		return fmt.Errorf("reps must be at least 1")
	}
	return nil
}

// Volume is the training volume of one set in kilograms.
func (e SetEntry) Volume() float64 {
	return e.WeightKg * float64(e.Reps)
}

// TotalVolume sums set volumes in kilograms.
func TotalVolume(sets []SetEntry) float64 {
	var total float64
	for _, set := range sets {
		total += set.Volume()
	}
	return total
}

// Finish closes the active workout at endedAt, computing duration and volume.
func (w ActiveWorkout) Finish(endedAt time.Time) Workout {
	duration := int(endedAt.Sub(w.StartedAt).Minutes())
	if duration < 0 {
		duration = 0
	}
	return Workout{
		ID:            w.WorkoutID,
		SplitID:       w.SplitID,
		SplitName:     w.SplitName,
		StartedAt:     w.StartedAt,
		EndedAt:       endedAt,
		DurationMin:   duration,
		Sets:          w.Sets,
		TotalVolumeKg: TotalVolume(w.Sets),
	}
}

func (w Workout) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("workout id is required")
	}
	if strings.TrimSpace(w.SplitID) == "" {
		return fmt.Errorf("split id is required")
	}
	if w.EndedAt.Before(w.StartedAt) {
		return fmt.Errorf("workout ends before it starts")
	}
	for _, set := range w.Sets {
		if err := set.Validate(); err != nil {
			return err
		}
	}
	return nil
}
