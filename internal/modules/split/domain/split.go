package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	ManagedScheduleStart = "<!-- liftlog:schedule:start -->"
	ManagedScheduleEnd   = "<!-- liftlog:schedule:end -->"
	SchemaVersion        = 1
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Exercise is one movement inside a split, with optional set/rep targets.
type Exercise struct {
	Name       string
	TargetSets int
	TargetReps int
}

// Split is a named, colored grouping of exercises assigned to weekdays.
type Split struct {
	ID            string
	Name          string
	Color         string
	Slug          string
	Weekdays      []time.Weekday
	Exercises     []Exercise
	Status        string
	AddedAt       time.Time
	UpdatedAt     time.Time
	LastWorkoutID string
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("exercise name is required")
	}
	if e.TargetSets < 0 || e.TargetReps < 0 {
		return fmt.Errorf("exercise targets must be non-negative")
	}
	return nil
}

func (s Split) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(s.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if s.Color != "" && !colorPattern.MatchString(s.Color) {
		return fmt.Errorf("color must be #rrggbb, got %q", s.Color)
	}
	seen := map[time.Weekday]struct{}{}
	for _, day := range s.Weekdays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("invalid weekday %d", day)
		}
		if _, ok := seen[day]; ok {
			return fmt.Errorf("duplicate weekday %s", day)
		}
		seen[day] = struct{}{}
	}
	for _, exercise := range s.Exercises {
		if err := exercise.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// HasExercise reports whether the split already contains the named exercise,
// case-insensitively.
func (s Split) HasExercise(name string) bool {
	for _, exercise := range s.Exercises {
		if strings.EqualFold(exercise.Name, name) {
			return true
		}
	}
	return false
}

// SplitDocument pairs a split with the free-form note body it is stored with.
type SplitDocument struct {
	Split Split
	Body  string
}
