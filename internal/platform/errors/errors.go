package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveWorkout     = errors.New("no active workout")
	ErrActiveWorkoutExists = errors.New("active workout already exists")
)
