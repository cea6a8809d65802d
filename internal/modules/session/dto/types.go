package dto

type StartInput struct {
	SplitID string
}

type LogSetInput struct {
	Exercise string
	Weight   float64
	Unit     string
	Reps     int
}

type EndInput struct{}

type ReindexInput struct{}

type SetOutput struct {
	Exercise string
	WeightKg float64
	Reps     int
	LoggedAt string
}

type ActiveOutput struct {
	WorkoutID string
	SplitID   string
	SplitName string
	StartedAt string
	Sets      []SetOutput
}

type WorkoutOutput struct {
	ID            string
	SplitID       string
	SplitName     string
	StartedAt     string
	EndedAt       string
	DurationMin   int
	SetCount      int
	TotalVolumeKg float64
	NotePath      string
}
