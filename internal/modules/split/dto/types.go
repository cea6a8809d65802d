package dto

type CreateInput struct {
	Name      string
	Color     string
	Days      []string
	Exercises []string
}

type AddExerciseInput struct {
	SplitID    string
	Name       string
	TargetSets int
	TargetReps int
}

type SetDaysInput struct {
	SplitID string
	Days    []string
}

type StampWorkoutInput struct {
	SplitID   string
	WorkoutID string
}

type ReindexInput struct{}

type SplitOutput struct {
	ID        string
	Name      string
	Color     string
	Days      []string
	Exercises int
	NotePath  string
}

type ExerciseOutput struct {
	Name       string
	TargetSets int
	TargetReps int
}

type SplitDetailOutput struct {
	ID            string
	Name          string
	Color         string
	Status        string
	Days          []string
	Exercises     []ExerciseOutput
	NotePath      string
	LastWorkoutID string
	UpdatedAt     string
}
