package out

import (
	"context"

	sessionout "liftlog/internal/modules/session/port/out"
	splitdto "liftlog/internal/modules/split/dto"
	splitin "liftlog/internal/modules/split/port/in"
)

// SplitDirectoryBridge adapts the split module's inbound port to the session
// module's outbound needs, keeping the modules decoupled at the type level.
type SplitDirectoryBridge struct {
	splits splitin.Usecase
}

func NewSplitDirectoryBridge(splits splitin.Usecase) sessionout.SplitDirectory {
	return &SplitDirectoryBridge{splits: splits}
}

func (b *SplitDirectoryBridge) Resolve(ctx context.Context, splitID string) (sessionout.SplitRef, error) {
	detail, err := b.splits.Get(ctx, splitID)
	if err != nil {
		return sessionout.SplitRef{}, err
	}
	return sessionout.SplitRef{ID: detail.ID, Name: detail.Name}, nil
}

func (b *SplitDirectoryBridge) StampWorkout(ctx context.Context, splitID, workoutID string) error {
	return b.splits.StampWorkout(ctx, splitdto.StampWorkoutInput{SplitID: splitID, WorkoutID: workoutID})
}
