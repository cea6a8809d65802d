package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"liftlog/internal/modules/session/domain"
	"liftlog/internal/modules/session/dto"
	sessionout "liftlog/internal/modules/session/port/out"
	"liftlog/internal/modules/session/service"
	apperrors "liftlog/internal/platform/errors"
)

type fakeClock struct {
	times []time.Time
	calls int
}

func (c *fakeClock) Now() time.Time {
	if c.calls < len(c.times) {
		t := c.times[c.calls]
		c.calls++
		return t
	}
	return c.times[len(c.times)-1]
}

type fakeID struct {
	next int
}

func (f *fakeID) New() string {
	f.next++
	return fmt.Sprintf("workout-%03d", f.next)
}

type memoryWorkoutStore struct {
	workouts []domain.Workout
}

func (s *memoryWorkoutStore) Save(_ context.Context, workout domain.Workout) (string, error) {
	s.workouts = append(s.workouts, workout)
	return "workouts/" + workout.ID + ".md", nil
}

func (s *memoryWorkoutStore) List(context.Context) ([]domain.Workout, error) {
	return s.workouts, nil
}

func (s *memoryWorkoutStore) ListBySplit(_ context.Context, splitID string) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, workout := range s.workouts {
		if workout.SplitID == splitID {
			out = append(out, workout)
		}
	}
	return out, nil
}

type memoryActiveStore struct {
	active *domain.ActiveWorkout
}

func (s *memoryActiveStore) Get(context.Context) (domain.ActiveWorkout, error) {
	if s.active == nil {
		return domain.ActiveWorkout{}, apperrors.ErrNoActiveWorkout
	}
	return *s.active, nil
}

func (s *memoryActiveStore) Put(_ context.Context, active domain.ActiveWorkout) error {
	s.active = &active
	return nil
}

func (s *memoryActiveStore) Clear(context.Context) error {
	s.active = nil
	return nil
}

type recordingProjector struct {
	resets  int
	upserts []string
}

func (p *recordingProjector) Reset(context.Context) error {
	p.resets++
	p.upserts = nil
	return nil
}

func (p *recordingProjector) UpsertWorkout(_ context.Context, workout domain.Workout) error {
	p.upserts = append(p.upserts, workout.ID)
	return nil
}

type fakeSplitDirectory struct {
	splits  map[string]string
	stamped map[string]string
}

func (d *fakeSplitDirectory) Resolve(_ context.Context, splitID string) (sessionout.SplitRef, error) {
	name, ok := d.splits[splitID]
	if !ok {
		return sessionout.SplitRef{}, apperrors.ErrNotFound
	}
	return sessionout.SplitRef{ID: splitID, Name: name}, nil
}

func (d *fakeSplitDirectory) StampWorkout(_ context.Context, splitID, workoutID string) error {
	if d.stamped == nil {
		d.stamped = map[string]string{}
	}
	d.stamped[splitID] = workoutID
	return nil
}

type fixture struct {
	interactor *Interactor
	store      *memoryWorkoutStore
	active     *memoryActiveStore
	projector  *recordingProjector
	splits     *fakeSplitDirectory
}

func newFixture(times ...time.Time) *fixture {
	if len(times) == 0 {
		times = []time.Time{time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)}
	}
	store := &memoryWorkoutStore{}
	active := &memoryActiveStore{}
	projector := &recordingProjector{}
	splits := &fakeSplitDirectory{splits: map[string]string{"split-a": "Push Day"}}
	svc := service.NewWorkoutService(&fakeClock{times: times}, &fakeID{}, store, projector, active, splits)
	return &fixture{
		interactor: NewInteractor(svc).(*Interactor),
		store:      store,
		active:     active,
		projector:  projector,
		splits:     splits,
	}
}

func TestStartWorkout(t *testing.T) {
	t.Parallel()

	f := newFixture()
	out, err := f.interactor.Start(context.Background(), dto.StartInput{SplitID: "split-a"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.WorkoutID != "workout-001" {
		t.Fatalf("workout id = %q", out.WorkoutID)
	}
	if out.SplitName != "Push Day" {
		t.Fatalf("split name = %q", out.SplitName)
	}

	_, err = f.interactor.Start(context.Background(), dto.StartInput{SplitID: "split-a"})
	if !errors.Is(err, apperrors.ErrActiveWorkoutExists) {
		t.Fatalf("second start err = %v, want ErrActiveWorkoutExists", err)
	}
}

func TestStartUnknownSplit(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.interactor.Start(context.Background(), dto.StartInput{SplitID: "missing"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLogSetConvertsPoundsToKilograms(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.interactor.Start(context.Background(), dto.StartInput{SplitID: "split-a"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := f.interactor.LogSet(context.Background(), dto.LogSetInput{Exercise: "Bench Press", Weight: 225, Unit: "lb", Reps: 5})
	if err != nil {
		t.Fatalf("log set: %v", err)
	}
	if len(out.Sets) != 1 {
		t.Fatalf("sets = %d, want 1", len(out.Sets))
	}
	if got := out.Sets[0].WeightKg; math.Abs(got-102.058) > 0.01 {
		t.Fatalf("weight kg = %v, want ~102.058", got)
	}
}

func TestLogSetRejectsBadInput(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.interactor.Start(context.Background(), dto.StartInput{SplitID: "split-a"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	cases := []struct {
		name  string
		input dto.LogSetInput
	}{
		{name: "no exercise", input: dto.LogSetInput{Weight: 60, Reps: 5}},
		{name: "negative weight", input: dto.LogSetInput{Exercise: "Squat", Weight: -1, Reps: 5}},
		{name: "nan weight", input: dto.LogSetInput{Exercise: "Squat", Weight: math.NaN(), Reps: 5}},
		{name: "zero reps", input: dto.LogSetInput{Exercise: "Squat", Weight: 60}},
		{name: "bad unit", input: dto.LogSetInput{Exercise: "Squat", Weight: 60, Unit: "stone", Reps: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.interactor.LogSet(context.Background(), tc.input); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLogSetWithoutActiveWorkout(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.interactor.LogSet(context.Background(), dto.LogSetInput{Exercise: "Squat", Weight: 100, Reps: 5})
	if !errors.Is(err, apperrors.ErrNoActiveWorkout) {
		t.Fatalf("err = %v, want ErrNoActiveWorkout", err)
	}
}

func TestEndWorkout(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	f := newFixture(start, start.Add(time.Minute), start.Add(2*time.Minute), start.Add(47*time.Minute))

	if _, err := f.interactor.Start(context.Background(), dto.StartInput{SplitID: "split-a"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.interactor.LogSet(context.Background(), dto.LogSetInput{Exercise: "Bench Press", Weight: 100, Reps: 5}); err != nil {
		t.Fatalf("log set 1: %v", err)
	}
	if _, err := f.interactor.LogSet(context.Background(), dto.LogSetInput{Exercise: "Bench Press", Weight: 80, Reps: 10}); err != nil {
		t.Fatalf("log set 2: %v", err)
	}

	out, err := f.interactor.End(context.Background(), dto.EndInput{})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if out.TotalVolumeKg != 1300 {
		t.Fatalf("total volume = %v, want 1300", out.TotalVolumeKg)
	}
	if out.DurationMin != 47 {
		t.Fatalf("duration = %d, want 47", out.DurationMin)
	}
	if out.SetCount != 2 {
		t.Fatalf("set count = %d", out.SetCount)
	}
	if f.splits.stamped["split-a"] != out.ID {
		t.Fatalf("split not stamped with workout id, got %v", f.splits.stamped)
	}
	if len(f.projector.upserts) != 1 {
		t.Fatalf("projector upserts = %d", len(f.projector.upserts))
	}
	if _, err := f.interactor.GetActive(context.Background()); !errors.Is(err, apperrors.ErrNoActiveWorkout) {
		t.Fatalf("active not cleared: %v", err)
	}
}

func TestEndWithoutActiveWorkout(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.interactor.End(context.Background(), dto.EndInput{})
	if !errors.Is(err, apperrors.ErrNoActiveWorkout) {
		t.Fatalf("err = %v, want ErrNoActiveWorkout", err)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.store.workouts = []domain.Workout{
		{ID: "w1", SplitID: "split-a", StartedAt: time.Now(), EndedAt: time.Now()},
		{ID: "w2", SplitID: "split-a", StartedAt: time.Now(), EndedAt: time.Now()},
	}
	if err := f.interactor.Reindex(context.Background(), dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if f.projector.resets != 1 || len(f.projector.upserts) != 2 {
		t.Fatalf("resets = %d, upserts = %d", f.projector.resets, len(f.projector.upserts))
	}
}
