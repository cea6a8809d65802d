package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"liftlog/internal/modules/split/domain"
	"liftlog/internal/modules/split/dto"
	"liftlog/internal/modules/split/service"
	apperrors "liftlog/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeID struct {
	next int
}

func (f *fakeID) New() string {
	f.next++
	return fmt.Sprintf("split-%03d", f.next)
}

type memorySplitStore struct {
	docs map[string]domain.SplitDocument
}

func newMemorySplitStore() *memorySplitStore {
	return &memorySplitStore{docs: map[string]domain.SplitDocument{}}
}

func (s *memorySplitStore) Save(_ context.Context, doc domain.SplitDocument) (string, error) {
	s.docs[doc.Split.ID] = doc
	return "splits/" + doc.Split.Slug + ".md", nil
}

func (s *memorySplitStore) FindByID(_ context.Context, id string) (domain.SplitDocument, error) {
	doc, ok := s.docs[id]
	if !ok {
		return domain.SplitDocument{}, apperrors.ErrNotFound
	}
	return doc, nil
}

func (s *memorySplitStore) List(_ context.Context) ([]domain.SplitDocument, error) {
	out := make([]domain.SplitDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
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

func (p *recordingProjector) UpsertSplit(_ context.Context, split domain.Split) error {
	p.upserts = append(p.upserts, split.ID)
	return nil
}

func newTestInteractor() (*Interactor, *memorySplitStore, *recordingProjector) {
	store := newMemorySplitStore()
	projector := &recordingProjector{}
	clk := &fakeClock{now: time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)}
	svc := service.NewSplitService(clk, &fakeID{}, store, projector)
	return NewInteractor(svc).(*Interactor), store, projector
}

func TestCreateSplit(t *testing.T) {
	t.Parallel()

	interactor, store, projector := newTestInteractor()

	out, err := interactor.Create(context.Background(), dto.CreateInput{
		Name:      "Push Day",
		Color:     "#F38BA8",
		Days:      []string{"mon", "thu"},
		Exercises: []string{"Bench Press", "Overhead Press", ""},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID != "split-001" {
		t.Fatalf("id = %q, want split-001", out.ID)
	}
	if out.NotePath != "splits/push-day.md" {
		t.Fatalf("note path = %q", out.NotePath)
	}
	if out.Exercises != 2 {
		t.Fatalf("exercise count = %d, want 2 (blank entries skipped)", out.Exercises)
	}
	if len(out.Days) != 2 || out.Days[0] != "Monday" || out.Days[1] != "Thursday" {
		t.Fatalf("days = %v", out.Days)
	}

	doc, err := store.FindByID(context.Background(), out.ID)
	if err != nil {
		t.Fatalf("find created split: %v", err)
	}
	if doc.Split.Color != "#f38ba8" {
		t.Fatalf("color not normalized: %q", doc.Split.Color)
	}
	if doc.Split.Status != "active" {
		t.Fatalf("status = %q", doc.Split.Status)
	}
	if len(projector.upserts) != 1 {
		t.Fatalf("projector upserts = %d, want 1", len(projector.upserts))
	}
}

func TestCreateSplitRejectsBadInput(t *testing.T) {
	t.Parallel()

	interactor, _, _ := newTestInteractor()

	cases := []struct {
		name  string
		input dto.CreateInput
	}{
		{name: "empty name", input: dto.CreateInput{Name: "   "}},
		{name: "bad color", input: dto.CreateInput{Name: "Legs", Color: "red"}},
		{name: "unknown day", input: dto.CreateInput{Name: "Legs", Days: []string{"funday"}}},
		{name: "duplicate day", input: dto.CreateInput{Name: "Legs", Days: []string{"mon", "monday"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := interactor.Create(context.Background(), tc.input); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestAddExercise(t *testing.T) {
	t.Parallel()

	interactor, _, _ := newTestInteractor()

	created, err := interactor.Create(context.Background(), dto.CreateInput{Name: "Pull Day"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := interactor.AddExercise(context.Background(), dto.AddExerciseInput{
		SplitID:    created.ID,
		Name:       "Barbell Row",
		TargetSets: 4,
		TargetReps: 8,
	})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].Name != "Barbell Row" {
		t.Fatalf("exercises = %+v", detail.Exercises)
	}

	_, err = interactor.AddExercise(context.Background(), dto.AddExerciseInput{SplitID: created.ID, Name: "barbell row"})
	if err == nil {
		t.Fatal("expected duplicate exercise to be rejected case-insensitively")
	}

	_, err = interactor.AddExercise(context.Background(), dto.AddExerciseInput{SplitID: "missing", Name: "Deadlift"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetDaysSortsAndReplaces(t *testing.T) {
	t.Parallel()

	interactor, _, _ := newTestInteractor()

	created, err := interactor.Create(context.Background(), dto.CreateInput{Name: "Full Body", Days: []string{"sat"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := interactor.SetDays(context.Background(), dto.SetDaysInput{SplitID: created.ID, Days: []string{"fri", "mon", "wed"}})
	if err != nil {
		t.Fatalf("set days: %v", err)
	}
	want := []string{"Monday", "Wednesday", "Friday"}
	if len(detail.Days) != len(want) {
		t.Fatalf("days = %v", detail.Days)
	}
	for i, day := range want {
		if detail.Days[i] != day {
			t.Fatalf("days[%d] = %q, want %q", i, detail.Days[i], day)
		}
	}
}

func TestStampWorkout(t *testing.T) {
	t.Parallel()

	interactor, store, _ := newTestInteractor()

	created, err := interactor.Create(context.Background(), dto.CreateInput{Name: "Upper"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := interactor.StampWorkout(context.Background(), dto.StampWorkoutInput{SplitID: created.ID, WorkoutID: "workout-42"}); err != nil {
		t.Fatalf("stamp workout: %v", err)
	}
	doc, err := store.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find split: %v", err)
	}
	if doc.Split.LastWorkoutID != "workout-42" {
		t.Fatalf("last workout = %q", doc.Split.LastWorkoutID)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()

	interactor, _, projector := newTestInteractor()

	for _, name := range []string{"Push", "Pull", "Legs"} {
		if _, err := interactor.Create(context.Background(), dto.CreateInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := interactor.Reindex(context.Background(), dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if projector.resets != 1 {
		t.Fatalf("resets = %d, want 1", projector.resets)
	}
	if len(projector.upserts) != 3 {
		t.Fatalf("upserts after reindex = %d, want 3", len(projector.upserts))
	}
}
