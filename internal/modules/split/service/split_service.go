package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"liftlog/internal/modules/split/domain"
	splitout "liftlog/internal/modules/split/port/out"
	"liftlog/internal/platform/clock"
	"liftlog/internal/platform/id"
	"liftlog/internal/platform/slug"
)

type SplitService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     splitout.SplitStore
	projector splitout.SplitIndexProjector
}

func NewSplitService(clock clock.Clock, idGen id.Generator, store splitout.SplitStore, projector splitout.SplitIndexProjector) *SplitService {
	return &SplitService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *SplitService) Create(ctx context.Context, name, color string, days []string, exercises []string) (domain.Split, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Split{}, "", fmt.Errorf("split name is required")
	}
	weekdays, err := domain.ParseWeekdays(days)
	if err != nil {
		return domain.Split{}, "", err
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })

	now := s.clock.Now()
	split := domain.Split{
		ID:        s.idGen.New(),
		Name:      name,
		Color:     strings.ToLower(strings.TrimSpace(color)),
		Slug:      slug.Make(name),
		Weekdays:  weekdays,
		Status:    "active",
		AddedAt:   now,
		UpdatedAt: now,
	}
	for _, exercise := range exercises {
		exercise = strings.TrimSpace(exercise)
		if exercise == "" {
			continue
		}
		split.Exercises = append(split.Exercises, domain.Exercise{Name: exercise})
	}
	if err := split.Validate(); err != nil {
		return domain.Split{}, "", err
	}
	path, err := s.store.Save(ctx, domain.SplitDocument{Split: split})
	if err != nil {
		return domain.Split{}, "", err
	}
	if err := s.projector.UpsertSplit(ctx, split); err != nil {
		return domain.Split{}, "", err
	}
	return split, path, nil
}

func (s *SplitService) AddExercise(ctx context.Context, splitID string, exercise domain.Exercise) (domain.Split, error) {
	if err := exercise.Validate(); err != nil {
		return domain.Split{}, err
	}
	doc, err := s.store.FindByID(ctx, splitID)
	if err != nil {
		return domain.Split{}, err
	}
	if doc.Split.HasExercise(exercise.Name) {
		return domain.Split{}, fmt.Errorf("exercise %q already in split", exercise.Name)
	}
	doc.Split.Exercises = append(doc.Split.Exercises, exercise)
	doc.Split.UpdatedAt = s.clock.Now()
	return s.persist(ctx, doc)
}

func (s *SplitService) SetDays(ctx context.Context, splitID string, days []string) (domain.Split, error) {
	weekdays, err := domain.ParseWeekdays(days)
	if err != nil {
		return domain.Split{}, err
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })
	doc, err := s.store.FindByID(ctx, splitID)
	if err != nil {
		return domain.Split{}, err
	}
	doc.Split.Weekdays = weekdays
	doc.Split.UpdatedAt = s.clock.Now()
	return s.persist(ctx, doc)
}

// StampWorkout records the most recent completed workout on the split note.
func (s *SplitService) StampWorkout(ctx context.Context, splitID, workoutID string) error {
	doc, err := s.store.FindByID(ctx, splitID)
	if err != nil {
		return err
	}
	doc.Split.LastWorkoutID = workoutID
	doc.Split.UpdatedAt = s.clock.Now()
	_, err = s.persist(ctx, doc)
	return err
}

func (s *SplitService) List(ctx context.Context) ([]domain.Split, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Split, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Split)
	}
	return out, nil
}

func (s *SplitService) Get(ctx context.Context, splitID string) (domain.Split, error) {
	doc, err := s.store.FindByID(ctx, splitID)
	if err != nil {
		return domain.Split{}, err
	}
	return doc.Split, nil
}

func (s *SplitService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertSplit(ctx, doc.Split); err != nil {
			return err
		}
	}
	return nil
}

func (s *SplitService) persist(ctx context.Context, doc domain.SplitDocument) (domain.Split, error) {
	if err := doc.Split.Validate(); err != nil {
		return domain.Split{}, err
	}
	if _, err := s.store.Save(ctx, doc); err != nil {
		return domain.Split{}, err
	}
	if err := s.projector.UpsertSplit(ctx, doc.Split); err != nil {
		return domain.Split{}, err
	}
	return doc.Split, nil
}
