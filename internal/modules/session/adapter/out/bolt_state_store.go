package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"liftlog/internal/modules/session/domain"
	sessionout "liftlog/internal/modules/session/port/out"
	apperrors "liftlog/internal/platform/errors"
)

var (
	activeBucket = []byte("active_workout")
	activeKey    = []byte("current")
)

type activeRecord struct {
	WorkoutID string      `json:"workout_id"`
	SplitID   string      `json:"split_id"`
	SplitName string      `json:"split_name"`
	StartedAt string      `json:"started_at"`
	Sets      []setRecord `json:"sets"`
}

type setRecord struct {
	Exercise string  `json:"exercise"`
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
	LoggedAt string  `json:"logged_at"`
}

// BoltStateStore keeps the single active workout in the shared bbolt state
// file so it survives process restarts.
type BoltStateStore struct {
	db *bolt.DB
}

func NewBoltStateStore(db *bolt.DB) sessionout.ActiveWorkoutStore {
	return &BoltStateStore{db: db}
}

func (s *BoltStateStore) Get(_ context.Context) (domain.ActiveWorkout, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(activeBucket)
		if bucket == nil {
			return nil
		}
		if value := bucket.Get(activeKey); value != nil {
			raw = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return domain.ActiveWorkout{}, fmt.Errorf("read active workout: %w", err)
	}
	if raw == nil {
		return domain.ActiveWorkout{}, apperrors.ErrNoActiveWorkout
	}

	var record activeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.ActiveWorkout{}, fmt.Errorf("decode active workout: %w", err)
	}
	return fromRecord(record)
}

func (s *BoltStateStore) Put(_ context.Context, active domain.ActiveWorkout) error {
	raw, err := json.Marshal(toRecord(active))
	if err != nil {
		return fmt.Errorf("encode active workout: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(activeBucket)
		if err != nil {
			return err
		}
		return bucket.Put(activeKey, raw)
	})
}

func (s *BoltStateStore) Clear(_ context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(activeBucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(activeKey)
	})
}

func toRecord(active domain.ActiveWorkout) activeRecord {
	sets := make([]setRecord, 0, len(active.Sets))
	for _, set := range active.Sets {
		sets = append(sets, setRecord{
			Exercise: set.Exercise,
			WeightKg: set.WeightKg,
			Reps:     set.Reps,
			LoggedAt: set.LoggedAt.Format(time.RFC3339),
		})
	}
	return activeRecord{
		WorkoutID: active.WorkoutID,
		SplitID:   active.SplitID,
		SplitName: active.SplitName,
		StartedAt: active.StartedAt.Format(time.RFC3339),
		Sets:      sets,
	}
}

func fromRecord(record activeRecord) (domain.ActiveWorkout, error) {
	startedAt, err := time.Parse(time.RFC3339, record.StartedAt)
	if err != nil {
		return domain.ActiveWorkout{}, fmt.Errorf("bad started_at: %w", err)
	}
	active := domain.ActiveWorkout{
		WorkoutID: record.WorkoutID,
		SplitID:   record.SplitID,
		SplitName: record.SplitName,
		StartedAt: startedAt,
	}
	for _, set := range record.Sets {
		loggedAt, _ := time.Parse(time.RFC3339, set.LoggedAt)
		active.Sets = append(active.Sets, domain.SetEntry{
			Exercise: set.Exercise,
			WeightKg: set.WeightKg,
			Reps:     set.Reps,
			LoggedAt: loggedAt,
		})
	}
	return active, nil
}
