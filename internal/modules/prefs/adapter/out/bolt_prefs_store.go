package out

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	prefsout "liftlog/internal/modules/prefs/port/out"
)

var prefsBucket = []byte("preferences")

// BoltPrefsStore keeps user preferences in the shared bbolt state file.
type BoltPrefsStore struct {
	db *bolt.DB
}

func NewBoltPrefsStore(db *bolt.DB) prefsout.PreferenceStore {
	return &BoltPrefsStore{db: db}
}

func (s *BoltPrefsStore) Get(_ context.Context, key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(prefsBucket)
		if bucket == nil {
			return nil
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			value = string(raw)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *BoltPrefsStore) Put(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(prefsBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}
