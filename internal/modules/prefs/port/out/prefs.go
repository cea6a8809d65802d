package out

import "context"

// PreferenceStore is a small durable key-value surface for user settings.
// Get returns ok=false when the key has never been written.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
}
