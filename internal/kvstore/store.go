// Package kvstore provides the local key-value persistence used for daily selections
// and cached question pools. Backends: in-process memory, badger, sqlite, redis and postgres.
package kvstore

import (
	"context"
	"encoding/json"
	"time"

	contextutils "speakroots/internal/utils"
)

// Store is a string-keyed byte store with best-effort durability.
// Get returns an error matching contextutils.ErrNotFound when the key is absent or expired.
// Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix and reports how many were removed
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Close() error
}

// Options are shared by all backends
type Options struct {
	// TTL bounds entry lifetime; zero keeps entries until deleted
	TTL time.Duration
}

// expiry returns the absolute expiry for an entry written now, or the zero time
func (o Options) expiry(now time.Time) time.Time {
	if o.TTL <= 0 {
		return time.Time{}
	}
	return now.Add(o.TTL)
}

// GetJSON loads key and decodes it into v
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCacheCorrupted, contextutils.SeverityWarn,
			contextutils.ErrCacheCorrupted.Message, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to encode %s", key)
	}
	return s.Set(ctx, key, data)
}

func notFound(key string) error {
	return contextutils.NewAppError(contextutils.ErrorCodeRecordNotFound, contextutils.SeverityDebug,
		contextutils.ErrNotFound.Message, key)
}

func unavailable(op, key string, cause error) error {
	return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeStoreUnavailable, contextutils.SeverityWarn,
		"key-value store "+op+" failed", key, cause)
}

// IsNotFound reports whether err means the key was absent
func IsNotFound(err error) bool {
	return contextutils.IsError(err, contextutils.ErrNotFound)
}
