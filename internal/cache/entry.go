package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached value with TTL metadata.
type Entry struct {
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// NewEntry creates an entry for data that expires ttlSeconds after now.
func NewEntry(key string, data json.RawMessage, ttlSeconds int, now time.Time) *Entry {
	return &Entry{
		Key:        key,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry has expired at now.
func (e *Entry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Age returns how long ago the entry was created.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 if expired.
func (e *Entry) TimeUntilExpiration(now time.Time) time.Duration {
	remaining := e.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
