package identkit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingKeyPrefix = "idk"

// RedisPendingEmailStore persists the pending-email marker in Redis, keyed
// by a caller-supplied browser-session identifier so markers from different
// visitors never collide. Markers expire after the configured TTL.
type RedisPendingEmailStore struct {
	redis      *redis.Client
	prefix     string
	sessionKey string
	ttl        time.Duration
}

// NewRedisPendingEmailStore binds a store to one browser session. prefix
// may be empty, in which case a package default is used.
func NewRedisPendingEmailStore(client *redis.Client, prefix, sessionKey string, ttl time.Duration) *RedisPendingEmailStore {
	if prefix == "" {
		prefix = pendingKeyPrefix
	}
	return &RedisPendingEmailStore{
		redis:      client,
		prefix:     prefix,
		sessionKey: sessionKey,
		ttl:        ttl,
	}
}

func (s *RedisPendingEmailStore) key() string {
	return s.prefix + ":pending:" + s.sessionKey
}

// Get returns the marker, or ErrNoPendingEmail when none is set.
func (s *RedisPendingEmailStore) Get(ctx context.Context) (string, error) {
	email, err := s.redis.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoPendingEmail
		}
		return "", fmt.Errorf("%w: %v", ErrPendingStoreUnavailable, err)
	}
	return email, nil
}

// Set writes the marker with the store's TTL, replacing any previous value.
func (s *RedisPendingEmailStore) Set(ctx context.Context, email string) error {
	if err := s.redis.Set(ctx, s.key(), email, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPendingStoreUnavailable, err)
	}
	return nil
}

// Clear removes the marker. Clearing an absent marker is not an error.
func (s *RedisPendingEmailStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPendingStoreUnavailable, err)
	}
	return nil
}

// MemoryPendingEmailStore keeps the marker in process memory. Suitable for
// tests and single-process applications; the marker does not survive a
// restart.
type MemoryPendingEmailStore struct {
	mu    sync.Mutex
	email string
	set   bool
}

// NewMemoryPendingEmailStore returns an empty in-memory store.
func NewMemoryPendingEmailStore() *MemoryPendingEmailStore {
	return &MemoryPendingEmailStore{}
}

// Get returns the marker, or ErrNoPendingEmail when none is set.
func (s *MemoryPendingEmailStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ErrNoPendingEmail
	}
	return s.email, nil
}

// Set replaces the marker.
func (s *MemoryPendingEmailStore) Set(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
	s.set = true
	return nil
}

// Clear removes the marker. Idempotent.
func (s *MemoryPendingEmailStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = ""
	s.set = false
	return nil
}
