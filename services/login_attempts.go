package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore tracks failed login attempts per account key. The backing
// is pluggable: in-memory for a single instance, redis when instances
// share state.
type AttemptStore interface {
	// Fail records a failed attempt and returns the count inside the
	// current window.
	Fail(ctx context.Context, key string) (int64, error)
	// Blocked reports whether the key has exhausted its attempts.
	Blocked(ctx context.Context, key string) (bool, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}

const loginAttemptLimit = 5

// NewAttemptStore returns a redis-backed store when a client is
// available, otherwise an in-process one.
func NewAttemptStore(rdb *redis.Client, window time.Duration) AttemptStore {
	if rdb != nil {
		return &redisAttemptStore{rdb: rdb, window: window}
	}
	return &memoryAttemptStore{
		window:  window,
		entries: make(map[string]*attemptEntry),
	}
}

// AttemptKey normalizes an account identifier into a store key.
func AttemptKey(email string) string {
	return "login:attempts:" + strings.ToLower(strings.TrimSpace(email))
}

type attemptEntry struct {
	count     int64
	windowEnd time.Time
}

type memoryAttemptStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*attemptEntry
}

func (s *memoryAttemptStore) Fail(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry := s.entries[key]
	if entry == nil || now.After(entry.windowEnd) {
		entry = &attemptEntry{windowEnd: now.Add(s.window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

func (s *memoryAttemptStore) Blocked(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[key]
	if entry == nil || time.Now().After(entry.windowEnd) {
		return false, nil
	}
	return entry.count >= loginAttemptLimit, nil
}

func (s *memoryAttemptStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

type redisAttemptStore struct {
	rdb    *redis.Client
	window time.Duration
}

func (s *redisAttemptStore) Fail(ctx context.Context, key string) (int64, error) {
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("attempt incr: %w", err)
	}
	if count == 1 {
		_ = s.rdb.Expire(ctx, key, s.window).Err()
	}
	return count, nil
}

func (s *redisAttemptStore) Blocked(ctx context.Context, key string) (bool, error) {
	count, err := s.rdb.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= loginAttemptLimit, nil
}

func (s *redisAttemptStore) Reset(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
