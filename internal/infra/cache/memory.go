// Package cache provides the in-memory TTL content cache.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock returns the current time. Injectable so TTL expiry is testable.
type Clock func() time.Time

type entry struct {
	value    []byte
	storedAt time.Time
	ttl      time.Duration
}

// Memory implements domain.Cache with a process-local map. Entries expire
// by TTL only; there is no further eviction policy because the key set is
// small and fixed in practice (content is monolithic per load).
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   Clock
	logger  *zap.Logger
}

// NewMemory creates an in-memory cache using the wall clock.
func NewMemory(logger *zap.Logger) *Memory {
	return NewMemoryWithClock(logger, time.Now)
}

// NewMemoryWithClock creates an in-memory cache with an injected clock.
func NewMemoryWithClock(logger *zap.Logger, clock Clock) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		clock:   clock,
		logger:  logger,
	}
}

// Get returns the cached value only while now - storedAt < ttl.
// An expired entry is removed and reported as a miss (nil, nil).
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if m.clock().Sub(e.storedAt) >= e.ttl {
		m.mu.Lock()
		// Re-check under the write lock; a Set may have replaced it.
		if current, still := m.entries[key]; still && current.storedAt.Equal(e.storedAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()

		m.logger.Debug("cache entry expired", zap.String("key", key))

		return nil, nil
	}

	m.logger.Debug("cache hit",
		zap.String("key", key),
		zap.Int("bytes", len(e.value)),
	)

	return e.value, nil
}

// Set replaces any existing entry unconditionally. No merge semantics.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry{
		value:    value,
		storedAt: m.clock(),
		ttl:      ttl,
	}
	m.mu.Unlock()

	m.logger.Debug("cache set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("ttl", ttl),
	)

	return nil
}

// Delete removes a value by key. Idempotent.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Clear removes all cached values.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()

	return nil
}
