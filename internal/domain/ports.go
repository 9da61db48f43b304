package domain

import (
	"context"
	"time"
)

// ContentBundle is the raw, unvalidated payload a Source resolves: the
// site document plus the separately maintained lesson packages bundle.
type ContentBundle struct {
	Site     map[string]any `json:"site"`
	Packages []any          `json:"packages,omitempty"`
}

// Source defines the interface for content bundle providers.
// Implementations: internal/infra/source (file and remote).
type Source interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch resolves the raw content bundle.
	Fetch(ctx context.Context) (*ContentBundle, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/cache (in-memory), internal/infra/redis.
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL, replacing any existing
	// entry unconditionally.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}

// Snapshot is one validated load of site content. It is held read-only
// until the next load/refresh cycle replaces the whole snapshot; derived
// views only ever read it.
type Snapshot struct {
	Site *SiteContent `json:"site"`

	// Raw is the untyped site document the search accessor walks.
	Raw map[string]any `json:"raw"`

	Validation ValidationResult `json:"validation"`
	Version    string           `json:"version"`
	LoadedAt   time.Time        `json:"loadedAt"`
}
