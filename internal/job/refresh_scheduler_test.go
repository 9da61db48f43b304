package job

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
	"site-content-service/internal/domain"
	memcache "site-content-service/internal/infra/cache"
)

type stubSource struct {
	mu     sync.Mutex
	bundle *domain.ContentBundle
	err    error
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context) (*domain.ContentBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	return s.bundle, nil
}

func (s *stubSource) HealthCheck(_ context.Context) error { return nil }

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// fakeLocker records lock traffic without a redis backend.
type fakeLocker struct {
	mu       sync.Mutex
	denied   bool
	acquires int
	releases int
	lastTTL  time.Duration
}

func (l *fakeLocker) Acquire(_ context.Context, _ string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.denied {
		return false, nil
	}
	l.acquires++
	l.lastTTL = ttl

	return true, nil
}

func (l *fakeLocker) Release(_ context.Context, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.releases++

	return nil
}

func (l *fakeLocker) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.acquires, l.releases
}

func newTestContent(t *testing.T, source domain.Source) *service.ContentService {
	t.Helper()

	return service.NewContentService(source, memcache.NewMemory(zap.NewNop()), service.ContentConfig{
		CacheKey:       "test-content",
		TTL:            time.Minute,
		MaxRetries:     1,
		RetryBaseDelay: time.Minute,
	}, zap.NewNop())
}

func sampleBundle(t *testing.T) *domain.ContentBundle {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "content", "site.json"))
	require.NoError(t, err)

	var bundle domain.ContentBundle
	require.NoError(t, json.Unmarshal(data, &bundle))

	return &bundle
}

// TestRefreshScheduler_RunOnStartup tests the immediate refresh path and the
// cooldown lock TTL.
func TestRefreshScheduler_RunOnStartup(t *testing.T) {
	source := &stubSource{bundle: sampleBundle(t)}
	content := newTestContent(t, source)
	defer content.Close()

	lock := &fakeLocker{}
	scheduler := NewRefreshScheduler(content, RefreshConfig{
		Interval: time.Hour,
		Timeout:  5 * time.Second,
	}, zap.NewNop(), lock)

	scheduler.Start(true)
	defer scheduler.Stop()

	require.Eventually(t, func() bool {
		return source.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, service.StateReady, content.Status().State)

	acquires, releases := lock.counts()
	assert.Equal(t, 1, acquires)
	// Lock held for the cooldown window, not released on success
	assert.Equal(t, 0, releases)

	lock.mu.Lock()
	ttl := lock.lastTTL
	lock.mu.Unlock()
	assert.Equal(t, time.Hour, ttl)
}

// TestRefreshScheduler_Ticker tests periodic refreshes.
func TestRefreshScheduler_Ticker(t *testing.T) {
	source := &stubSource{bundle: sampleBundle(t)}
	content := newTestContent(t, source)
	defer content.Close()

	scheduler := NewRefreshScheduler(content, RefreshConfig{
		Interval: 30 * time.Millisecond,
		Timeout:  5 * time.Second,
	}, zap.NewNop(), &fakeLocker{})

	scheduler.Start(false)

	require.Eventually(t, func() bool {
		return source.callCount() >= 2
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()

	// No refreshes after Stop
	calls := source.callCount()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, source.callCount())
}

// TestRefreshScheduler_LockContention tests that a held lock skips the run.
func TestRefreshScheduler_LockContention(t *testing.T) {
	source := &stubSource{bundle: sampleBundle(t)}
	content := newTestContent(t, source)
	defer content.Close()

	scheduler := NewRefreshScheduler(content, RefreshConfig{
		Interval: time.Hour,
		Timeout:  5 * time.Second,
	}, zap.NewNop(), &fakeLocker{denied: true})

	scheduler.Start(true)
	defer scheduler.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, source.callCount())
}

// TestRefreshScheduler_ReleasesLockOnFailure tests the early-release path.
func TestRefreshScheduler_ReleasesLockOnFailure(t *testing.T) {
	source := &stubSource{err: errors.New("content server down")}
	content := newTestContent(t, source)
	defer content.Close()

	lock := &fakeLocker{}
	scheduler := NewRefreshScheduler(content, RefreshConfig{
		Interval: time.Hour,
		Timeout:  5 * time.Second,
	}, zap.NewNop(), lock)

	scheduler.Start(true)
	defer scheduler.Stop()

	require.Eventually(t, func() bool {
		_, releases := lock.counts()
		return releases == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, service.StateError, content.Status().State)
}
