package watch

import (
	"context"
	"encoding/json"
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

type countingSource struct {
	mu     sync.Mutex
	bundle *domain.ContentBundle
	calls  int
}

func (s *countingSource) Name() string { return "stub" }

func (s *countingSource) Fetch(_ context.Context) (*domain.ContentBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return s.bundle, nil
}

func (s *countingSource) HealthCheck(_ context.Context) error { return nil }

func (s *countingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func newWatcherFixture(t *testing.T) (*countingSource, *service.ContentService, string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "content", "site.json"))
	require.NoError(t, err)

	var bundle domain.ContentBundle
	require.NoError(t, json.Unmarshal(data, &bundle))

	source := &countingSource{bundle: &bundle}
	content := service.NewContentService(source, memcache.NewMemory(zap.NewNop()), service.ContentConfig{
		CacheKey: "test-content",
		TTL:      time.Minute,
	}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return source, content, path
}

// TestBundleWatcher_RefreshOnWrite tests that a file write triggers a
// debounced refresh.
func TestBundleWatcher_RefreshOnWrite(t *testing.T) {
	source, content, path := newWatcherFixture(t)
	defer content.Close()

	watcher, err := NewBundleWatcher(content, path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte(`{"hero": {}}`), 0o644))

	require.Eventually(t, func() bool {
		return source.callCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

// TestBundleWatcher_DebouncesBursts tests that a burst of writes collapses
// into a single refresh.
func TestBundleWatcher_DebouncesBursts(t *testing.T) {
	source, content, path := newWatcherFixture(t)
	defer content.Close()

	watcher, err := NewBundleWatcher(content, path, 100*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"hero": {}}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return source.callCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// The burst fits in one debounce window
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, source.callCount())
}

// TestBundleWatcher_IgnoresSiblingFiles tests that changes to other files in
// the watched directory are ignored.
func TestBundleWatcher_IgnoresSiblingFiles(t *testing.T) {
	source, content, path := newWatcherFixture(t)
	defer content.Close()

	watcher, err := NewBundleWatcher(content, path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	sibling := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(sibling, []byte("unrelated"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, source.callCount())
}

// TestBundleWatcher_RenameAndReplace tests the editor save pattern: write to
// a temp file, then rename it over the bundle.
func TestBundleWatcher_RenameAndReplace(t *testing.T) {
	source, content, path := newWatcherFixture(t)
	defer content.Close()

	watcher, err := NewBundleWatcher(content, path, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	tmp := filepath.Join(filepath.Dir(path), "site.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"hero": {}}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		return source.callCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

// TestBundleWatcher_Stop tests that Stop halts event handling.
func TestBundleWatcher_Stop(t *testing.T) {
	source, content, path := newWatcherFixture(t)
	defer content.Close()

	watcher, err := NewBundleWatcher(content, path, 10*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	require.NoError(t, watcher.Stop())

	require.NoError(t, os.WriteFile(path, []byte(`{"hero": {}}`), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, source.callCount())
}
