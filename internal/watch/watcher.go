// Package watch reloads the content bundle when the source file changes on disk.
// Intended for development setups where the bundle is edited locally.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
)

// BundleWatcher watches the bundle file and refreshes the content accessor
// when it changes. Events are debounced because editors typically emit several
// write/rename events per save.
type BundleWatcher struct {
	content  *service.ContentService
	path     string
	debounce time.Duration
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewBundleWatcher creates a watcher for the given bundle file.
func NewBundleWatcher(
	content *service.ContentService,
	path string,
	debounce time.Duration,
	logger *zap.Logger,
) (*BundleWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	return &BundleWatcher{
		content:  content,
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
		watcher:  w,
	}, nil
}

// Start begins watching the bundle file.
//
// The parent directory is watched rather than the file itself: most editors
// save via rename-and-replace, which would otherwise orphan the watch.
func (b *BundleWatcher) Start() error {
	dir := filepath.Dir(b.path)
	if err := b.watcher.Add(dir); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	b.logger.Info("watching content bundle",
		zap.String("path", b.path),
		zap.Duration("debounce", b.debounce),
	)

	b.wg.Add(1)
	go b.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (b *BundleWatcher) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	err := b.watcher.Close()
	b.wg.Wait()

	return err
}

// run consumes fsnotify events until the context is cancelled.
func (b *BundleWatcher) run(ctx context.Context) {
	defer b.wg.Done()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !b.relevant(event) {
				continue
			}

			b.logger.Debug("bundle file event",
				zap.String("op", event.Op.String()),
				zap.String("name", event.Name),
			)

			// Collapse bursts of events into a single refresh
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(b.debounce, func() {
				b.refresh(ctx)
			})

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.logger.Warn("bundle watcher error", zap.Error(err))
		}
	}
}

// relevant reports whether the event concerns the bundle file.
func (b *BundleWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != b.path {
		return false
	}

	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}

// refresh reloads the bundle through the content accessor.
func (b *BundleWatcher) refresh(ctx context.Context) {
	b.logger.Info("bundle changed on disk, refreshing content")

	if err := b.content.Refresh(ctx); err != nil {
		b.logger.Warn("refresh after bundle change failed", zap.Error(err))
	}
}
