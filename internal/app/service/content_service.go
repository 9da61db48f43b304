// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"site-content-service/internal/domain"
)

// State is the content accessor lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Status is what consumers observe about the accessor.
type Status struct {
	State      State     `json:"state"`
	Err        string    `json:"error,omitempty"`
	RetryCount int       `json:"retryCount"`
	Version    string    `json:"version,omitempty"`
	LoadedAt   time.Time `json:"loadedAt,omitempty"`
}

// Listener receives status updates on every state transition.
type Listener func(Status)

// ContentConfig holds content accessor settings.
type ContentConfig struct {
	CacheKey       string
	TTL            time.Duration
	MaxRetries     int           // automatic retry attempts after a failed load
	RetryBaseDelay time.Duration // delay = base * 2^attempt
}

const (
	defaultCacheKey   = "site-content"
	defaultTTL        = 5 * time.Minute
	defaultMaxRetries = 3
	defaultRetryBase  = time.Second
)

// ContentService orchestrates load -> validate -> cache -> expose for the
// site content bundle. It is a state machine over
// idle -> loading -> (ready | error), with error -> loading via retry.
//
// The cache is written only here; derived views are pure reads over the
// snapshot. Listeners replace the UI-framework reactivity of a front end:
// any consumer (HTTP handler, test harness, CLI) can subscribe to state
// transitions without a rendering layer.
type ContentService struct {
	source domain.Source
	cache  domain.Cache
	cfg    ContentConfig
	logger *zap.Logger

	mu           sync.Mutex
	state        State
	errMsg       string
	snapshot     *domain.Snapshot
	validation   domain.ValidationResult
	retryCount   int
	retryTimer   *time.Timer
	closed       bool
	listeners    map[int]Listener
	nextListener int
}

// NewContentService creates a ContentService. Zero config fields fall back
// to defaults.
func NewContentService(source domain.Source, cache domain.Cache, cfg ContentConfig, logger *zap.Logger) *ContentService {
	if cfg.CacheKey == "" {
		cfg.CacheKey = defaultCacheKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBase
	}

	return &ContentService{
		source:    source,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		state:     StateIdle,
		listeners: make(map[int]Listener),
	}
}

// Load makes content available. With force=false a fresh cache entry is
// used directly; on miss (or force=true) the bundle is fetched from the
// source, validated, and written through to the cache.
//
// A failed load transitions to the error state and schedules an automatic
// retry with exponential backoff, bounded by MaxRetries.
func (s *ContentService) Load(ctx context.Context, force bool) (err error) {
	// Nothing below is allowed to crash a consumer: an unexpected panic
	// from a malformed bundle becomes the error state like any failure.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("content load panicked", zap.Any("panic", r))
			err = s.fail(fmt.Sprintf("content load panicked: %v", r), nil)
		}
	}()

	if !force {
		if ok := s.loadFromCache(ctx); ok {
			return nil
		}
	}

	s.transition(StateLoading, "")

	bundle, fetchErr := s.source.Fetch(ctx)
	if fetchErr != nil {
		return s.fail(fmt.Sprintf("loading content: %v", fetchErr), nil)
	}

	snapshot, result := s.buildSnapshot(bundle)
	if !result.Valid {
		return s.fail(domain.FormatValidationErrors(result.Errors), &result)
	}

	data, marshalErr := json.Marshal(snapshot)
	if marshalErr != nil {
		return s.fail(fmt.Sprintf("encoding snapshot: %v", marshalErr), &result)
	}
	if cacheErr := s.cache.Set(ctx, s.cfg.CacheKey, data, s.cfg.TTL); cacheErr != nil {
		// Content is still served from memory; only shared reads suffer.
		s.logger.Warn("cache write failed", zap.Error(cacheErr))
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.validation = result
	s.state = StateReady
	s.errMsg = ""
	s.retryCount = 0 // reset-on-success
	s.stopRetryLocked()
	status := s.statusLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Info("content ready",
		zap.String("source", s.source.Name()),
		zap.String("version", snapshot.Version),
		zap.Int("warnings", len(result.Warnings)),
	)

	for _, l := range listeners {
		l(status)
	}

	return nil
}

// Refresh cancels any pending scheduled retry and forces a reload that
// bypasses the cache. Within one accessor a refresh therefore strictly
// supersedes an in-flight retry; two loads never race to write the cache.
func (s *ContentService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.stopRetryLocked()
	s.mu.Unlock()

	return s.Load(ctx, true)
}

// Retry manually re-attempts a failed load. The backoff attempt counter
// keeps counting; it resets only on a successful load.
func (s *ContentService) Retry(ctx context.Context) error {
	s.mu.Lock()
	s.stopRetryLocked()
	s.mu.Unlock()

	return s.Load(ctx, true)
}

// Snapshot returns the current content snapshot. ok is false unless the
// accessor is in the ready state.
func (s *ContentService) Snapshot() (*domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.snapshot == nil {
		return nil, false
	}

	return s.snapshot, true
}

// Validation returns the most recent validation result.
func (s *ContentService) Validation() domain.ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.validation
}

// Status returns the current accessor status.
func (s *ContentService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked()
}

// Subscribe registers a listener for state transitions and returns its
// unsubscribe function.
func (s *ContentService) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close cancels any pending retry and stops further scheduling. It mirrors
// component unmount: a pending auto-retry must not fire afterwards.
func (s *ContentService) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopRetryLocked()
	s.mu.Unlock()
}

// loadFromCache attempts to serve from the cache. Returns true on a hit.
func (s *ContentService) loadFromCache(ctx context.Context) bool {
	data, err := s.cache.Get(ctx, s.cfg.CacheKey)
	if err != nil || data == nil {
		return false
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil || snapshot.Site == nil {
		// A corrupt entry is treated as a miss and overwritten by the
		// next successful load.
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", s.cfg.CacheKey))
		return false
	}

	s.mu.Lock()
	s.snapshot = &snapshot
	s.validation = snapshot.Validation
	s.state = StateReady
	s.errMsg = ""
	s.retryCount = 0
	s.stopRetryLocked()
	status := s.statusLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Debug("content served from cache", zap.String("version", snapshot.Version))

	for _, l := range listeners {
		l(status)
	}

	return true
}

// buildSnapshot validates the raw bundle and, when acceptable, decodes it
// into the typed model and merges the separate lesson-packages bundle.
func (s *ContentService) buildSnapshot(bundle *domain.ContentBundle) (*domain.Snapshot, domain.ValidationResult) {
	result := domain.ValidateSiteContent(bundle.Site)
	if !result.Valid {
		return nil, result
	}

	site, err := decodeSite(bundle.Site)
	if err != nil {
		result.AddError("siteContent", fmt.Sprintf("decoding validated content: %v", err), domain.CodeInvalidType)
		return nil, result
	}

	// The lesson-packages bundle is maintained separately from the site
	// document. Individually invalid entries are dropped with a warning
	// log, not a load failure: partial availability beats total failure.
	for i, raw := range bundle.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		pr := domain.ValidateLessonPackage(raw)
		if !pr.Valid {
			s.logger.Warn("dropping invalid package from packages bundle",
				zap.Int("index", i),
				zap.String("findings", domain.FormatValidationErrors(pr.Errors)),
			)
			continue
		}
		result.Merge(pr, "package", field)

		pkg, err := decodePackage(raw)
		if err != nil {
			s.logger.Warn("dropping undecodable package from packages bundle",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		mergePackage(&site.Lessons, pkg)
	}

	return &domain.Snapshot{
		Site:       site,
		Raw:        bundle.Site,
		Validation: result,
		Version:    site.Version,
		LoadedAt:   time.Now().UTC(),
	}, result
}

// fail transitions to the error state and schedules an automatic retry
// while attempts remain.
func (s *ContentService) fail(message string, result *domain.ValidationResult) error {
	s.mu.Lock()
	s.state = StateError
	s.errMsg = message
	if result != nil {
		s.validation = *result
	}

	scheduled := false
	var delay time.Duration
	if !s.closed && s.retryCount < s.cfg.MaxRetries {
		s.retryCount++
		// delay = base * 2^attempt
		delay = s.cfg.RetryBaseDelay << uint(s.retryCount)
		s.stopRetryLocked()
		s.retryTimer = time.AfterFunc(delay, func() {
			// Scheduled retries run detached from the original caller.
			_ = s.Load(context.Background(), true)
		})
		scheduled = true
	}

	status := s.statusLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	fields := []zap.Field{
		zap.String("source", s.source.Name()),
		zap.Int("retry_count", status.RetryCount),
	}
	if scheduled {
		fields = append(fields, zap.Duration("retry_in", delay))
	}
	s.logger.Error("content load failed: "+message, fields...)

	for _, l := range listeners {
		l(status)
	}

	return errors.New(message)
}

func (s *ContentService) transition(state State, errMsg string) {
	s.mu.Lock()
	s.state = state
	s.errMsg = errMsg
	status := s.statusLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l(status)
	}
}

func (s *ContentService) statusLocked() Status {
	status := Status{
		State:      s.state,
		Err:        s.errMsg,
		RetryCount: s.retryCount,
	}
	if s.snapshot != nil {
		status.Version = s.snapshot.Version
		status.LoadedAt = s.snapshot.LoadedAt
	}

	return status
}

func (s *ContentService) listenersLocked() []Listener {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}

	return listeners
}

func (s *ContentService) stopRetryLocked() {
	if s.retryTimer != nil {
		s.retryTimer.Stop()
		s.retryTimer = nil
	}
}

func decodeSite(raw map[string]any) (*domain.SiteContent, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var site domain.SiteContent
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, err
	}

	return &site, nil
}

func decodePackage(raw any) (domain.LessonPackage, error) {
	var pkg domain.LessonPackage

	data, err := json.Marshal(raw)
	if err != nil {
		return pkg, err
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, err
	}

	return pkg, nil
}

// mergePackage replaces a same-identity package in the lessons section or
// appends a new one. Identity is the ID when set, the name otherwise.
func mergePackage(lessons *domain.LessonsContent, pkg domain.LessonPackage) {
	for i, existing := range lessons.Packages {
		if pkg.ID != "" && existing.ID == pkg.ID {
			lessons.Packages[i] = pkg
			return
		}
		if pkg.ID == "" && existing.Name == pkg.Name {
			lessons.Packages[i] = pkg
			return
		}
	}
	lessons.Packages = append(lessons.Packages, pkg)
}
