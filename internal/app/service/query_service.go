package service

import (
	"errors"

	"go.uber.org/zap"

	"site-content-service/internal/domain"
)

// Query errors surfaced to transport.
var (
	ErrNotReady       = errors.New("content is not ready")
	ErrUnknownSection = errors.New("unknown section")
)

// SectionView is a section projection plus the validation findings whose
// field paths belong to that section.
type SectionView struct {
	Name     string                   `json:"name"`
	Data     any                      `json:"data"`
	Errors   []domain.ValidationError `json:"errors,omitempty"`
	Warnings []domain.ValidationError `json:"warnings,omitempty"`
}

// QueryService exposes the derived views over the ready snapshot: section
// projection, package and testimonial filtering, and full-text search.
// Every view is a pure read; the snapshot is never mutated.
type QueryService struct {
	content *ContentService
	logger  *zap.Logger
}

// NewQueryService creates a QueryService.
func NewQueryService(content *ContentService, logger *zap.Logger) *QueryService {
	return &QueryService{
		content: content,
		logger:  logger,
	}
}

// Section projects one named section out of the aggregate along with its
// scoped validation findings.
func (s *QueryService) Section(name string) (*SectionView, error) {
	snapshot, ok := s.content.Snapshot()
	if !ok {
		return nil, ErrNotReady
	}

	data, ok := snapshot.Site.Section(name)
	if !ok {
		return nil, ErrUnknownSection
	}

	errs, warns := snapshot.Validation.FindingsFor(name)

	return &SectionView{
		Name:     name,
		Data:     data,
		Errors:   errs,
		Warnings: warns,
	}, nil
}

// Packages returns the lesson packages matching the filter together with
// summary statistics over the filtered set.
func (s *QueryService) Packages(filter domain.PackageFilter) ([]domain.LessonPackage, domain.PackageStats, error) {
	snapshot, ok := s.content.Snapshot()
	if !ok {
		return nil, domain.PackageStats{}, ErrNotReady
	}

	packages := domain.FilterPackages(snapshot.Site.Lessons.Packages, filter)
	stats := domain.SummarizePackages(packages)

	s.logger.Debug("packages filtered",
		zap.Int("total", len(snapshot.Site.Lessons.Packages)),
		zap.Int("matched", len(packages)),
	)

	return packages, stats, nil
}

// Testimonials returns the testimonials matching the filter, sorted by
// rating then recency.
func (s *QueryService) Testimonials(filter domain.TestimonialFilter) ([]domain.Testimonial, error) {
	snapshot, ok := s.content.Snapshot()
	if !ok {
		return nil, ErrNotReady
	}

	testimonials := domain.FilterTestimonials(snapshot.Site.Community.Testimonials, filter)

	return testimonials, nil
}

// Search runs a full-text search over the raw content tree.
func (s *QueryService) Search(params domain.SearchParams) ([]domain.SearchMatch, error) {
	snapshot, ok := s.content.Snapshot()
	if !ok {
		return nil, ErrNotReady
	}

	matches := domain.SearchContent(snapshot.Raw, params)

	s.logger.Debug("content searched",
		zap.String("query", params.Query),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}
