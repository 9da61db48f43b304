// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"site-content-service/internal/domain"
)

// PackagesRequest represents the query parameters for filtering lesson
// packages. Boolean filters are tri-state (unset/true/false), hence strings.
type PackagesRequest struct {
	Popular     string  `query:"popular" validate:"omitempty,oneof=true false"`
	MaxPrice    float64 `query:"max_price" validate:"omitempty,gt=0"`
	MinSessions int     `query:"min_sessions" validate:"omitempty,min=1"`
	Audience    string  `query:"audience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Instrument  string  `query:"instrument" validate:"omitempty,max=50"`
}

// ToFilter converts PackagesRequest to domain.PackageFilter.
func (r *PackagesRequest) ToFilter() domain.PackageFilter {
	filter := domain.PackageFilter{}

	if r.Popular != "" {
		popular := r.Popular == "true"
		filter.Popular = &popular
	}
	if r.MaxPrice > 0 {
		maxPrice := r.MaxPrice
		filter.MaxPrice = &maxPrice
	}
	if r.MinSessions > 0 {
		minSessions := r.MinSessions
		filter.MinSessions = &minSessions
	}
	if r.Audience != "" {
		filter.Audience = []domain.AudienceLevel{domain.AudienceLevel(r.Audience)}
	}
	if r.Instrument != "" {
		filter.Instruments = []string{r.Instrument}
	}

	return filter
}

// TestimonialsRequest represents the query parameters for filtering
// testimonials.
type TestimonialsRequest struct {
	Featured   string `query:"featured" validate:"omitempty,oneof=true false"`
	Verified   string `query:"verified" validate:"omitempty,oneof=true false"`
	Instrument string `query:"instrument" validate:"omitempty,max=50"`
	Level      string `query:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	MinRating  int    `query:"min_rating" validate:"omitempty,min=1,max=5"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToFilter converts TestimonialsRequest to domain.TestimonialFilter.
func (r *TestimonialsRequest) ToFilter() domain.TestimonialFilter {
	filter := domain.TestimonialFilter{
		Instrument: r.Instrument,
		Level:      r.Level,
		MinRating:  r.MinRating,
		Limit:      r.Limit,
	}

	if r.Featured != "" {
		featured := r.Featured == "true"
		filter.Featured = &featured
	}
	if r.Verified != "" {
		verified := r.Verified == "true"
		filter.Verified = &verified
	}

	return filter
}

// SearchRequest represents the query parameters for content search.
type SearchRequest struct {
	Query   string `query:"q" validate:"required,min=1,max=200"`
	Section string `query:"section" validate:"omitempty,oneof=hero about approach lessons community contact seo navigation"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ToParams converts SearchRequest to domain.SearchParams.
func (r *SearchRequest) ToParams() domain.SearchParams {
	return domain.SearchParams{
		Query:   r.Query,
		Section: r.Section,
		Limit:   r.Limit,
	}
}
