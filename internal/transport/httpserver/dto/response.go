package dto

import (
	"time"

	"site-content-service/internal/app/service"
	"site-content-service/internal/domain"
)

// ValidationSummary condenses a validation result for API responses.
type ValidationSummary struct {
	Valid    bool `json:"valid"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
}

// FromValidationResult converts a domain result into a summary.
func FromValidationResult(r domain.ValidationResult) ValidationSummary {
	return ValidationSummary{
		Valid:    r.Valid,
		Errors:   len(r.Errors),
		Warnings: len(r.Warnings),
	}
}

// ContentResponse is the full-snapshot response.
type ContentResponse struct {
	Content    *domain.SiteContent `json:"content"`
	Validation ValidationSummary   `json:"validation"`
	Version    string              `json:"version,omitempty"`
	LoadedAt   string              `json:"loaded_at"`
}

// FromSnapshot converts a snapshot to ContentResponse.
func FromSnapshot(s *domain.Snapshot) ContentResponse {
	return ContentResponse{
		Content:    s.Site,
		Validation: FromValidationResult(s.Validation),
		Version:    s.Version,
		LoadedAt:   s.LoadedAt.Format(time.RFC3339),
	}
}

// SectionResponse is a section projection plus its scoped findings.
type SectionResponse struct {
	Section  string                   `json:"section"`
	Data     any                      `json:"data"`
	Errors   []domain.ValidationError `json:"errors"`
	Warnings []domain.ValidationError `json:"warnings"`
}

// FromSectionView converts a service.SectionView to SectionResponse.
func FromSectionView(v *service.SectionView) SectionResponse {
	errs := v.Errors
	if errs == nil {
		errs = []domain.ValidationError{}
	}
	warns := v.Warnings
	if warns == nil {
		warns = []domain.ValidationError{}
	}

	return SectionResponse{
		Section:  v.Name,
		Data:     v.Data,
		Errors:   errs,
		Warnings: warns,
	}
}

// PackagesResponse holds filtered packages and their summary statistics.
type PackagesResponse struct {
	Packages []domain.LessonPackage `json:"packages"`
	Stats    domain.PackageStats    `json:"stats"`
}

// TestimonialsResponse holds filtered testimonials.
type TestimonialsResponse struct {
	Testimonials []domain.Testimonial `json:"testimonials"`
	Count        int                  `json:"count"`
}

// SearchResponse holds scored search matches.
type SearchResponse struct {
	Query   string               `json:"query"`
	Matches []domain.SearchMatch `json:"matches"`
	Count   int                  `json:"count"`
}

// StatusResponse reports the content accessor state.
type StatusResponse struct {
	State      string            `json:"state"`
	Error      string            `json:"error,omitempty"`
	RetryCount int               `json:"retry_count"`
	Version    string            `json:"version,omitempty"`
	LoadedAt   string            `json:"loaded_at,omitempty"`
	Validation ValidationSummary `json:"validation"`
}

// FromStatus converts a service.Status plus validation into StatusResponse.
func FromStatus(status service.Status, validation domain.ValidationResult) StatusResponse {
	resp := StatusResponse{
		State:      string(status.State),
		Error:      status.Err,
		RetryCount: status.RetryCount,
		Version:    status.Version,
		Validation: FromValidationResult(validation),
	}
	if !status.LoadedAt.IsZero() {
		resp.LoadedAt = status.LoadedAt.Format(time.RFC3339)
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
