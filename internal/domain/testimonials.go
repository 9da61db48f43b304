package domain

import (
	"sort"
)

// TestimonialFilter selects testimonials from a snapshot. Nil/zero fields
// mean "no constraint".
type TestimonialFilter struct {
	Featured   *bool
	Verified   *bool
	Instrument string
	Level      string
	MinRating  int

	// Limit caps the result count after sorting; 0 means no cap.
	Limit int
}

// FilterTestimonials returns the testimonials matching the filter, sorted
// by rating descending with ties broken by date descending (most recent
// first). Individually invalid testimonials are dropped. The input slice
// is never mutated.
func FilterTestimonials(testimonials []Testimonial, filter TestimonialFilter) []Testimonial {
	result := make([]Testimonial, 0, len(testimonials))

	for _, tm := range testimonials {
		if !tm.IsValid() {
			continue
		}
		if filter.Featured != nil && tm.Featured != *filter.Featured {
			continue
		}
		if filter.Verified != nil && tm.Verified != *filter.Verified {
			continue
		}
		if filter.Instrument != "" && tm.Instrument != filter.Instrument {
			continue
		}
		if filter.Level != "" && tm.Level != filter.Level {
			continue
		}
		if filter.MinRating > 0 && tm.Rating < filter.MinRating {
			continue
		}
		result = append(result, tm)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Rating != result[j].Rating {
			return result[i].Rating > result[j].Rating
		}
		return result[i].ParsedDate().After(result[j].ParsedDate())
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result
}
