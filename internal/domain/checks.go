package domain

import (
	"math"
	"net/url"
	"regexp"
	"strings"
)

// Pure predicate validators. Each takes one value plus constraints and
// returns a boolean; none of them panic or log.

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{1,15}$`)
	handlePattern = regexp.MustCompile(`^@[A-Za-z0-9_.]{2,30}$`)
)

// IsNonEmptyString reports whether s contains non-whitespace characters.
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidURL reports whether s parses as an absolute http(s) URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidHref reports whether s is usable as a contact link: an absolute
// URL or a mailto:/tel: reference.
func IsValidHref(s string) bool {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "mailto:") || strings.HasPrefix(trimmed, "tel:") {
		return len(trimmed) > len("tel:")
	}
	return IsValidURL(trimmed)
}

// IsValidEmail reports whether s has a local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidRating reports whether v is an integer in [1, 5].
func IsValidRating(v float64) bool {
	return v == math.Trunc(v) && v >= 1 && v <= 5
}

// IsValidDate reports whether s parses with one of the accepted layouts.
func IsValidDate(s string) bool {
	_, ok := ParseContentDate(strings.TrimSpace(s))
	return ok
}

// IsNonNegativeNumber reports whether v is zero or positive.
func IsNonNegativeNumber(v float64) bool {
	return v >= 0
}

// IsPositiveNumber reports whether v is strictly positive.
func IsPositiveNumber(v float64) bool {
	return v > 0
}

// IsNonEmptySlice reports whether v has at least one element.
func IsNonEmptySlice(v []any) bool {
	return len(v) > 0
}

// IsValidPhone reports whether s is a loose phone number: optional leading
// "+" followed by 1-15 digits. Separators are tolerated, not E.164-strict.
func IsValidPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	return phonePattern.MatchString(cleaned)
}

// IsValidHandle reports whether s is an @-prefixed social handle of
// 2-30 alphanumeric, underscore, or dot characters.
func IsValidHandle(s string) bool {
	return handlePattern.MatchString(strings.TrimSpace(s))
}

// IsValidLength reports whether the trimmed length of s is within [min, max].
func IsValidLength(s string, min, max int) bool {
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}
