package domain

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a validation finding.
type ErrorCode string

const (
	CodeRequiredField ErrorCode = "REQUIRED_FIELD"
	CodeInvalidType   ErrorCode = "INVALID_TYPE"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeInvalidLength ErrorCode = "INVALID_LENGTH"
	CodeInvalidRange  ErrorCode = "INVALID_RANGE"
	CodeInvalidURL    ErrorCode = "INVALID_URL"
	CodeInvalidEmail  ErrorCode = "INVALID_EMAIL"
	CodeInvalidDate   ErrorCode = "INVALID_DATE"
	CodeDuplicate     ErrorCode = "DUPLICATE_VALUE"
	CodeReference     ErrorCode = "REFERENCE_ERROR"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is a single validation finding with a dotted field path,
// e.g. "about.skills[2].level".
type ValidationError struct {
	Field    string    `json:"field"`
	Message  string    `json:"message"`
	Code     ErrorCode `json:"code"`
	Severity Severity  `json:"severity"`
}

// ValidationResult is the outcome of validating one entity or the whole
// site aggregate. Valid is true iff Errors is empty; warnings never affect
// validity.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// NewValidationResult returns an empty, valid result.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

// AddError records a blocking finding and marks the result invalid.
func (r *ValidationResult) AddError(field, message string, code ErrorCode) {
	r.Errors = append(r.Errors, ValidationError{
		Field:    field,
		Message:  message,
		Code:     code,
		Severity: SeverityError,
	})
	r.Valid = false
}

// AddWarning records an advisory finding. Validity is unaffected.
func (r *ValidationResult) AddWarning(field, message string, code ErrorCode) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:    field,
		Message:  message,
		Code:     code,
		Severity: SeverityWarning,
	})
}

// Merge appends another result's findings into r, rewriting field paths
// from oldPrefix to newPrefix. Entity validators emit canonical prefixes
// ("package.", "testimonial."); the aggregate rewrites them to their
// position in the document ("lessons.packages[2].").
func (r *ValidationResult) Merge(other ValidationResult, oldPrefix, newPrefix string) {
	for _, e := range other.Errors {
		e.Field = reprefix(e.Field, oldPrefix, newPrefix)
		r.Errors = append(r.Errors, e)
		r.Valid = false
	}
	for _, w := range other.Warnings {
		w.Field = reprefix(w.Field, oldPrefix, newPrefix)
		r.Warnings = append(r.Warnings, w)
	}
}

// FindingsFor returns the errors and warnings whose field path belongs to
// the given section (an exact match, a dotted child, or the aggregate's
// own "siteContent.<section>" finding).
func (r *ValidationResult) FindingsFor(section string) ([]ValidationError, []ValidationError) {
	match := func(f string) bool {
		return f == section ||
			strings.HasPrefix(f, section+".") ||
			strings.HasPrefix(f, section+"[") ||
			f == "siteContent."+section
	}

	var errs, warns []ValidationError
	for _, e := range r.Errors {
		if match(e.Field) {
			errs = append(errs, e)
		}
	}
	for _, w := range r.Warnings {
		if match(w.Field) {
			warns = append(warns, w)
		}
	}
	return errs, warns
}

// FormatValidationErrors renders findings one per line as "field: message"
// for human display and logging.
func FormatValidationErrors(findings []ValidationError) string {
	if len(findings) == 0 {
		return ""
	}
	lines := make([]string, len(findings))
	for i, f := range findings {
		lines[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(lines, "\n")
}

func reprefix(field, oldPrefix, newPrefix string) string {
	if oldPrefix == "" || oldPrefix == newPrefix {
		return field
	}
	if field == oldPrefix {
		return newPrefix
	}
	if strings.HasPrefix(field, oldPrefix+".") {
		return newPrefix + field[len(oldPrefix):]
	}
	return field
}
