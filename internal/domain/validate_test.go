package domain

import (
	"strings"
	"testing"
)

func hasError(r ValidationResult, field string, code ErrorCode) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}

func hasWarning(r ValidationResult, field string, code ErrorCode) bool {
	for _, w := range r.Warnings {
		if w.Field == field && w.Code == code {
			return true
		}
	}
	return false
}

func validHero() map[string]any {
	return map[string]any{
		"title":           "Learn Piano with Elena",
		"subtitle":        "Personalised lessons for every level",
		"ctaText":         "Book a Trial",
		"instagramHandle": "@elena.piano",
		"instagramUrl":    "https://instagram.com/elena.piano",
	}
}

func TestValidateHero_Valid(t *testing.T) {
	r := ValidateHero(validHero())

	if !r.Valid {
		t.Fatalf("expected valid, got errors: %s", FormatValidationErrors(r.Errors))
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %s", FormatValidationErrors(r.Warnings))
	}
}

func TestValidateHero_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(hero map[string]any)
		field  string
		code   ErrorCode
	}{
		{
			name:   "missing title",
			mutate: func(h map[string]any) { delete(h, "title") },
			field:  "hero.title",
			code:   CodeRequiredField,
		},
		{
			name:   "empty title",
			mutate: func(h map[string]any) { h["title"] = "   " },
			field:  "hero.title",
			code:   CodeRequiredField,
		},
		{
			name:   "title wrong type",
			mutate: func(h map[string]any) { h["title"] = 42.0 },
			field:  "hero.title",
			code:   CodeInvalidType,
		},
		{
			name:   "bad handle",
			mutate: func(h map[string]any) { h["instagramHandle"] = "elena" },
			field:  "hero.instagramHandle",
			code:   CodeInvalidFormat,
		},
		{
			name:   "bad url",
			mutate: func(h map[string]any) { h["instagramUrl"] = "not-a-url" },
			field:  "hero.instagramUrl",
			code:   CodeInvalidURL,
		},
		{
			name:   "negative counter",
			mutate: func(h map[string]any) { h["studentsCount"] = -3.0 },
			field:  "hero.studentsCount",
			code:   CodeInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := validHero()
			tt.mutate(hero)

			r := ValidateHero(hero)
			if r.Valid {
				t.Fatal("expected invalid result")
			}
			if !hasError(r, tt.field, tt.code) {
				t.Errorf("expected %s error at %s, got: %s", tt.code, tt.field, FormatValidationErrors(r.Errors))
			}
		})
	}
}

func TestValidateHero_LengthWarnings(t *testing.T) {
	hero := validHero()
	hero["title"] = "Hi" // below the recommended 5-100 range

	r := ValidateHero(hero)
	if !r.Valid {
		t.Fatalf("length advice must not invalidate: %s", FormatValidationErrors(r.Errors))
	}
	if !hasWarning(r, "hero.title", CodeInvalidLength) {
		t.Errorf("expected length warning on hero.title, got: %s", FormatValidationErrors(r.Warnings))
	}
}

func TestValidateHero_NotAnObject(t *testing.T) {
	r := ValidateHero("just a string")

	if r.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasError(r, "hero", CodeInvalidType) {
		t.Errorf("expected INVALID_TYPE at hero, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidateAbout(t *testing.T) {
	about := map[string]any{
		"title":      "About",
		"paragraphs": []any{"First paragraph.", "Second paragraph."},
		"skills": []any{
			map[string]any{"name": "Piano", "level": "expert", "yearsExperience": 20.0},
			map[string]any{"name": "Theory", "level": "grandmaster", "yearsExperience": 5.0},
		},
	}

	r := ValidateAbout(about)
	if r.Valid {
		t.Fatal("expected invalid result for unknown skill level")
	}
	if !hasError(r, "about.skills[1].level", CodeInvalidFormat) {
		t.Errorf("expected indexed skill level error, got: %s", FormatValidationErrors(r.Errors))
	}

	// The sibling record is still checked and clean.
	for _, e := range r.Errors {
		if strings.HasPrefix(e.Field, "about.skills[0]") {
			t.Errorf("unexpected error on valid sibling: %s", e.Field)
		}
	}
}

func TestValidateAbout_EmptyParagraphs(t *testing.T) {
	r := ValidateAbout(map[string]any{"title": "About", "paragraphs": []any{}})

	if !hasError(r, "about.paragraphs", CodeRequiredField) {
		t.Errorf("expected REQUIRED_FIELD at about.paragraphs, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidateLessonPackage_Valid(t *testing.T) {
	pkg := map[string]any{
		"name":           "Starter Pack",
		"description":    "Four weekly lessons to build foundations.",
		"price":          140.0,
		"sessions":       4.0,
		"duration":       45.0,
		"features":       []any{"Weekly lesson"},
		"targetAudience": []any{"beginner"},
		"instruments":    []any{"piano"},
		"included":       []any{"Sheet music"},
	}

	r := ValidateLessonPackage(pkg)
	if !r.Valid {
		t.Fatalf("expected valid, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidateLessonPackage_OriginalPriceWarning(t *testing.T) {
	pkg := map[string]any{
		"name":           "Progress Pack",
		"description":    "Eight lessons with exam preparation.",
		"price":          260.0,
		"originalPrice":  200.0, // lower than price: a discount that isn't one
		"sessions":       8.0,
		"duration":       60.0,
		"features":       []any{"Weekly lesson"},
		"targetAudience": []any{"intermediate"},
		"instruments":    []any{"piano"},
		"included":       []any{"Workbook"},
	}

	r := ValidateLessonPackage(pkg)
	if !r.Valid {
		t.Fatalf("inconsistent pricing must stay a warning: %s", FormatValidationErrors(r.Errors))
	}
	if !hasWarning(r, "package.originalPrice", CodeInvalidRange) {
		t.Errorf("expected originalPrice warning, got: %s", FormatValidationErrors(r.Warnings))
	}
}

func TestValidateLessonPackage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(pkg map[string]any)
		field  string
		code   ErrorCode
	}{
		{
			name:   "zero price",
			mutate: func(p map[string]any) { p["price"] = 0.0 },
			field:  "package.price",
			code:   CodeInvalidRange,
		},
		{
			name:   "negative sessions",
			mutate: func(p map[string]any) { p["sessions"] = -1.0 },
			field:  "package.sessions",
			code:   CodeInvalidRange,
		},
		{
			name:   "unknown audience",
			mutate: func(p map[string]any) { p["targetAudience"] = []any{"virtuoso"} },
			field:  "package.targetAudience[0]",
			code:   CodeInvalidFormat,
		},
		{
			name:   "features not an array",
			mutate: func(p map[string]any) { p["features"] = "one feature" },
			field:  "package.features",
			code:   CodeInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := map[string]any{
				"name":           "Starter Pack",
				"description":    "Four weekly lessons to build foundations.",
				"price":          140.0,
				"sessions":       4.0,
				"duration":       45.0,
				"features":       []any{"Weekly lesson"},
				"targetAudience": []any{"beginner"},
				"instruments":    []any{"piano"},
				"included":       []any{"Sheet music"},
			}
			tt.mutate(pkg)

			r := ValidateLessonPackage(pkg)
			if r.Valid {
				t.Fatal("expected invalid result")
			}
			if !hasError(r, tt.field, tt.code) {
				t.Errorf("expected %s at %s, got: %s", tt.code, tt.field, FormatValidationErrors(r.Errors))
			}
		})
	}
}

func TestValidateTestimonial_RatingOutOfRange(t *testing.T) {
	tm := map[string]any{
		"studentName": "Sofia R.",
		"content":     "Elena made piano click for my daughter.",
		"rating":      6.0,
		"date":        "2026-03-14",
	}

	r := ValidateTestimonial(tm)
	if r.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasError(r, "testimonial.rating", CodeInvalidRange) {
		t.Errorf("expected rating range error, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidateTestimonial_NameFallback(t *testing.T) {
	tm := map[string]any{
		"name":    "Marco T.", // legacy key instead of studentName
		"content": "I passed my exam with distinction.",
		"rating":  5.0,
		"date":    "2026-01-20",
	}

	r := ValidateTestimonial(tm)
	if !r.Valid {
		t.Fatalf("expected valid via name fallback, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidateContactMethod(t *testing.T) {
	tests := []struct {
		name      string
		method    map[string]any
		wantValid bool
		field     string
		code      ErrorCode
	}{
		{
			name: "valid email method",
			method: map[string]any{
				"type": "email", "label": "Email",
				"value": "elena@example.com", "href": "mailto:elena@example.com",
			},
			wantValid: true,
		},
		{
			name: "email value not an address",
			method: map[string]any{
				"type": "email", "label": "Email",
				"value": "not-an-email", "href": "mailto:elena@example.com",
			},
			field: "contactMethod.value", code: CodeInvalidEmail,
		},
		{
			name: "phone value with letters",
			method: map[string]any{
				"type": "phone", "label": "Phone",
				"value": "call me", "href": "tel:+393471234567",
			},
			field: "contactMethod.value", code: CodeInvalidFormat,
		},
		{
			name: "instagram without handle",
			method: map[string]any{
				"type": "instagram", "label": "Instagram",
				"value": "elena.piano", "href": "https://instagram.com/elena.piano",
			},
			field: "contactMethod.value", code: CodeInvalidFormat,
		},
		{
			name: "unusable href",
			method: map[string]any{
				"type": "website", "label": "Site",
				"value": "example.com", "href": "example.com",
			},
			field: "contactMethod.href", code: CodeInvalidURL,
		},
		{
			name: "unknown type",
			method: map[string]any{
				"type": "pigeon", "label": "Pigeon",
				"value": "coo", "href": "https://example.com",
			},
			field: "contactMethod.type", code: CodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateContactMethod(tt.method)
			if tt.wantValid {
				if !r.Valid {
					t.Fatalf("expected valid, got: %s", FormatValidationErrors(r.Errors))
				}
				return
			}
			if r.Valid {
				t.Fatal("expected invalid result")
			}
			if !hasError(r, tt.field, tt.code) {
				t.Errorf("expected %s at %s, got: %s", tt.code, tt.field, FormatValidationErrors(r.Errors))
			}
		})
	}
}

func TestValidateContactMethod_EmailWithoutMailtoWarns(t *testing.T) {
	r := ValidateContactMethod(map[string]any{
		"type": "email", "label": "Email",
		"value": "elena@example.com", "href": "https://example.com/contact",
	})

	if !r.Valid {
		t.Fatalf("expected valid, got: %s", FormatValidationErrors(r.Errors))
	}
	if !hasWarning(r, "contactMethod.href", CodeReference) {
		t.Errorf("expected mailto advisory, got: %s", FormatValidationErrors(r.Warnings))
	}
}

func TestValidateSEO_DuplicateKeywordsWarn(t *testing.T) {
	r := ValidateSEO(map[string]any{
		"title":       "Piano Lessons with Elena",
		"description": "Personalised piano lessons for all ages and levels, from first notes to exam preparation.",
		"keywords":    []any{"piano", "lessons", "piano"},
	})

	if !r.Valid {
		t.Fatalf("duplicates must stay warnings: %s", FormatValidationErrors(r.Errors))
	}
	if !hasWarning(r, "seo.keywords[2]", CodeDuplicate) {
		t.Errorf("expected duplicate keyword warning, got: %s", FormatValidationErrors(r.Warnings))
	}
}

func TestValidateNavigation_AnchorsAllowed(t *testing.T) {
	r := ValidateNavigation(map[string]any{
		"items": []any{
			map[string]any{"label": "Home", "href": "#hero"},
			map[string]any{"label": "Blog", "href": "https://example.com/blog"},
			map[string]any{"label": "Contact", "href": "/contact"},
		},
	})

	if !r.Valid {
		t.Fatalf("expected valid, got: %s", FormatValidationErrors(r.Errors))
	}
}

func TestValidationResult_Merge_Reprefix(t *testing.T) {
	inner := NewValidationResult()
	inner.AddError("package.price", "price is required", CodeRequiredField)
	inner.AddWarning("package.originalPrice", "originalPrice should exceed price", CodeInvalidRange)

	outer := NewValidationResult()
	outer.Merge(inner, "package", "lessons.packages[2]")

	if outer.Valid {
		t.Fatal("merging errors must invalidate the target")
	}
	if !hasError(outer, "lessons.packages[2].price", CodeRequiredField) {
		t.Errorf("expected reprefixed error, got: %s", FormatValidationErrors(outer.Errors))
	}
	if !hasWarning(outer, "lessons.packages[2].originalPrice", CodeInvalidRange) {
		t.Errorf("expected reprefixed warning, got: %s", FormatValidationErrors(outer.Warnings))
	}
}

func TestFindingsFor(t *testing.T) {
	r := NewValidationResult()
	r.AddError("hero.title", "title is required", CodeRequiredField)
	r.AddError("lessons.packages[0].price", "price is required", CodeRequiredField)
	r.AddError("siteContent.contact", `section "contact" is required`, CodeRequiredField)
	r.AddWarning("hero.subtitle", "recommended length is 10-200 characters", CodeInvalidLength)

	heroErrs, heroWarns := r.FindingsFor("hero")
	if len(heroErrs) != 1 || len(heroWarns) != 1 {
		t.Errorf("hero findings = %d errors, %d warnings; want 1 and 1", len(heroErrs), len(heroWarns))
	}

	contactErrs, _ := r.FindingsFor("contact")
	if len(contactErrs) != 1 {
		t.Errorf("contact findings = %d errors, want the aggregate's missing-section error", len(contactErrs))
	}

	seoErrs, seoWarns := r.FindingsFor("seo")
	if len(seoErrs) != 0 || len(seoWarns) != 0 {
		t.Errorf("seo findings should be empty, got %d errors, %d warnings", len(seoErrs), len(seoWarns))
	}
}

func TestFormatValidationErrors(t *testing.T) {
	findings := []ValidationError{
		{Field: "hero.title", Message: "title is required"},
		{Field: "seo.description", Message: "description is required"},
	}

	got := FormatValidationErrors(findings)
	want := "hero.title: title is required\nseo.description: description is required"
	if got != want {
		t.Errorf("FormatValidationErrors() = %q, want %q", got, want)
	}

	if FormatValidationErrors(nil) != "" {
		t.Error("no findings should render as an empty string")
	}
}
