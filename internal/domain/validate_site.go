package domain

import (
	"fmt"
)

// ValidateSiteContent validates a full site content value.
//
// A missing required section yields one REQUIRED_FIELD error and skips that
// section's detail checks; a present-but-invalid section contributes its own
// prefixed findings. Validation always runs to completion so the caller sees
// the full set of problems in one pass.
func ValidateSiteContent(v any) ValidationResult {
	r := NewValidationResult()

	site, ok := asObject(v)
	if !ok {
		r.AddError("siteContent", "site content must be an object", CodeInvalidType)
		return r
	}

	present := make(map[string]any, len(RequiredSections))
	for _, name := range RequiredSections {
		section, exists := site[name]
		if !exists || section == nil {
			r.AddError("siteContent."+name, fmt.Sprintf("section %q is required", name), CodeRequiredField)
			continue
		}
		present[name] = section
	}

	if hero, ok := present["hero"]; ok {
		r.Merge(ValidateHero(hero), "", "")
	}
	if about, ok := present["about"]; ok {
		r.Merge(ValidateAbout(about), "", "")
	}
	if approach, ok := present["approach"]; ok {
		r.Merge(ValidateApproach(approach), "", "")
	}
	if lessons, ok := present["lessons"]; ok {
		validateLessonsSection(&r, lessons)
	}
	if community, ok := present["community"]; ok {
		validateCommunitySection(&r, community)
	}
	if contact, ok := present["contact"]; ok {
		validateContactSection(&r, contact)
	}
	if seo, ok := present["seo"]; ok {
		r.Merge(ValidateSEO(seo), "", "")
	}

	// Navigation is optional but validated when present.
	if nav, exists := site["navigation"]; exists && nav != nil {
		r.Merge(ValidateNavigation(nav), "", "")
	}

	return r
}

func validateLessonsSection(r *ValidationResult, v any) {
	lessons, ok := asObject(v)
	if !ok {
		r.AddError("lessons", "lessons content must be an object", CodeInvalidType)
		return
	}

	requireString(r, lessons, "lessons.title", "title")

	packages, present, isSlice := getSlice(lessons, "packages")
	switch {
	case !present:
		r.AddError("lessons.packages", "packages is required", CodeRequiredField)
	case !isSlice:
		r.AddError("lessons.packages", "packages must be an array", CodeInvalidType)
	case len(packages) == 0:
		r.AddError("lessons.packages", "packages must not be empty", CodeRequiredField)
	default:
		for i, pkg := range packages {
			r.Merge(ValidateLessonPackage(pkg),
				"package", fmt.Sprintf("lessons.packages[%d]", i))
		}
	}
}

func validateCommunitySection(r *ValidationResult, v any) {
	community, ok := asObject(v)
	if !ok {
		r.AddError("community", "community content must be an object", CodeInvalidType)
		return
	}

	requireString(r, community, "community.title", "title")

	testimonials, present, isSlice := getSlice(community, "testimonials")
	switch {
	case !present:
		r.AddError("community.testimonials", "testimonials is required", CodeRequiredField)
	case !isSlice:
		r.AddError("community.testimonials", "testimonials must be an array", CodeInvalidType)
	default:
		for i, tm := range testimonials {
			r.Merge(ValidateTestimonial(tm),
				"testimonial", fmt.Sprintf("community.testimonials[%d]", i))
		}
	}
}

func validateContactSection(r *ValidationResult, v any) {
	contact, ok := asObject(v)
	if !ok {
		r.AddError("contact", "contact content must be an object", CodeInvalidType)
		return
	}

	requireString(r, contact, "contact.title", "title")

	methods, present, isSlice := getSlice(contact, "methods")
	switch {
	case !present:
		r.AddError("contact.methods", "methods is required", CodeRequiredField)
	case !isSlice:
		r.AddError("contact.methods", "methods must be an array", CodeInvalidType)
	case len(methods) == 0:
		r.AddError("contact.methods", "methods must not be empty", CodeRequiredField)
	default:
		primaries := 0
		for i, m := range methods {
			r.Merge(ValidateContactMethod(m),
				"contactMethod", fmt.Sprintf("contact.methods[%d]", i))
			if method, ok := asObject(m); ok {
				if primary, _, isBool := getBool(method, "primary"); isBool && primary {
					primaries++
				}
			}
		}
		if primaries > 1 {
			r.AddWarning("contact.methods", "more than one method is marked primary", CodeDuplicate)
		}
	}
}
