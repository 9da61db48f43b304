package domain

import (
	"fmt"
)

// Entity validators check untyped values (parsed JSON) against the content
// rules and return a ValidationResult. They never return Go errors and
// never panic: content arrives as parsed JSON with no static guarantee, so
// nothing about the input shape is assumed until validation succeeds.

// asObject reports whether v is a JSON object.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

// getString fetches obj[key] as a string.
// present is true when the key exists at all.
func getString(obj map[string]any, key string) (value string, present, isString bool) {
	raw, present := obj[key]
	if !present {
		return "", false, false
	}
	value, isString = raw.(string)
	return value, true, isString
}

// getNumber fetches obj[key] as a float64 (the JSON number type).
func getNumber(obj map[string]any, key string) (value float64, present, isNumber bool) {
	raw, present := obj[key]
	if !present {
		return 0, false, false
	}
	value, isNumber = raw.(float64)
	return value, true, isNumber
}

// getBool fetches obj[key] as a bool.
func getBool(obj map[string]any, key string) (value bool, present, isBool bool) {
	raw, present := obj[key]
	if !present {
		return false, false, false
	}
	value, isBool = raw.(bool)
	return value, true, isBool
}

// getSlice fetches obj[key] as a JSON array.
func getSlice(obj map[string]any, key string) (items []any, present, isSlice bool) {
	raw, present := obj[key]
	if !present {
		return nil, false, false
	}
	items, isSlice = raw.([]any)
	return items, true, isSlice
}

// requireString validates a required non-empty string field, recording
// the appropriate error. Returns the value and whether it passed.
func requireString(r *ValidationResult, obj map[string]any, field, key string) (string, bool) {
	value, present, isString := getString(obj, key)
	if !present {
		r.AddError(field, fmt.Sprintf("%s is required", key), CodeRequiredField)
		return "", false
	}
	if !isString {
		r.AddError(field, fmt.Sprintf("%s must be a string", key), CodeInvalidType)
		return "", false
	}
	if !IsNonEmptyString(value) {
		r.AddError(field, fmt.Sprintf("%s must not be empty", key), CodeRequiredField)
		return "", false
	}
	return value, true
}

// optionalString validates an optional string field: absent is fine,
// present-but-not-a-string is an error.
func optionalString(r *ValidationResult, obj map[string]any, field, key string) (string, bool) {
	value, present, isString := getString(obj, key)
	if !present {
		return "", false
	}
	if !isString {
		r.AddError(field, fmt.Sprintf("%s must be a string", key), CodeInvalidType)
		return "", false
	}
	return value, true
}

// warnLength records an advisory finding when the trimmed length of value
// falls outside the recommended [min, max] range.
func warnLength(r *ValidationResult, field, value string, min, max int) {
	if !IsValidLength(value, min, max) {
		r.AddWarning(field,
			fmt.Sprintf("recommended length is %d-%d characters", min, max),
			CodeInvalidLength)
	}
}

// optionalCounter validates an optional non-negative integer counter.
func optionalCounter(r *ValidationResult, obj map[string]any, field, key string) {
	value, present, isNumber := getNumber(obj, key)
	if !present {
		return
	}
	if !isNumber {
		r.AddError(field, fmt.Sprintf("%s must be a number", key), CodeInvalidType)
		return
	}
	if !IsNonNegativeNumber(value) {
		r.AddError(field, fmt.Sprintf("%s must not be negative", key), CodeInvalidRange)
	}
}

// ValidateHero validates a hero section value.
func ValidateHero(v any) ValidationResult {
	r := NewValidationResult()

	hero, ok := asObject(v)
	if !ok {
		r.AddError("hero", "hero content must be an object", CodeInvalidType)
		return r
	}

	if title, ok := requireString(&r, hero, "hero.title", "title"); ok {
		warnLength(&r, "hero.title", title, 5, 100)
	}
	if subtitle, ok := requireString(&r, hero, "hero.subtitle", "subtitle"); ok {
		warnLength(&r, "hero.subtitle", subtitle, 10, 200)
	}
	requireString(&r, hero, "hero.ctaText", "ctaText")

	if handle, ok := requireString(&r, hero, "hero.instagramHandle", "instagramHandle"); ok {
		if !IsValidHandle(handle) {
			r.AddError("hero.instagramHandle",
				"instagramHandle must be @-prefixed with 2-30 alphanumeric, underscore, or dot characters",
				CodeInvalidFormat)
		}
	}
	if link, ok := requireString(&r, hero, "hero.instagramUrl", "instagramUrl"); ok {
		if !IsValidURL(link) {
			r.AddError("hero.instagramUrl", "instagramUrl must be a valid URL", CodeInvalidURL)
		}
	}

	optionalString(&r, hero, "hero.description", "description")
	optionalCounter(&r, hero, "hero.studentsCount", "studentsCount")
	optionalCounter(&r, hero, "hero.yearsExperience", "yearsExperience")
	optionalCounter(&r, hero, "hero.successStories", "successStories")

	return r
}

// ValidateAbout validates an about section value, including its skill and
// achievement records. Each array element is validated independently with
// an indexed field path; one bad element does not stop its siblings.
func ValidateAbout(v any) ValidationResult {
	r := NewValidationResult()

	about, ok := asObject(v)
	if !ok {
		r.AddError("about", "about content must be an object", CodeInvalidType)
		return r
	}

	requireString(&r, about, "about.title", "title")

	paragraphs, present, isSlice := getSlice(about, "paragraphs")
	switch {
	case !present:
		r.AddError("about.paragraphs", "paragraphs is required", CodeRequiredField)
	case !isSlice:
		r.AddError("about.paragraphs", "paragraphs must be an array", CodeInvalidType)
	case !IsNonEmptySlice(paragraphs):
		r.AddError("about.paragraphs", "paragraphs must not be empty", CodeRequiredField)
	default:
		for i, p := range paragraphs {
			field := fmt.Sprintf("about.paragraphs[%d]", i)
			text, isString := p.(string)
			if !isString {
				r.AddError(field, "paragraph must be a string", CodeInvalidType)
				continue
			}
			if !IsNonEmptyString(text) {
				r.AddError(field, "paragraph must not be empty", CodeRequiredField)
			}
		}
	}

	if skills, present, isSlice := getSlice(about, "skills"); present {
		if !isSlice {
			r.AddError("about.skills", "skills must be an array", CodeInvalidType)
		} else {
			for i, s := range skills {
				validateSkill(&r, fmt.Sprintf("about.skills[%d]", i), s)
			}
		}
	}

	if achievements, present, isSlice := getSlice(about, "achievements"); present {
		if !isSlice {
			r.AddError("about.achievements", "achievements must be an array", CodeInvalidType)
		} else {
			for i, a := range achievements {
				validateAchievement(&r, fmt.Sprintf("about.achievements[%d]", i), a)
			}
		}
	}

	return r
}

func validateSkill(r *ValidationResult, field string, v any) {
	skill, ok := asObject(v)
	if !ok {
		r.AddError(field, "skill must be an object", CodeInvalidType)
		return
	}

	requireString(r, skill, field+".name", "name")

	if level, ok := requireString(r, skill, field+".level", "level"); ok {
		switch SkillLevel(level) {
		case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		default:
			r.AddError(field+".level",
				"level must be one of: beginner, intermediate, advanced, expert",
				CodeInvalidFormat)
		}
	}

	years, present, isNumber := getNumber(skill, "yearsExperience")
	switch {
	case !present:
		r.AddError(field+".yearsExperience", "yearsExperience is required", CodeRequiredField)
	case !isNumber:
		r.AddError(field+".yearsExperience", "yearsExperience must be a number", CodeInvalidType)
	case !IsNonNegativeNumber(years):
		r.AddError(field+".yearsExperience", "yearsExperience must not be negative", CodeInvalidRange)
	}

	optionalString(r, skill, field+".description", "description")
}

func validateAchievement(r *ValidationResult, field string, v any) {
	achievement, ok := asObject(v)
	if !ok {
		r.AddError(field, "achievement must be an object", CodeInvalidType)
		return
	}

	requireString(r, achievement, field+".id", "id")
	requireString(r, achievement, field+".title", "title")
	requireString(r, achievement, field+".description", "description")

	if date, ok := requireString(r, achievement, field+".date", "date"); ok {
		if !IsValidDate(date) {
			r.AddError(field+".date", "date is not parseable", CodeInvalidDate)
		}
	}

	if category, ok := requireString(r, achievement, field+".category", "category"); ok {
		switch AchievementCategory(category) {
		case AchievementEducation, AchievementPerformance, AchievementTeaching, AchievementRecognition:
		default:
			r.AddError(field+".category",
				"category must be one of: education, performance, teaching, recognition",
				CodeInvalidFormat)
		}
	}

	if link, ok := optionalString(r, achievement, field+".link", "link"); ok && link != "" {
		if !IsValidURL(link) {
			r.AddError(field+".link", "link must be a valid URL", CodeInvalidURL)
		}
	}
}

// ValidateApproach validates the teaching approach section.
func ValidateApproach(v any) ValidationResult {
	r := NewValidationResult()

	approach, ok := asObject(v)
	if !ok {
		r.AddError("approach", "approach content must be an object", CodeInvalidType)
		return r
	}

	requireString(&r, approach, "approach.title", "title")
	optionalString(&r, approach, "approach.description", "description")

	if principles, present, isSlice := getSlice(approach, "principles"); present {
		if !isSlice {
			r.AddError("approach.principles", "principles must be an array", CodeInvalidType)
		} else {
			for i, p := range principles {
				field := fmt.Sprintf("approach.principles[%d]", i)
				text, isString := p.(string)
				if !isString {
					r.AddError(field, "principle must be a string", CodeInvalidType)
					continue
				}
				if !IsNonEmptyString(text) {
					r.AddError(field, "principle must not be empty", CodeRequiredField)
				}
			}
		}
	}

	return r
}

// ValidateSEO validates the SEO metadata section.
func ValidateSEO(v any) ValidationResult {
	r := NewValidationResult()

	seo, ok := asObject(v)
	if !ok {
		r.AddError("seo", "seo content must be an object", CodeInvalidType)
		return r
	}

	if title, ok := requireString(&r, seo, "seo.title", "title"); ok {
		warnLength(&r, "seo.title", title, 10, 70)
	}
	if description, ok := requireString(&r, seo, "seo.description", "description"); ok {
		warnLength(&r, "seo.description", description, 50, 160)
	}

	if keywords, present, isSlice := getSlice(seo, "keywords"); present {
		if !isSlice {
			r.AddError("seo.keywords", "keywords must be an array", CodeInvalidType)
		} else {
			seen := make(map[string]bool, len(keywords))
			for i, k := range keywords {
				field := fmt.Sprintf("seo.keywords[%d]", i)
				word, isString := k.(string)
				if !isString {
					r.AddError(field, "keyword must be a string", CodeInvalidType)
					continue
				}
				if seen[word] {
					r.AddWarning(field, "duplicate keyword", CodeDuplicate)
				}
				seen[word] = true
			}
		}
	}

	if link, ok := optionalString(&r, seo, "seo.siteUrl", "siteUrl"); ok && link != "" {
		if !IsValidURL(link) {
			r.AddError("seo.siteUrl", "siteUrl must be a valid URL", CodeInvalidURL)
		}
	}

	return r
}

// ValidateNavigation validates the optional navigation section.
func ValidateNavigation(v any) ValidationResult {
	r := NewValidationResult()

	nav, ok := asObject(v)
	if !ok {
		r.AddError("navigation", "navigation content must be an object", CodeInvalidType)
		return r
	}

	items, present, isSlice := getSlice(nav, "items")
	switch {
	case !present:
		r.AddError("navigation.items", "items is required", CodeRequiredField)
	case !isSlice:
		r.AddError("navigation.items", "items must be an array", CodeInvalidType)
	case !IsNonEmptySlice(items):
		r.AddError("navigation.items", "items must not be empty", CodeRequiredField)
	default:
		for i, item := range items {
			field := fmt.Sprintf("navigation.items[%d]", i)
			entry, isObject := asObject(item)
			if !isObject {
				r.AddError(field, "item must be an object", CodeInvalidType)
				continue
			}
			requireString(&r, entry, field+".label", "label")
			if href, ok := requireString(&r, entry, field+".href", "href"); ok {
				// Navigation targets may be in-page anchors.
				if href[0] != '#' && href[0] != '/' && !IsValidURL(href) {
					r.AddError(field+".href", "href must be a URL, path, or anchor", CodeInvalidURL)
				}
			}
		}
	}

	return r
}
