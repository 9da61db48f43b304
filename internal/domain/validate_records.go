package domain

import (
	"fmt"
	"strings"
)

// ValidateLessonPackage validates a single lesson package value.
// Field paths use the canonical "package." prefix; the aggregate validator
// rewrites them to the package's position in the document.
func ValidateLessonPackage(v any) ValidationResult {
	r := NewValidationResult()

	pkg, ok := asObject(v)
	if !ok {
		r.AddError("package", "lesson package must be an object", CodeInvalidType)
		return r
	}

	requireString(&r, pkg, "package.name", "name")
	if description, ok := requireString(&r, pkg, "package.description", "description"); ok {
		warnLength(&r, "package.description", description, 10, 500)
	}

	price, pricePresent, priceIsNumber := getNumber(pkg, "price")
	switch {
	case !pricePresent:
		r.AddError("package.price", "price is required", CodeRequiredField)
	case !priceIsNumber:
		r.AddError("package.price", "price must be a number", CodeInvalidType)
	case !IsPositiveNumber(price):
		r.AddError("package.price", "price must be greater than zero", CodeInvalidRange)
	}

	if original, present, isNumber := getNumber(pkg, "originalPrice"); present {
		switch {
		case !isNumber:
			r.AddError("package.originalPrice", "originalPrice must be a number", CodeInvalidType)
		case !IsPositiveNumber(original):
			r.AddError("package.originalPrice", "originalPrice must be greater than zero", CodeInvalidRange)
		case pricePresent && priceIsNumber && original <= price:
			// Soft logical inconsistency: a discount that isn't one.
			r.AddWarning("package.originalPrice",
				"originalPrice should exceed price", CodeInvalidRange)
		}
	}

	sessions, present, isNumber := getNumber(pkg, "sessions")
	switch {
	case !present:
		r.AddError("package.sessions", "sessions is required", CodeRequiredField)
	case !isNumber:
		r.AddError("package.sessions", "sessions must be a number", CodeInvalidType)
	case !IsNonNegativeNumber(sessions):
		r.AddError("package.sessions", "sessions must not be negative (0 means unlimited)", CodeInvalidRange)
	}

	duration, present, isNumber := getNumber(pkg, "duration")
	switch {
	case !present:
		r.AddError("package.duration", "duration is required", CodeRequiredField)
	case !isNumber:
		r.AddError("package.duration", "duration must be a number", CodeInvalidType)
	case !IsPositiveNumber(duration):
		r.AddError("package.duration", "duration must be greater than zero minutes", CodeInvalidRange)
	}

	requireStringList(&r, pkg, "package.features", "features", nil)
	requireStringList(&r, pkg, "package.targetAudience", "targetAudience", func(field, value string) {
		switch AudienceLevel(value) {
		case AudienceBeginner, AudienceIntermediate, AudienceAdvanced:
		default:
			r.AddError(field, "audience must be one of: beginner, intermediate, advanced", CodeInvalidFormat)
		}
	})
	requireStringList(&r, pkg, "package.instruments", "instruments", nil)
	requireStringList(&r, pkg, "package.included", "included", nil)

	if _, present, isBool := getBool(pkg, "popular"); present && !isBool {
		r.AddError("package.popular", "popular must be a boolean", CodeInvalidType)
	}

	return r
}

// requireStringList validates a required non-empty array of non-empty
// strings, flagging duplicate entries as warnings. check, when non-nil,
// runs per element after the string checks.
func requireStringList(r *ValidationResult, obj map[string]any, field, key string, check func(field, value string)) {
	items, present, isSlice := getSlice(obj, key)
	switch {
	case !present:
		r.AddError(field, fmt.Sprintf("%s is required", key), CodeRequiredField)
		return
	case !isSlice:
		r.AddError(field, fmt.Sprintf("%s must be an array", key), CodeInvalidType)
		return
	case len(items) == 0:
		r.AddError(field, fmt.Sprintf("%s must not be empty", key), CodeRequiredField)
		return
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		elemField := fmt.Sprintf("%s[%d]", field, i)
		value, isString := item.(string)
		if !isString {
			r.AddError(elemField, "entry must be a string", CodeInvalidType)
			continue
		}
		if !IsNonEmptyString(value) {
			r.AddError(elemField, "entry must not be empty", CodeRequiredField)
			continue
		}
		if seen[value] {
			r.AddWarning(elemField, "duplicate entry", CodeDuplicate)
		}
		seen[value] = true
		if check != nil {
			check(elemField, value)
		}
	}
}

// ValidateTestimonial validates a single testimonial value.
// Field paths use the canonical "testimonial." prefix.
func ValidateTestimonial(v any) ValidationResult {
	r := NewValidationResult()

	tm, ok := asObject(v)
	if !ok {
		r.AddError("testimonial", "testimonial must be an object", CodeInvalidType)
		return r
	}

	// The author field has appeared under both names in bundles; accept
	// "studentName" with "name" as a fallback.
	nameKey := "studentName"
	if _, present, _ := getString(tm, nameKey); !present {
		if _, fallbackPresent, _ := getString(tm, "name"); fallbackPresent {
			nameKey = "name"
		}
	}
	requireString(&r, tm, "testimonial.studentName", nameKey)

	if content, ok := requireString(&r, tm, "testimonial.content", "content"); ok {
		warnLength(&r, "testimonial.content", content, 10, 1000)
	}

	rating, present, isNumber := getNumber(tm, "rating")
	switch {
	case !present:
		r.AddError("testimonial.rating", "rating is required", CodeRequiredField)
	case !isNumber:
		r.AddError("testimonial.rating", "rating must be a number", CodeInvalidType)
	case !IsValidRating(rating):
		r.AddError("testimonial.rating", "rating must be an integer between 1 and 5", CodeInvalidRange)
	}

	if date, ok := requireString(&r, tm, "testimonial.date", "date"); ok {
		if !IsValidDate(date) {
			r.AddError("testimonial.date", "date is not parseable", CodeInvalidDate)
		}
	}

	for _, key := range []string{"featured", "verified"} {
		if _, present, isBool := getBool(tm, key); present && !isBool {
			r.AddError("testimonial."+key, key+" must be a boolean", CodeInvalidType)
		}
	}

	if level, ok := optionalString(&r, tm, "testimonial.level", "level"); ok && level != "" {
		switch AudienceLevel(level) {
		case AudienceBeginner, AudienceIntermediate, AudienceAdvanced:
		default:
			r.AddError("testimonial.level",
				"level must be one of: beginner, intermediate, advanced", CodeInvalidFormat)
		}
	}

	if age, present, isNumber := getNumber(tm, "age"); present {
		if !isNumber {
			r.AddError("testimonial.age", "age must be a number", CodeInvalidType)
		} else if !IsNonNegativeNumber(age) {
			r.AddError("testimonial.age", "age must not be negative", CodeInvalidRange)
		}
	}

	if videoURL, ok := optionalString(&r, tm, "testimonial.videoUrl", "videoUrl"); ok && videoURL != "" {
		if !IsValidURL(videoURL) {
			r.AddError("testimonial.videoUrl", "videoUrl must be a valid URL", CodeInvalidURL)
		}
	}

	optionalString(&r, tm, "testimonial.instrument", "instrument")

	return r
}

// ValidateContactMethod validates a single contact method value.
// Field paths use the canonical "contactMethod." prefix. The value format
// depends on the contact type.
func ValidateContactMethod(v any) ValidationResult {
	r := NewValidationResult()

	method, ok := asObject(v)
	if !ok {
		r.AddError("contactMethod", "contact method must be an object", CodeInvalidType)
		return r
	}

	contactType, typeOK := requireString(&r, method, "contactMethod.type", "type")
	if typeOK {
		switch ContactType(contactType) {
		case ContactEmail, ContactPhone, ContactInstagram, ContactWhatsApp,
			ContactFacebook, ContactLinkedIn, ContactWebsite:
		default:
			r.AddError("contactMethod.type",
				"type must be one of: email, phone, instagram, whatsapp, facebook, linkedin, website",
				CodeInvalidFormat)
			typeOK = false
		}
	}

	requireString(&r, method, "contactMethod.label", "label")

	if value, ok := requireString(&r, method, "contactMethod.value", "value"); ok && typeOK {
		switch ContactType(contactType) {
		case ContactEmail:
			if !IsValidEmail(value) {
				r.AddError("contactMethod.value", "value must be a valid email address", CodeInvalidEmail)
			}
		case ContactPhone, ContactWhatsApp:
			if !IsValidPhone(value) {
				r.AddError("contactMethod.value", "value must be a phone number", CodeInvalidFormat)
			}
		case ContactInstagram:
			if !IsValidHandle(value) {
				r.AddError("contactMethod.value", "value must be an @-prefixed handle", CodeInvalidFormat)
			}
		}
	}

	if href, ok := requireString(&r, method, "contactMethod.href", "href"); ok {
		if !IsValidHref(href) {
			r.AddError("contactMethod.href",
				"href must be a URL or a mailto:/tel: reference", CodeInvalidURL)
		} else if typeOK {
			// Cross-field consistency: an email method should link via mailto.
			if ContactType(contactType) == ContactEmail && !strings.HasPrefix(href, "mailto:") {
				r.AddWarning("contactMethod.href", "email methods usually use a mailto: href", CodeReference)
			}
		}
	}

	if _, present, isBool := getBool(method, "primary"); present && !isBool {
		r.AddError("contactMethod.primary", "primary must be a boolean", CodeInvalidType)
	}

	return r
}
