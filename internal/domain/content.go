// Package domain contains the core content model and validation logic.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// SkillLevel represents a proficiency level for a skill record.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// AudienceLevel represents a student level a lesson package targets.
type AudienceLevel string

const (
	AudienceBeginner     AudienceLevel = "beginner"
	AudienceIntermediate AudienceLevel = "intermediate"
	AudienceAdvanced     AudienceLevel = "advanced"
)

// AchievementCategory classifies an achievement record.
type AchievementCategory string

const (
	AchievementEducation   AchievementCategory = "education"
	AchievementPerformance AchievementCategory = "performance"
	AchievementTeaching    AchievementCategory = "teaching"
	AchievementRecognition AchievementCategory = "recognition"
)

// ContactType identifies the channel of a contact method.
type ContactType string

const (
	ContactEmail     ContactType = "email"
	ContactPhone     ContactType = "phone"
	ContactInstagram ContactType = "instagram"
	ContactWhatsApp  ContactType = "whatsapp"
	ContactFacebook  ContactType = "facebook"
	ContactLinkedIn  ContactType = "linkedin"
	ContactWebsite   ContactType = "website"
)

// ContentMeta is the base shape shared by content bundles.
// Version and LastUpdated are cache/staleness bookkeeping only; there is no
// conflict resolution because no concurrent writers exist.
type ContentMeta struct {
	ID          string         `json:"id,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
	Version     string         `json:"version,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// HeroContent is the above-the-fold copy of the site.
type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description,omitempty"`
	CTAText         string `json:"ctaText"`
	InstagramHandle string `json:"instagramHandle"`
	InstagramURL    string `json:"instagramUrl"`

	// Social-proof counters, all optional and non-negative.
	StudentsCount   int `json:"studentsCount,omitempty"`
	YearsExperience int `json:"yearsExperience,omitempty"`
	SuccessStories  int `json:"successStories,omitempty"`
}

// Skill is a single skill record in the about section.
type Skill struct {
	Name            string     `json:"name"`
	Level           SkillLevel `json:"level"`
	YearsExperience int        `json:"yearsExperience"`
	Description     string     `json:"description,omitempty"`
}

// Achievement is a dated accomplishment in the about section.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Date        string              `json:"date"`
	Category    AchievementCategory `json:"category"`
	Link        string              `json:"link,omitempty"`
}

// AboutContent is the biography section.
type AboutContent struct {
	Title        string        `json:"title"`
	Paragraphs   []string      `json:"paragraphs"`
	Skills       []Skill       `json:"skills,omitempty"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// ApproachContent describes the teaching philosophy section.
type ApproachContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Principles  []string `json:"principles,omitempty"`
}

// LessonPackage is a purchasable lesson bundle.
type LessonPackage struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`

	// OriginalPrice is the pre-discount price; zero means not set.
	// It should exceed Price, but a violation is only a warning.
	OriginalPrice float64 `json:"originalPrice,omitempty"`

	Sessions       int             `json:"sessions"` // 0 means unlimited
	Duration       int             `json:"duration"` // minutes per session
	Features       []string        `json:"features"`
	Popular        bool            `json:"popular"`
	TargetAudience []AudienceLevel `json:"targetAudience"`
	Instruments    []string        `json:"instruments"`
	Included       []string        `json:"included"`
}

// LessonsContent is the lessons section holding all packages.
type LessonsContent struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle,omitempty"`
	Packages []LessonPackage `json:"packages"`
}

// Testimonial is a single student review.
type Testimonial struct {
	ID          string `json:"id,omitempty"`
	StudentName string `json:"studentName"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"` // integer 1..5
	Date        string `json:"date"`
	Featured    bool   `json:"featured"`
	Verified    bool   `json:"verified"`
	Instrument  string `json:"instrument,omitempty"`
	Level       string `json:"level,omitempty"`
	Age         int    `json:"age,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// CommunityContent is the testimonials section.
type CommunityContent struct {
	Title        string        `json:"title"`
	Testimonials []Testimonial `json:"testimonials"`
}

// ContactMethod is one way to reach the teacher.
type ContactMethod struct {
	Type    ContactType `json:"type"`
	Label   string      `json:"label"`
	Value   string      `json:"value"`
	Href    string      `json:"href"`
	Primary bool        `json:"primary"`
}

// ContactContent is the contact section.
type ContactContent struct {
	Title   string          `json:"title"`
	Methods []ContactMethod `json:"methods"`
}

// SEOContent holds page metadata.
type SEOContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	SiteURL     string   `json:"siteUrl,omitempty"`
}

// NavigationItem is a single navigation link.
type NavigationItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NavigationContent is the optional navigation section.
type NavigationContent struct {
	Items []NavigationItem `json:"items"`
}

// SiteContent is the aggregate root for everything the site renders.
// The aggregate is valid only if every required section is present and
// independently valid.
type SiteContent struct {
	ContentMeta

	Hero       HeroContent        `json:"hero"`
	About      AboutContent       `json:"about"`
	Approach   ApproachContent    `json:"approach"`
	Lessons    LessonsContent     `json:"lessons"`
	Community  CommunityContent   `json:"community"`
	Contact    ContactContent     `json:"contact"`
	SEO        SEOContent         `json:"seo"`
	Navigation *NavigationContent `json:"navigation,omitempty"`
}

// RequiredSections lists the sections the aggregate validator demands,
// in document order.
var RequiredSections = []string{
	"hero", "about", "approach", "lessons", "community", "contact", "seo",
}

// Section projects one named section out of the aggregate.
// The second return value is false for unknown section names.
func (s *SiteContent) Section(name string) (any, bool) {
	switch name {
	case "hero":
		return &s.Hero, true
	case "about":
		return &s.About, true
	case "approach":
		return &s.Approach, true
	case "lessons":
		return &s.Lessons, true
	case "community":
		return &s.Community, true
	case "contact":
		return &s.Contact, true
	case "seo":
		return &s.SEO, true
	case "navigation":
		return s.Navigation, s.Navigation != nil
	default:
		return nil, false
	}
}

// contentDateLayouts are the accepted date formats, tried in order.
var contentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"January 2, 2006",
	"January 2006",
}

// ParseContentDate parses a content date string.
// Returns the zero time and false when no accepted layout matches.
func ParseContentDate(value string) (time.Time, bool) {
	for _, layout := range contentDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValid reports whether the package satisfies its own hard invariants.
// Derived views use this to silently drop broken records instead of
// failing the whole list.
func (p *LessonPackage) IsValid() bool {
	if !IsNonEmptyString(p.Name) || !IsNonEmptyString(p.Description) {
		return false
	}
	if p.Price <= 0 || p.Sessions < 0 || p.Duration <= 0 {
		return false
	}
	if len(p.Features) == 0 || len(p.Instruments) == 0 || len(p.Included) == 0 {
		return false
	}
	if len(p.TargetAudience) == 0 {
		return false
	}
	for _, a := range p.TargetAudience {
		switch a {
		case AudienceBeginner, AudienceIntermediate, AudienceAdvanced:
		default:
			return false
		}
	}
	return true
}

// IsValid reports whether the testimonial satisfies its own hard invariants.
func (t *Testimonial) IsValid() bool {
	if !IsNonEmptyString(t.StudentName) || !IsNonEmptyString(t.Content) {
		return false
	}
	if !IsValidRating(float64(t.Rating)) {
		return false
	}
	if !IsValidDate(t.Date) {
		return false
	}
	if t.VideoURL != "" && !IsValidURL(t.VideoURL) {
		return false
	}
	return true
}

// ParsedDate returns the testimonial date as a time, or the zero time when
// unparseable. Used for recency ordering.
func (t *Testimonial) ParsedDate() time.Time {
	parsed, _ := ParseContentDate(t.Date)
	return parsed
}
