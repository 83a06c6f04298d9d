// Package types provides type definitions for structured data used throughout the CareerPilot system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillCategory classifies a skill on the profile.
type SkillCategory string

// Skill categories
const (
	CategoryTechnical    SkillCategory = "Technical"
	CategoryTools        SkillCategory = "Tools"
	CategorySoft         SkillCategory = "Soft"
	CategoryDomain       SkillCategory = "Domain"
	CategorySystemDesign SkillCategory = "System Design"
)

// SkillLevel is a self-reported proficiency level.
type SkillLevel string

// Skill proficiency levels
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// Skill is a single entry in the profile's skill set. Names are unique
// within the set unless the duplicate policy allows otherwise.
type Skill struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	Level    SkillLevel    `json:"level"`
	Verified bool          `json:"verified"`
	Source   string        `json:"source,omitempty"` // "manual", "resume", "generated"
}

// ExperienceEntry is one employment history entry.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"` // empty means current
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education history entry.
type EducationEntry struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
	Year   string `json:"year,omitempty"`
}

// Certification is a professional certification entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
}

// Project is a portfolio project entry.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// UserProfile is the canonical user profile: identity fields, derived
// scores, and the five ordered sub-collections. Sub-collection updates are
// wholesale replacements; there is no field-level merge (see ProfileUpdate).
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CurrentRole string    `json:"current_role,omitempty"`
	TargetRole  string    `json:"target_role,omitempty"`
	Location    string    `json:"location,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Avatar      string    `json:"avatar,omitempty"` // data-URL encoded image

	// Derived, recomputed from the profile and task list; stored for
	// display only, never authoritative.
	ProfileStrength int `json:"profile_strength"`
	ReadinessScore  int `json:"readiness_score"`

	Skills         []Skill           `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial profile update. Nil fields are left untouched;
// non-nil sub-collections replace the stored collection wholesale.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	CurrentRole *string `json:"current_role,omitempty"`
	TargetRole  *string `json:"target_role,omitempty"`
	Location    *string `json:"location,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`

	ProfileStrength *int `json:"profile_strength,omitempty"`
	ReadinessScore  *int `json:"readiness_score,omitempty"`

	Skills         []Skill           `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty"`
	Projects       []Project         `json:"projects,omitempty"`
}
