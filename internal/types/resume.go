// Package types provides type definitions for structured data used throughout the Resume Pilot system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultThemeColor is applied when a document has no theme color set.
const DefaultThemeColor = "#3b82f6"

// Resume is the root document record holding all content for one
// user-authored resume. List sections are ordered; insertion order is
// display order and entries are identified by position.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	ThemeColor string    `json:"themeColor,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Skills     []Skill      `json:"skills,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Theme returns the document's theme color, falling back to the default.
func (r *Resume) Theme() string {
	if r.ThemeColor == "" {
		return DefaultThemeColor
	}
	return r.ThemeColor
}

// Experience is one employment entry. WorkSummary is a rich-text HTML
// fragment emitted pre-sanitized by the rich-text collaborator.
type Experience struct {
	Title            string `json:"title"`
	CompanyName      string `json:"companyName"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	StartDate        string `json:"startDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	WorkSummary      string `json:"workSummary,omitempty"`
}

// GradeType enumerates the grading systems for an education entry.
type GradeType string

// Supported grade types.
const (
	GradeCGPA       GradeType = "CGPA"
	GradeGPA        GradeType = "GPA"
	GradePercentage GradeType = "Percentage"
)

// Education is one education entry.
type Education struct {
	UniversityName string    `json:"universityName"`
	Degree         string    `json:"degree,omitempty"`
	Major          string    `json:"major,omitempty"`
	Grade          string    `json:"grade,omitempty"`
	GradeType      GradeType `json:"gradeType,omitempty"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate,omitempty"`
	Description    string    `json:"description,omitempty"`
}

// Skill is one skill entry with an informal 0-5 proficiency rating.
type Skill struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Project is one project entry. TechStack is a comma-separated tag string
// and ProjectSummary is a rich-text HTML fragment.
type Project struct {
	ProjectName    string `json:"projectName"`
	TechStack      string `json:"techStack,omitempty"`
	ProjectSummary string `json:"projectSummary,omitempty"`
}

// SectionPatch is a partial update naming only the keys being changed.
// Nil fields are not merged, so patches with disjoint keys commute.
type SectionPatch struct {
	Title      *string `json:"title,omitempty"`
	ThemeColor *string `json:"themeColor,omitempty"`

	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	JobTitle  *string `json:"jobTitle,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`

	Summary    *string       `json:"summary,omitempty"`
	Experience *[]Experience `json:"experience,omitempty"`
	Education  *[]Education  `json:"education,omitempty"`
	Skills     *[]Skill      `json:"skills,omitempty"`
	Projects   *[]Project    `json:"projects,omitempty"`
}

// IsEmpty reports whether the patch names no keys at all.
func (p *SectionPatch) IsEmpty() bool {
	return p.Title == nil && p.ThemeColor == nil &&
		p.FirstName == nil && p.LastName == nil && p.JobTitle == nil &&
		p.Address == nil && p.Phone == nil && p.Email == nil &&
		p.Summary == nil && p.Experience == nil && p.Education == nil &&
		p.Skills == nil && p.Projects == nil
}

// ResumeSummary is the dashboard listing row for one resume.
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	Progress  int       `json:"progress"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SummarySuggestion is one AI-drafted professional summary at a given
// experience tier.
type SummarySuggestion struct {
	ExperienceLevel string `json:"experience_level"`
	Summary         string `json:"summary"`
}
