// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CVData is the root aggregate filled in by the form layer.
// The renderer only reads it; every list entity is owned by the form.
type CVData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Languages      []Language       `json:"languages"`
	Certifications []Certification  `json:"certifications"`
	References     []Reference      `json:"references"`
}

// PersonalInfo holds the contact block. PhotoURL may be empty, in which case
// the renderer substitutes a placeholder image.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Website  string `json:"website"`
	PhotoURL string `json:"photoUrl"`
}

// WorkExperience is a single position. When Current is true EndDate is ignored.
type WorkExperience struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
}

// Education is a single degree or course of study
type Education struct {
	ID           string `json:"id"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Institution  string `json:"institution"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Grade        string `json:"grade,omitempty"`
}

// SkillLevel is the self-assessed proficiency of a skill
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Skill is a named skill with a proficiency level
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// LanguageProficiency is the spoken-language proficiency scale
type LanguageProficiency string

const (
	ProficiencyBasic          LanguageProficiency = "Basic"
	ProficiencyConversational LanguageProficiency = "Conversational"
	ProficiencyFluent         LanguageProficiency = "Fluent"
	ProficiencyNative         LanguageProficiency = "Native"
)

// Language is a spoken language entry
type Language struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

// Certification is a professional certification
type Certification struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Issuer     string `json:"issuer"`
	Date       string `json:"date"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

// Reference is a professional reference contact
type Reference struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// HasContact reports whether any contact line of the personal info is filled in.
func (p PersonalInfo) HasContact() bool {
	return !Blank(p.Email) || !Blank(p.Phone) || !Blank(p.Address) || !Blank(p.Website)
}

// Clone returns a deep copy so callers can hand out snapshots without sharing slices.
func (d CVData) Clone() CVData {
	out := d
	if d.WorkExperience != nil {
		out.WorkExperience = make([]WorkExperience, len(d.WorkExperience))
		for i, exp := range d.WorkExperience {
			exp.Responsibilities = append([]string(nil), exp.Responsibilities...)
			out.WorkExperience[i] = exp
		}
	}
	out.Education = append([]Education(nil), d.Education...)
	out.Skills = append([]Skill(nil), d.Skills...)
	out.Languages = append([]Language(nil), d.Languages...)
	out.Certifications = append([]Certification(nil), d.Certifications...)
	out.References = append([]Reference(nil), d.References...)
	return out
}
