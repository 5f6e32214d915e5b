// Package types provides type definitions for structured data used throughout the cv-builder system.
package types

// NewPlaceholderCVData returns the data a fresh session starts with: every
// field blank, plus one starter row in the collections the form opens with.
func NewPlaceholderCVData() CVData {
	return CVData{
		WorkExperience: []WorkExperience{{ID: "exp-1", Responsibilities: []string{""}}},
		Education:      []Education{{ID: "edu-1"}},
		Skills:         []Skill{{ID: "skill-1", Level: SkillIntermediate}},
		Languages:      []Language{},
		Certifications: []Certification{},
		References:     []Reference{},
	}
}

// SampleCVData returns a fully populated static fixture used by the CLI and tests.
func SampleCVData() CVData {
	return CVData{
		PersonalInfo: PersonalInfo{
			FullName: "Jane Doe",
			JobTitle: "Senior Software Engineer",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 010-2030",
			Address:  "Portland, OR",
			Website:  "janedoe.dev",
		},
		Summary: "Backend engineer with ten years of experience building reliable distributed systems, " +
			"developer tooling and data pipelines.",
		WorkExperience: []WorkExperience{
			{
				ID:        "exp-1",
				JobTitle:  "Senior Software Engineer",
				Company:   "Acme Corp",
				StartDate: "2021-03",
				Current:   true,
				Responsibilities: []string{
					"Led the migration of the billing platform to an event-driven architecture",
					"Mentored four engineers and ran the backend guild",
				},
			},
			{
				ID:        "exp-2",
				JobTitle:  "Software Engineer",
				Company:   "Globex",
				StartDate: "2016-06",
				EndDate:   "2021-02",
				Responsibilities: []string{
					"Built the internal deployment tooling used by 40 teams",
				},
			},
		},
		Education: []Education{
			{
				ID:           "edu-1",
				Degree:       "B.Sc.",
				FieldOfStudy: "Computer Science",
				Institution:  "Portland State University",
				StartDate:    "2012-09",
				EndDate:      "2016-05",
				Grade:        "3.8 GPA",
			},
		},
		Skills: []Skill{
			{ID: "skill-1", Name: "Go", Level: SkillExpert},
			{ID: "skill-2", Name: "PostgreSQL", Level: SkillAdvanced},
			{ID: "skill-3", Name: "Kubernetes", Level: SkillIntermediate},
		},
		Languages: []Language{
			{ID: "lang-1", Name: "English", Proficiency: ProficiencyNative},
			{ID: "lang-2", Name: "Spanish", Proficiency: ProficiencyConversational},
		},
		Certifications: []Certification{
			{ID: "cert-1", Name: "Certified Kubernetes Administrator", Issuer: "CNCF", Date: "2022-04", ExpiryDate: "2025-04"},
		},
		References: []Reference{
			{ID: "ref-1", Name: "John Smith", Email: "john.smith@example.com", Phone: "+1 (555) 010-4050", Organization: "Acme Corp"},
		},
	}
}
