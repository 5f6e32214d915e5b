package rendering

import "github.com/jonathan/cv-builder/internal/types"

// Section visibility is recomputed from the data on every render.
// An entry is shown once either of its identifying fields is populated, so
// partial input stays visible. Completeness scoring is stricter.

func experienceFilled(e types.WorkExperience) bool {
	return !types.Blank(e.JobTitle) || !types.Blank(e.Company)
}

func educationFilled(e types.Education) bool {
	return !types.Blank(e.Degree) || !types.Blank(e.Institution)
}

func filled[T any](items []T, ok func(T) bool) []T {
	var out []T
	for _, it := range items {
		if ok(it) {
			out = append(out, it)
		}
	}
	return out
}

// Visibility reports which sections a render of data will contain.
type Visibility struct {
	Contact        bool `json:"contact"`
	Summary        bool `json:"summary"`
	Experience     bool `json:"experience"`
	Education      bool `json:"education"`
	Skills         bool `json:"skills"`
	Languages      bool `json:"languages"`
	Certifications bool `json:"certifications"`
	References     bool `json:"references"`
}

// SectionVisibility evaluates the visibility rule for every section.
func SectionVisibility(data types.CVData) Visibility {
	return Visibility{
		Contact:        data.PersonalInfo.HasContact(),
		Summary:        !types.Blank(data.Summary),
		Experience:     len(filled(data.WorkExperience, experienceFilled)) > 0,
		Education:      len(filled(data.Education, educationFilled)) > 0,
		Skills:         len(filled(data.Skills, func(s types.Skill) bool { return !types.Blank(s.Name) })) > 0,
		Languages:      len(filled(data.Languages, func(l types.Language) bool { return !types.Blank(l.Name) })) > 0,
		Certifications: len(filled(data.Certifications, func(c types.Certification) bool { return !types.Blank(c.Name) })) > 0,
		References:     len(filled(data.References, func(r types.Reference) bool { return !types.Blank(r.Name) })) > 0,
	}
}
