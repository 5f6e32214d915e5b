// Package progress scores how complete a CV is over five fixed sections.
package progress

import (
	"math"

	"github.com/jonathan/cv-builder/internal/types"
)

// Section names, in report order.
const (
	PersonalInformation = "Personal Information"
	Summary             = "Summary"
	WorkExperience      = "Work Experience"
	Education           = "Education"
	Skills              = "Skills"
)

// SectionStatus is the completeness of one section.
type SectionStatus struct {
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// Report is the evaluator's result. Languages, certifications and
// references are not counted.
type Report struct {
	Percentage int             `json:"percentage"`
	Sections   []SectionStatus `json:"sections"`
}

// Completed returns how many sections are complete.
func (r Report) Completed() int {
	n := 0
	for _, s := range r.Sections {
		if s.Complete {
			n++
		}
	}
	return n
}

// Missing returns the names of incomplete sections in report order.
func (r Report) Missing() []string {
	var out []string
	for _, s := range r.Sections {
		if !s.Complete {
			out = append(out, s.Name)
		}
	}
	return out
}

// Experience and education need both identifying fields to count. The
// renderer shows an entry with either one, so a half-filled entry is visible
// but still reported as incomplete.
type rule struct {
	name     string
	complete func(types.CVData) bool
}

var rules = []rule{
	{PersonalInformation, func(d types.CVData) bool {
		p := d.PersonalInfo
		return !types.Blank(p.FullName) && !types.Blank(p.JobTitle) && !types.Blank(p.Email)
	}},
	{Summary, func(d types.CVData) bool { return !types.Blank(d.Summary) }},
	{WorkExperience, func(d types.CVData) bool {
		for _, e := range d.WorkExperience {
			if !types.Blank(e.JobTitle) && !types.Blank(e.Company) {
				return true
			}
		}
		return false
	}},
	{Education, func(d types.CVData) bool {
		for _, e := range d.Education {
			if !types.Blank(e.Degree) && !types.Blank(e.Institution) {
				return true
			}
		}
		return false
	}},
	{Skills, func(d types.CVData) bool {
		for _, s := range d.Skills {
			if !types.Blank(s.Name) {
				return true
			}
		}
		return false
	}},
}

// Evaluate scores data. It only reads its argument.
func Evaluate(data types.CVData) Report {
	r := Report{Sections: make([]SectionStatus, 0, len(rules))}
	for _, rl := range rules {
		r.Sections = append(r.Sections, SectionStatus{Name: rl.name, Complete: rl.complete(data)})
	}
	r.Percentage = int(math.Round(100 * float64(r.Completed()) / float64(len(rules))))
	return r
}
