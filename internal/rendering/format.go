package rendering

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultPhoto is used when the personal info carries no photo reference.
const DefaultPhoto = "/images/placeholder-avatar.svg"

// PresentLabel replaces the end date of a current position.
const PresentLabel = "Present"

// dateLayouts are the shapes the form's date inputs produce.
var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// FormatDate renders a stored date as "Jan 2006". Empty input yields empty
// output; values that do not parse are returned trimmed but otherwise untouched.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// DateRange renders "start - end". A current position always ends with
// "Present" regardless of any stored end date.
func DateRange(start, end string, current bool) string {
	from := FormatDate(start)
	to := FormatDate(end)
	if current {
		to = PresentLabel
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}

var skillPercent = map[types.SkillLevel]int{
	types.SkillBeginner:     25,
	types.SkillIntermediate: 50,
	types.SkillAdvanced:     75,
	types.SkillExpert:       100,
}

// SkillPercent maps a level to its bar width. Unrecognized levels map to 50.
func SkillPercent(level types.SkillLevel) int {
	if p, ok := skillPercent[level]; ok {
		return p
	}
	return 50
}

func percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// PhotoSource returns the photo reference verbatim, or DefaultPhoto when empty.
func PhotoSource(photoURL string) string {
	if types.Blank(photoURL) {
		return DefaultPhoto
	}
	return photoURL
}
