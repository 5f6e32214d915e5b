// Package templates maps template identifiers to their structural layout and style hooks.
package templates

import (
	"github.com/jonathan/cv-builder/internal/types"
)

// HeaderTreatment is how a template draws the name/title header
type HeaderTreatment string

const (
	HeaderGradient   HeaderTreatment = "gradient"
	HeaderSolid      HeaderTreatment = "solid"
	HeaderPlain      HeaderTreatment = "plain"
	HeaderBorderOnly HeaderTreatment = "border-only"
)

// Scoped CSS custom properties set on the rendered root. Hook values only
// ever reference these, never document-level state.
const (
	VarPrimary   = "--cv-primary"
	VarSecondary = "--cv-secondary"
	VarAccent    = "--cv-accent"
)

func ref(name string) string { return "var(" + name + ")" }

// StyleHooks is the fixed set of semantic style roles consumed by the renderer.
type StyleHooks struct {
	SidebarBackground string          `json:"sidebarBackground"`
	SidebarText       string          `json:"sidebarText"`
	PrimaryText       string          `json:"primaryText"`
	AccentBackground  string          `json:"accentBackground"`
	Border            string          `json:"border"`
	ProgressFill      string          `json:"progressFill"`
	ProgressTrack     string          `json:"progressTrack"`
	ProgressRadius    string          `json:"progressRadius"`
	HeaderBackground  string          `json:"headerBackground"`
	HeaderText        string          `json:"headerText"`
	Header            HeaderTreatment `json:"header"`
	EntryAccentBar    bool            `json:"entryAccentBar"`
}

// Definition describes one built-in template
type Definition struct {
	ID           types.TemplateID `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Columns      int              `json:"columns"`
	HasPhoto     bool             `json:"hasPhoto"`
	DefaultColor string           `json:"defaultColor"`
}

var catalog = []Definition{
	{
		ID:           types.TemplateProfessional,
		Name:         "Professional",
		Description:  "Two columns with a photo sidebar and a gradient header band.",
		Columns:      2,
		HasPhoto:     true,
		DefaultColor: "blue",
	},
	{
		ID:           types.TemplateCreative,
		Name:         "Creative",
		Description:  "Two columns with a tinted sidebar, solid header block and rounded skill bars.",
		Columns:      2,
		HasPhoto:     true,
		DefaultColor: "purple",
	},
	{
		ID:           types.TemplateExecutive,
		Name:         "Executive",
		Description:  "Single column with a plain header and accent bars beside each entry.",
		Columns:      1,
		HasPhoto:     false,
		DefaultColor: "slate",
	},
	{
		ID:           types.TemplateMinimal,
		Name:         "Minimal",
		Description:  "Single column with a bordered header and no colored band.",
		Columns:      1,
		HasPhoto:     false,
		DefaultColor: "slate",
	},
}

var plainHooks = StyleHooks{
	SidebarBackground: ref(VarAccent),
	SidebarText:       "#1f2937",
	PrimaryText:       ref(VarPrimary),
	AccentBackground:  ref(VarAccent),
	Border:            ref(VarSecondary),
	ProgressFill:      ref(VarPrimary),
	ProgressTrack:     "#e5e7eb",
	ProgressRadius:    "2px",
	HeaderBackground:  ref(VarAccent),
	HeaderText:        ref(VarPrimary),
	Header:            HeaderPlain,
}

// hooks is exhaustive over types.TemplateIDs; TestStyles_CoversEveryTemplate enforces it.
var hooks = map[types.TemplateID]StyleHooks{
	types.TemplateProfessional: {
		SidebarBackground: ref(VarAccent),
		SidebarText:       "#1f2937",
		PrimaryText:       ref(VarPrimary),
		AccentBackground:  ref(VarAccent),
		Border:            ref(VarSecondary),
		ProgressFill:      ref(VarPrimary),
		ProgressTrack:     "#e5e7eb",
		ProgressRadius:    "2px",
		HeaderBackground:  "linear-gradient(135deg, " + ref(VarPrimary) + ", " + ref(VarSecondary) + ")",
		HeaderText:        "#ffffff",
		Header:            HeaderGradient,
	},
	types.TemplateCreative: {
		SidebarBackground: ref(VarPrimary),
		SidebarText:       "#ffffff",
		PrimaryText:       ref(VarPrimary),
		AccentBackground:  ref(VarAccent),
		Border:            ref(VarSecondary),
		ProgressFill:      "linear-gradient(90deg, " + ref(VarSecondary) + ", " + ref(VarAccent) + ")",
		ProgressTrack:     "rgba(255, 255, 255, 0.25)",
		ProgressRadius:    "9999px",
		HeaderBackground:  ref(VarSecondary),
		HeaderText:        "#ffffff",
		Header:            HeaderSolid,
	},
	types.TemplateExecutive: {
		SidebarBackground: ref(VarAccent),
		SidebarText:       "#1f2937",
		PrimaryText:       ref(VarPrimary),
		AccentBackground:  ref(VarAccent),
		Border:            ref(VarPrimary),
		ProgressFill:      ref(VarPrimary),
		ProgressTrack:     "#e5e7eb",
		ProgressRadius:    "2px",
		HeaderBackground:  ref(VarAccent),
		HeaderText:        ref(VarPrimary),
		Header:            HeaderPlain,
		EntryAccentBar:    true,
	},
	types.TemplateMinimal: {
		SidebarBackground: "#ffffff",
		SidebarText:       "#1f2937",
		PrimaryText:       "#111827",
		AccentBackground:  "#f9fafb",
		Border:            "#d1d5db",
		ProgressFill:      "#374151",
		ProgressTrack:     "#e5e7eb",
		ProgressRadius:    "0",
		HeaderBackground:  "transparent",
		HeaderText:        "#111827",
		Header:            HeaderBorderOnly,
	},
}

// Catalog returns the built-in templates in display order.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// Lookup returns the definition for id and whether it exists.
func Lookup(id types.TemplateID) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Select builds the Template for id with its default color. Unknown
// identifiers get the professional layout.
func Select(id types.TemplateID) types.Template {
	d, ok := Lookup(id)
	if !ok {
		d = catalog[0]
	}
	return types.Template{ID: d.ID, Columns: d.Columns, HasPhoto: d.HasPhoto, Color: d.DefaultColor}
}

// Styles resolves the style hooks for id. Unknown identifiers get the plain hooks.
func Styles(id types.TemplateID) StyleHooks {
	if h, ok := hooks[id]; ok {
		return h
	}
	return plainHooks
}
