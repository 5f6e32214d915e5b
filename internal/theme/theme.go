// Package theme resolves symbolic color names into the tonal palette used by templates.
package theme

import (
	"fmt"
	"strings"
)

// DefaultName is the palette returned for any name that is not in the table.
const DefaultName = "slate"

// HSL is a hue/saturation/lightness triple. S and L are percentages.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// CSS returns the value in CSS Color Level 4 space-separated syntax.
func (c HSL) CSS() string {
	return fmt.Sprintf("hsl(%d %d%% %d%%)", c.H, c.S, c.L)
}

// Theme is the resolved primary/secondary/accent triple for a color name.
type Theme struct {
	Name      string `json:"name"`
	Primary   HSL    `json:"primary"`
	Secondary HSL    `json:"secondary"`
	Accent    HSL    `json:"accent"`
}

// palettes is ordered so Names is stable.
var palettes = []Theme{
	{Name: "slate", Primary: HSL{215, 25, 27}, Secondary: HSL{215, 20, 65}, Accent: HSL{210, 40, 96}},
	{Name: "blue", Primary: HSL{221, 83, 53}, Secondary: HSL{213, 94, 68}, Accent: HSL{214, 95, 93}},
	{Name: "green", Primary: HSL{142, 71, 45}, Secondary: HSL{142, 69, 58}, Accent: HSL{141, 84, 93}},
	{Name: "purple", Primary: HSL{262, 83, 58}, Secondary: HSL{263, 70, 71}, Accent: HSL{269, 100, 95}},
	{Name: "red", Primary: HSL{0, 72, 51}, Secondary: HSL{0, 91, 71}, Accent: HSL{0, 93, 94}},
	{Name: "orange", Primary: HSL{25, 95, 53}, Secondary: HSL{27, 96, 61}, Accent: HSL{33, 100, 92}},
	{Name: "teal", Primary: HSL{173, 80, 40}, Secondary: HSL{172, 66, 50}, Accent: HSL{167, 85, 89}},
	{Name: "rose", Primary: HSL{347, 77, 50}, Secondary: HSL{351, 95, 71}, Accent: HSL{356, 100, 95}},
}

var byName = func() map[string]Theme {
	m := make(map[string]Theme, len(palettes))
	for _, p := range palettes {
		m[p.Name] = p
	}
	return m
}()

// Resolve maps a color name to its palette. It never fails: names outside the
// table resolve to the slate palette.
func Resolve(name string) Theme {
	if t, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return byName[DefaultName]
}

// Known reports whether name matches a palette entry.
func Known(name string) bool {
	_, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names lists the palette names in display order.
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// All returns every palette in display order.
func All() []Theme {
	return append([]Theme(nil), palettes...)
}
