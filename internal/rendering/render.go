package rendering

import (
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/jonathan/cv-builder/internal/types"
)

// Canvas dimensions of one A4 page: 96 DPI pixels for screen, millimetres for export.
const (
	CanvasWidthPx  = 794
	CanvasHeightPx = 1123
	PageWidthMM    = 210
	PageHeightMM   = 297

	sidebarWidth = "260px"
)

// Mode holds the three independent render flags.
type Mode struct {
	// Preview only changes the base text scale.
	Preview bool `json:"preview"`
	// ExportSource renders the unscaled canvas in physical units.
	ExportSource bool `json:"exportSource"`
	// Unbounded lets the canvas grow with its content instead of clipping at one page.
	Unbounded bool `json:"unbounded"`
}

// PreviewMode is the mode used for on-screen thumbnails.
func PreviewMode() Mode { return Mode{Preview: true} }

// ExportMode is the mode handed to the export pipeline.
func ExportMode() Mode { return Mode{ExportSource: true, Unbounded: true} }

func (m Mode) String() string {
	var parts []string
	if m.Preview {
		parts = append(parts, "preview")
	}
	if m.ExportSource {
		parts = append(parts, "export")
	}
	if m.Unbounded {
		parts = append(parts, "unbounded")
	}
	if len(parts) == 0 {
		return "full"
	}
	return strings.Join(parts, ",")
}

// builder carries the resolved inputs shared by all section builders.
type builder struct {
	data  types.CVData
	tpl   types.Template
	hooks templates.StyleHooks
	vis   Visibility
}

// Render builds the visual tree for data in the given template, theme and mode.
// It reads no state beyond its arguments and never mutates data.
func Render(data types.CVData, tpl types.Template, th theme.Theme, mode Mode) *Node {
	b := &builder{
		data:  data,
		tpl:   tpl,
		hooks: templates.Styles(tpl.ID),
		vis:   SectionVisibility(data),
	}

	root := &Node{
		Kind:  KindCanvas,
		Role:  "canvas",
		Style: canvasStyle(th, mode, tpl.Columns == 2),
		Attrs: map[string]string{
			"data-template": string(tpl.ID),
			"data-columns":  strconv.Itoa(columns(tpl)),
			"data-mode":     mode.String(),
		},
	}
	if tpl.Columns == 2 {
		root.Children = b.twoColumn()
	} else {
		root.Children = b.singleColumn()
	}
	return root
}

func columns(tpl types.Template) int {
	if tpl.Columns == 2 {
		return 2
	}
	return 1
}

// canvasStyle scopes the theme to the root node as custom properties.
func canvasStyle(th theme.Theme, mode Mode, flex bool) css {
	s := css{
		templates.VarPrimary:   th.Primary.CSS(),
		templates.VarSecondary: th.Secondary.CSS(),
		templates.VarAccent:    th.Accent.CSS(),
		"background":           "#ffffff",
		"color":                "#1f2937",
		"font-family":          "'Inter', 'Helvetica Neue', Arial, sans-serif",
		"line-height":          "1.5",
		"box-sizing":           "border-box",
		"position":             "relative",
		"margin":               "0 auto",
	}
	if mode.Preview {
		s["font-size"] = "13px"
	} else {
		s["font-size"] = "14px"
	}

	width, height := strconv.Itoa(CanvasWidthPx)+"px", strconv.Itoa(CanvasHeightPx)+"px"
	if mode.ExportSource {
		width, height = strconv.Itoa(PageWidthMM)+"mm", strconv.Itoa(PageHeightMM)+"mm"
	}
	s["width"] = width
	if mode.Unbounded {
		s["min-height"] = height
		s["height"] = "auto"
	} else {
		s["height"] = height
		s["overflow"] = "hidden"
	}
	if flex {
		s["display"] = "flex"
		s["align-items"] = "stretch"
	}
	return s
}

func (b *builder) twoColumn() []*Node {
	h := b.hooks
	sidebar := el(KindBox, "sidebar", css{
		"width":       sidebarWidth,
		"flex-shrink": "0",
		"background":  h.SidebarBackground,
		"color":       h.SidebarText,
		"padding":     "28px 22px",
	},
		b.photo(),
		b.contactSection(),
		b.skillsSection(true),
		b.languagesSection(true),
		b.certificationsSection(true),
		b.referencesSection(true),
	)

	content := el(KindBox, "content", css{
		"flex":      "1",
		"min-width": "0",
	},
		b.header(false),
		el(KindBox, "content.body", css{"padding": "24px 32px"},
			b.summarySection(),
			b.experienceSection(),
			b.educationSection(),
		),
	)
	return []*Node{sidebar, content}
}

func (b *builder) singleColumn() []*Node {
	return compact([]*Node{
		b.header(true),
		el(KindBox, "content.body", css{"padding": "24px 40px"},
			b.summarySection(),
			b.experienceSection(),
			grid(b.educationSection(), b.skillsSection(false)),
			grid(b.languagesSection(false), b.certificationsSection(false), b.referencesSection(false)),
		),
	})
}

// grid lays out the non-empty cells two across; it is omitted when every cell is.
func grid(cells ...*Node) *Node {
	cells = compact(cells)
	if len(cells) == 0 {
		return nil
	}
	return &Node{
		Kind: KindBox,
		Role: "grid",
		Style: css{
			"display":               "grid",
			"grid-template-columns": "repeat(2, minmax(0, 1fr))",
			"column-gap":            "32px",
			"margin-top":            "8px",
		},
		Children: cells,
	}
}
