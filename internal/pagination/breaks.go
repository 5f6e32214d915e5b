// Package pagination cuts a tall page raster into physical pages and assembles them into a PDF.
package pagination

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how page-break hints are honored.
type Mode string

const (
	// ModeCSS avoids cutting through elements whose layout rules ask for break-inside: avoid.
	ModeCSS Mode = "css"
	// ModeLegacy cuts at fixed page intervals.
	ModeLegacy Mode = "legacy"
	// ModeAvoidAll avoids cutting through any element that fits on a page.
	ModeAvoidAll Mode = "avoid-all"
)

// Modes lists the accepted page-break modes.
var Modes = []Mode{ModeCSS, ModeLegacy, ModeAvoidAll}

// ParseMode accepts a mode name case-insensitively; empty means ModeCSS.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeCSS, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown page-break mode %q (valid: css, legacy, avoid-all)", s)
}

// Selector is the CSS selector whose elements should not be split in this mode.
// Legacy mode has none.
func (m Mode) Selector() string {
	switch m {
	case ModeAvoidAll:
		return ".cv-canvas *"
	case ModeLegacy:
		return ""
	default:
		return ".cv-entry, .cv-skill, .cv-certification, .cv-reference, .cv-language"
	}
}

// Span is a vertical interval [Top, Bottom) in raster pixels.
type Span struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Height returns Bottom - Top.
func (s Span) Height() int { return s.Bottom - s.Top }

// PageHeightFor returns the raster height of one page whose width is
// rasterWidth, keeping the physical page's aspect ratio.
func PageHeightFor(rasterWidth int, pageWidth, pageHeight float64) int {
	if rasterWidth <= 0 || pageWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(rasterWidth) * pageHeight / pageWidth))
}

// PlanBreaks splits contentHeight into page slices no taller than
// pageHeight. Outside legacy mode a cut that would pass through an avoid
// span is moved up to that span's top, provided the span fits on one page
// and starts below the current page top. An empty content height yields no pages.
func PlanBreaks(contentHeight, pageHeight int, avoid []Span, mode Mode) []Span {
	if contentHeight <= 0 {
		return nil
	}
	if pageHeight <= 0 {
		return []Span{{Top: 0, Bottom: contentHeight}}
	}

	var pages []Span
	top := 0
	for top < contentHeight {
		cut := top + pageHeight
		if cut >= contentHeight {
			pages = append(pages, Span{Top: top, Bottom: contentHeight})
			break
		}
		if mode != ModeLegacy {
			cut = avoidCut(top, cut, pageHeight, avoid)
		}
		pages = append(pages, Span{Top: top, Bottom: cut})
		top = cut
	}
	return pages
}

// avoidCut moves cut up until no eligible span straddles it. Every move
// strictly lowers cut and never reaches top, so the loop terminates.
func avoidCut(top, cut, pageHeight int, avoid []Span) int {
	for moved := true; moved; {
		moved = false
		for _, s := range avoid {
			if s.Top > top && s.Top < cut && s.Bottom > cut && s.Height() <= pageHeight {
				cut = s.Top
				moved = true
			}
		}
	}
	return cut
}
