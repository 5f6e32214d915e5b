// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/progress"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// PrintCVData outputs a short summary of the loaded CV data.
func (p *Printer) PrintCVData(data *types.CVData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	name := data.PersonalInfo.FullName
	if types.Blank(name) {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if !types.Blank(data.PersonalInfo.JobTitle) {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", data.PersonalInfo.JobTitle))
	}
	sb.WriteString("\n")

	if len(data.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(data.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s", truncate(exp.JobTitle, 30)))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			sb.WriteString("\n")
		}
		if len(data.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.WorkExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(data.Skills) > 0 {
		names := make([]string, 0, len(data.Skills))
		for _, s := range data.Skills {
			if !types.Blank(s.Name) {
				names = append(names, s.Name)
			}
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", truncate(strings.Join(names, ", "), 44)))
	}
	sb.WriteString(fmt.Sprintf("Entries:  %d edu, %d lang, %d cert, %d ref",
		len(data.Education), len(data.Languages), len(data.Certifications), len(data.References)))

	p.printBox("CV DATA", sb.String())
}

// PrintTemplate outputs the active template and its resolved theme.
func (p *Printer) PrintTemplate(tpl types.Template, th theme.Theme) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s (%d column", tpl.ID, tpl.Columns))
	if tpl.Columns != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(")\n")
	hooks := templates.Styles(tpl.ID)
	sb.WriteString(fmt.Sprintf("Header:   %s\n", hooks.Header))
	sb.WriteString(fmt.Sprintf("Photo:    %t\n", tpl.HasPhoto))
	sb.WriteString(fmt.Sprintf("Color:    %s", th.Name))
	if tpl.Color != "" && !theme.Known(tpl.Color) {
		sb.WriteString(fmt.Sprintf(" (fallback for %q)", tpl.Color))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Primary:  %s", th.Primary.CSS()))

	p.printBox("TEMPLATE", sb.String())
}

// PrintCatalog outputs every built-in template.
func (p *Printer) PrintCatalog(defs []templates.Definition) {
	if len(defs) == 0 {
		return
	}

	var sb strings.Builder
	for i, d := range defs {
		sb.WriteString(fmt.Sprintf("%-13s %d col  photo=%-5t  %s\n", d.ID, d.Columns, d.HasPhoto, d.DefaultColor))
		sb.WriteString(fmt.Sprintf("  %s", d.Description))
		if i < len(defs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TEMPLATES", sb.String())
}

// PrintVisibility outputs which sections a render will contain.
func (p *Printer) PrintVisibility(vis rendering.Visibility) {
	rows := []struct {
		name string
		on   bool
	}{
		{"Contact", vis.Contact},
		{"Summary", vis.Summary},
		{"Work Experience", vis.Experience},
		{"Education", vis.Education},
		{"Skills", vis.Skills},
		{"Languages", vis.Languages},
		{"Certifications", vis.Certifications},
		{"References", vis.References},
	}

	var sb strings.Builder
	for i, r := range rows {
		mark := "·"
		if r.on {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s", mark, r.name))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RENDERED SECTIONS", sb.String())
}

// PrintProgress outputs the completeness report.
func (p *Printer) PrintProgress(report progress.Report) {
	const barWidth = 30
	filled := report.Percentage * barWidth / 100

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s%s] %d%%\n\n", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), report.Percentage))
	for i, s := range report.Sections {
		mark := "✗"
		if s.Complete {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s", mark, s.Name))
		if i < len(report.Sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COMPLETENESS", sb.String())
}

// PrintExportOutcome outputs the result of an export.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExportOutcome(out export.Outcome) {
	if !out.OK() {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "❌ EXPORT "+strings.ToUpper(string(out.Status)))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(out.Message, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", out.Filename))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", out.Pages))
	sb.WriteString(fmt.Sprintf("Size:     %.1f KB\n", float64(out.Bytes)/1024))
	sb.WriteString(fmt.Sprintf("Took:     %s", out.Duration().Round(time.Millisecond)))

	p.printBox("✅ EXPORT COMPLETE", sb.String())
}
