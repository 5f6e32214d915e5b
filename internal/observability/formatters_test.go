package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/progress"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintCVData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := types.SampleCVData()
	p.PrintCVData(&data)
	output := buf.String()

	assert.Contains(t, output, "CV DATA")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Go, PostgreSQL")
	assert.Contains(t, output, "1 edu, 2 lang, 1 cert, 1 ref")
}

func TestPrintCVData_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCVData(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCVData_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	data := types.NewPlaceholderCVData()
	NewPrinter(&buf).PrintCVData(&data)
	assert.Contains(t, buf.String(), "(no name)")
}

func TestPrintTemplate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	tpl := templates.Select(types.TemplateExecutive)
	tpl.Color = "chartreuse"
	p.PrintTemplate(tpl, theme.Resolve(tpl.Color))
	output := buf.String()

	assert.Contains(t, output, "executive (1 column)")
	assert.Contains(t, output, "plain")
	assert.Contains(t, output, `slate (fallback for "chartreuse")`)
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCatalog(templates.Catalog())
	output := buf.String()

	for _, id := range types.TemplateIDs {
		assert.Contains(t, output, string(id))
	}

	buf.Reset()
	p.PrintCatalog(nil)
	assert.Empty(t, buf.String())
}

func TestPrintVisibility(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVisibility(rendering.Visibility{Skills: true})
	output := buf.String()

	assert.Contains(t, output, "✓ Skills")
	assert.Contains(t, output, "· References")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgress(progress.Evaluate(types.CVData{Summary: "x"}))
	output := buf.String()

	assert.Contains(t, output, "COMPLETENESS")
	assert.Contains(t, output, "20%")
	assert.Contains(t, output, "✓ Summary")
	assert.Contains(t, output, "✗ Skills")
}

func TestPrintExportOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	now := time.Now()
	p.PrintExportOutcome(export.Outcome{
		Status:     export.StatusSuccess,
		Filename:   "cv.pdf",
		Pages:      2,
		Bytes:      2048,
		StartedAt:  now,
		FinishedAt: now.Add(1500 * time.Millisecond),
	})
	output := buf.String()
	assert.Contains(t, output, "EXPORT COMPLETE")
	assert.Contains(t, output, "cv.pdf")
	assert.Contains(t, output, "2.0 KB")
	assert.Contains(t, output, "1.5s")

	buf.Reset()
	p.PrintExportOutcome(export.Outcome{Status: export.StatusFailure, Message: export.FailureMessage})
	assert.Contains(t, buf.String(), "EXPORT FAILURE")
	assert.Contains(t, buf.String(), export.FailureMessage)
}
