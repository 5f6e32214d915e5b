package export

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-builder/internal/pagination"
)

// ImageConfig is the lossy encoding used for rasterized pages.
type ImageConfig struct {
	Type    string  `json:"type" validate:"oneof=jpeg png"`
	Quality float64 `json:"quality" validate:"gt=0,lte=1"`
}

// RasterizeConfig controls the capture resolution.
type RasterizeConfig struct {
	// Scale multiplies the 96 DPI logical canvas.
	Scale             float64 `json:"scale" validate:"gt=0,lte=10"`
	CrossOriginImages bool    `json:"crossOriginImages"`
}

// PageConfig is the physical page.
type PageConfig struct {
	Unit        string  `json:"unit" validate:"oneof=mm cm in pt"`
	Width       float64 `json:"width" validate:"gt=0"`
	Height      float64 `json:"height" validate:"gt=0"`
	Orientation string  `json:"orientation" validate:"oneof=portrait landscape"`
}

// PageBreakConfig selects how break hints are honored.
type PageBreakConfig struct {
	Mode pagination.Mode `json:"mode" validate:"oneof=css legacy avoid-all"`
}

// Config is the record handed to the rasterization collaborator.
type Config struct {
	Margin    float64         `json:"margin" validate:"gte=0"`
	Filename  string          `json:"filename" validate:"required"`
	Image     ImageConfig     `json:"image"`
	Rasterize RasterizeConfig `json:"rasterize"`
	Page      PageConfig      `json:"page"`
	PageBreak PageBreakConfig `json:"pageBreak"`
}

// DefaultFilename is used when neither the config nor the request names the output.
const DefaultFilename = "cv.pdf"

// DefaultConfig is zero margin, JPEG at 0.98, a 3.78x capture of the 96 DPI
// canvas and an A4 portrait page with CSS break hints.
func DefaultConfig() Config {
	return Config{
		Margin:    0,
		Filename:  DefaultFilename,
		Image:     ImageConfig{Type: "jpeg", Quality: 0.98},
		Rasterize: RasterizeConfig{Scale: 3.78, CrossOriginImages: true},
		Page:      PageConfig{Unit: "mm", Width: 210, Height: 297, Orientation: "portrait"},
		PageBreak: PageBreakConfig{Mode: pagination.ModeCSS},
	}
}

// Validate validates the Config using the validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &Error{Message: "invalid export config", Cause: err}
	}
	return nil
}

// JPEGQuality converts the 0..1 quality ratio into the 1..100 encoder scale.
func (c Config) JPEGQuality() int {
	q := int(c.Image.Quality*100 + 0.5)
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// PaginationOptions maps the config onto the PDF assembler's options.
func (c Config) PaginationOptions(title string) pagination.Options {
	return pagination.Options{
		PageWidth:   c.Page.Width,
		PageHeight:  c.Page.Height,
		Unit:        c.Page.Unit,
		Orientation: c.Page.Orientation,
		Margin:      c.Margin,
		Quality:     c.JPEGQuality(),
		Title:       title,
		Creator:     "cv-builder",
	}
}

// OutputName returns a safe .pdf file name, preferring requested over the configured default.
func (c Config) OutputName(requested string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = c.Filename
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
