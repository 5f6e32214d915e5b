package export

import (
	"testing"

	"github.com/jonathan/cv-builder/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.0, cfg.Margin)
	assert.Equal(t, "jpeg", cfg.Image.Type)
	assert.Equal(t, 0.98, cfg.Image.Quality)
	assert.Equal(t, 3.78, cfg.Rasterize.Scale)
	assert.Equal(t, PageConfig{Unit: "mm", Width: 210, Height: 297, Orientation: "portrait"}, cfg.Page)
	assert.Equal(t, pagination.ModeCSS, cfg.PageBreak.Mode)
	assert.Equal(t, 98, cfg.JPEGQuality())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"quality above one", func(c *Config) { c.Image.Quality = 1.5 }},
		{"zero quality", func(c *Config) { c.Image.Quality = 0 }},
		{"bad image type", func(c *Config) { c.Image.Type = "webp" }},
		{"zero scale", func(c *Config) { c.Rasterize.Scale = 0 }},
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"bad orientation", func(c *Config) { c.Page.Orientation = "sideways" }},
		{"bad unit", func(c *Config) { c.Page.Unit = "px" }},
		{"bad break mode", func(c *Config) { c.PageBreak.Mode = "whenever" }},
		{"missing filename", func(c *Config) { c.Filename = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var exportErr *Error
			assert.ErrorAs(t, err, &exportErr)
		})
	}
}

func TestConfig_OutputName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "cv.pdf", cfg.OutputName(""))
	assert.Equal(t, "resume.pdf", cfg.OutputName("resume"))
	assert.Equal(t, "resume.PDF", cfg.OutputName("resume.PDF"))
	assert.Equal(t, "passwd.pdf", cfg.OutputName("../../etc/passwd"))
	assert.Equal(t, "evil.pdf", cfg.OutputName(`..\..\evil.pdf`))
}

func TestConfig_PaginationOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Margin = 5
	opts := cfg.PaginationOptions("Jane")
	assert.Equal(t, 210.0, opts.PageWidth)
	assert.Equal(t, 297.0, opts.PageHeight)
	assert.Equal(t, 5.0, opts.Margin)
	assert.Equal(t, 98, opts.Quality)
	assert.Equal(t, "Jane", opts.Title)
}
