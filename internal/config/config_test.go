package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"template": "creative",
		"color": "teal",
		"container_width": 600,
		"image_quality": 0.9,
		"page_break_mode": "avoid-all",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "creative", cfg.Template)
	assert.Equal(t, "teal", cfg.Color)
	assert.Equal(t, 600, cfg.ContainerWidth)
	assert.Equal(t, 0.9, cfg.ImageQuality)
	assert.Equal(t, "avoid-all", cfg.PageBreakMode)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"empty", Config{}, ""},
		{"unknown color is fine", Config{Color: "chartreuse"}, ""},
		{"unknown template", Config{Template: "retro"}, "unknown template"},
		{"negative width", Config{ContainerWidth: -1}, "container_width"},
		{"quality above one", Config{ImageQuality: 1.2}, "image_quality"},
		{"scale too large", Config{RasterScale: 11}, "raster_scale"},
		{"bad timeout", Config{ExportTimeout: "soon"}, "export_timeout"},
		{"negative timeout", Config{ExportTimeout: "-1s"}, "export_timeout"},
		{"bad break mode", Config{PageBreakMode: "never"}, "page-break mode"},
		{"bad port", Config{Port: 70000}, "port"},
		{"missing data file", Config{Data: "/nonexistent/cv.json"}, "data file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Template: "minimal", ImageQuality: 0.8}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "minimal", merged.Template)
	assert.Equal(t, 0.8, merged.ImageQuality)
	assert.Equal(t, 3.78, merged.RasterScale)
	assert.Equal(t, "cv.pdf", merged.Filename)
	assert.Equal(t, "css", merged.PageBreakMode)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 60*time.Second, merged.Timeout())
	assert.Equal(t, "", cfg.Filename, "receiver is not modified")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("PORT", "9090")

	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)

	t.Setenv("PORT", "eighty")
	assert.Error(t, cfg.ApplyEnv())
}

func TestExportConfig(t *testing.T) {
	cfg := Config{Filename: "jane.pdf", ImageQuality: 0.9, RasterScale: 2, PageBreakMode: "legacy"}
	ec := cfg.ExportConfig()
	assert.Equal(t, "jane.pdf", ec.Filename)
	assert.Equal(t, 0.9, ec.Image.Quality)
	assert.Equal(t, 2.0, ec.Rasterize.Scale)
	assert.Equal(t, pagination.ModeLegacy, ec.PageBreak.Mode)
	assert.Equal(t, 0.0, ec.Margin)
	require.NoError(t, ec.Validate())

	def := Config{}.ExportConfig()
	assert.Equal(t, 3.78, def.Rasterize.Scale)
	assert.Equal(t, 0.98, def.Image.Quality)
}

func TestTimeout_Invalid(t *testing.T) {
	assert.Equal(t, time.Duration(0), Config{ExportTimeout: "nope"}.Timeout())
	assert.Equal(t, time.Duration(0), Config{}.Timeout())
}
