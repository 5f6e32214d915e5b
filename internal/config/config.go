// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/pagination"
	"github.com/jonathan/cv-builder/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Document
	Template string `json:"template,omitempty"` // Template identifier
	Color    string `json:"color,omitempty"`    // Color theme name
	Data     string `json:"data,omitempty"`     // Path to a CVData JSON file

	// Output
	OutputDir      string `json:"output_dir,omitempty"`      // Directory for rendered files
	Filename       string `json:"filename,omitempty"`        // PDF file name
	ContainerWidth int    `json:"container_width,omitempty"` // Preview container width in px

	// Export
	ExportTimeout string  `json:"export_timeout,omitempty"`  // Go duration, e.g. "90s"
	ChromePath    string  `json:"chrome_path,omitempty"`     // Chrome/Chromium binary
	ImageQuality  float64 `json:"image_quality,omitempty"`   // JPEG quality (0.0-1.0]
	RasterScale   float64 `json:"raster_scale,omitempty"`    // Capture scale over the 96 DPI canvas
	PageBreakMode string  `json:"page_break_mode,omitempty"` // css, legacy or avoid-all

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the export log

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	ec := export.DefaultConfig()
	return Config{
		Template:       string(types.TemplateProfessional),
		Filename:       ec.Filename,
		OutputDir:      ".",
		ContainerWidth: 0,
		ExportTimeout:  "60s",
		ImageQuality:   ec.Image.Quality,
		RasterScale:    ec.Rasterize.Scale,
		PageBreakMode:  string(ec.PageBreak.Mode),
		Port:           8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from CHROME_PATH, DATABASE_URL and PORT when set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number, got %q", v)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Unknown colors are allowed; they resolve to the default palette.
func (c *Config) Validate() error {
	if c.Template != "" && !types.TemplateID(c.Template).Known() {
		return fmt.Errorf("config error: unknown template %q", c.Template)
	}

	if c.ContainerWidth < 0 {
		return fmt.Errorf("config error: 'container_width' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ImageQuality < 0 || c.ImageQuality > 1 {
		return fmt.Errorf("config error: 'image_quality' must be in (0, 1]")
	}
	if c.RasterScale < 0 || c.RasterScale > 10 {
		return fmt.Errorf("config error: 'raster_scale' must be in (0, 10]")
	}
	if c.ExportTimeout != "" {
		d, err := time.ParseDuration(c.ExportTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'export_timeout': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'export_timeout' must be non-negative")
		}
	}
	if _, err := pagination.ParseMode(c.PageBreakMode); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Data != "" {
		if _, err := os.Stat(c.Data); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.Data)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Color == "" {
		result.Color = defaults.Color
	}
	if result.Data == "" {
		result.Data = defaults.Data
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Filename == "" {
		result.Filename = defaults.Filename
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.PageBreakMode == "" {
		result.PageBreakMode = defaults.PageBreakMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.ContainerWidth == 0 {
		result.ContainerWidth = defaults.ContainerWidth
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ImageQuality == 0 {
		result.ImageQuality = defaults.ImageQuality
	}
	if result.RasterScale == 0 {
		result.RasterScale = defaults.RasterScale
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the parsed export timeout, or zero when unset or invalid.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.ExportTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ExportConfig builds the collaborator record from this configuration.
func (c Config) ExportConfig() export.Config {
	ec := export.DefaultConfig()
	if c.Filename != "" {
		ec.Filename = c.Filename
	}
	if c.ImageQuality > 0 {
		ec.Image.Quality = c.ImageQuality
	}
	if c.RasterScale > 0 {
		ec.Rasterize.Scale = c.RasterScale
	}
	if mode, err := pagination.ParseMode(c.PageBreakMode); err == nil {
		ec.PageBreak.Mode = mode
	}
	return ec
}
