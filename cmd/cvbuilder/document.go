package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/types"
)

// documentOptions are the flags shared by every command that builds a CV.
type documentOptions struct {
	configPath string
	verbose    bool
	dataPath   string
	sample     bool
	template   string
	color      string
	width      int
}

var docOpts documentOptions

func addDocumentFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&docOpts.dataPath, "data", "d", "", "Path to CVData JSON file")
	f.BoolVar(&docOpts.sample, "sample", false, "Use the built-in sample CV instead of a data file")
	f.StringVarP(&docOpts.template, "template", "t", "", "Template: professional, creative, executive or minimal")
	f.StringVarP(&docOpts.color, "color", "c", "", "Color theme (slate, blue, green, purple, red, orange, teal, rose)")
}

// resolveConfig layers the config file, environment and flags over the defaults.
func resolveConfig(o documentOptions) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	if o.dataPath != "" {
		cfg.Data = o.dataPath
	}
	if o.template != "" {
		cfg.Template = o.template
	}
	if o.color != "" {
		cfg.Color = o.color
	}
	if o.width != 0 {
		cfg.ContainerWidth = o.width
	}
	if o.verbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// loadData returns the sample fixture or the validated contents of path.
func loadData(path string, sample bool) (types.CVData, error) {
	if sample {
		return types.SampleCVData(), nil
	}
	if path == "" {
		return types.CVData{}, fmt.Errorf("either --data or --sample is required")
	}
	return schemas.LoadCVDataFile(path)
}

// buildSession creates a throwaway session holding the configured document.
func buildSession(cfg config.Config, sample bool) (*session.Session, error) {
	data, err := loadData(cfg.Data, sample)
	if err != nil {
		return nil, err
	}
	sess := session.New(uuid.NewString(), types.TemplateID(cfg.Template))
	if cfg.Color != "" {
		sess.SetColor(cfg.Color)
	}
	sess.ReplaceData(data)
	return sess, nil
}

// createOutput creates path and any missing parent directories.
func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
