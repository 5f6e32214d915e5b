package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Report how complete a CV is",
	Long:  "Checks the five core sections (personal information, summary, work experience, education, skills) and prints the completion percentage.",
	RunE:  runProgress,
}

var progressJSON bool

func init() {
	progressCmd.Flags().StringVarP(&docOpts.dataPath, "data", "d", "", "Path to CVData JSON file")
	progressCmd.Flags().BoolVar(&docOpts.sample, "sample", false, "Use the built-in sample CV instead of a data file")
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(docOpts)
	if err != nil {
		return err
	}
	data, err := loadData(cfg.Data, docOpts.sample)
	if err != nil {
		return err
	}
	return writeProgress(cmd.OutOrStdout(), progress.Evaluate(data), progressJSON)
}

func writeProgress(w io.Writer, report progress.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	observability.NewPrinter(w).PrintProgress(report)
	return nil
}
