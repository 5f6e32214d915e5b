package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/pagination"
	"github.com/jonathan/cv-builder/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a CV as an A4 PDF",
	Long: "Mounts the CV in a headless Chrome, waits for fonts and images, captures it at high " +
		"resolution and cuts it into A4 pages. Requires Chrome or Chromium (set CHROME_PATH if it is not on PATH).",
	RunE: runExport,
}

var (
	exportOutputFile string
	exportChromePath string
)

func init() {
	addDocumentFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Output PDF path (defaults to output_dir/filename from config)")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome", "", "Path to the Chrome/Chromium binary")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(docOpts)
	if err != nil {
		return err
	}
	if exportChromePath != "" {
		cfg.ChromePath = exportChromePath
	}
	sess, err := buildSession(cfg, docOpts.sample)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []export.Option{
		export.WithPageCounter(pagination.CountPages),
		export.WithTimeout(cfg.Timeout()),
		export.WithVerbose(cfg.Verbose),
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, export.WithRecorder(database))
	}

	ec := cfg.ExportConfig()
	if err := ec.Validate(); err != nil {
		return err
	}
	pipeline := export.NewPipeline(export.NewChromeCollaborator(cfg.ChromePath, cfg.Verbose), ec, opts...)

	out, path, err := exportDocument(ctx, pipeline, sess, outputPath(cfg, exportOutputFile))
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExportOutcome(out)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved to %s (%d page(s))\n", out.Message, path, out.Pages)
	return nil
}

// outputPath is the requested file, or filename inside the output directory.
func outputPath(cfg config.Config, requested string) string {
	if requested != "" {
		return requested
	}
	return filepath.Join(cfg.OutputDir, cfg.Filename)
}

// exportDocument runs one export of sess and writes the PDF next to path.
// The written name always carries a .pdf extension.
func exportDocument(ctx context.Context, p *export.Pipeline, sess *session.Session, path string) (export.Outcome, string, error) {
	out := p.Export(ctx, export.Job{
		Tree:      sess.ExportTree(),
		SessionID: sess.ID,
		Title:     sess.Title(),
		Filename:  filepath.Base(path),
	})
	if !out.OK() {
		return out, "", errors.New(out.Message)
	}

	target := filepath.Join(filepath.Dir(path), out.Filename)
	f, err := createOutput(target)
	if err != nil {
		return out, "", err
	}
	defer f.Close()
	if _, err := f.Write(out.PDF); err != nil {
		return out, "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return out, target, nil
}
