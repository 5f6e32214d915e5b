package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV preview as HTML or as a JSON visual tree",
	Long: "Renders CV data with the selected template and color. With --width the canvas is " +
		"scaled to fit a container of that many CSS pixels.",
	RunE: runRender,
}

var (
	renderOutputFile string
	renderJSON       bool
	renderThumbnail  bool
)

func init() {
	addDocumentFlags(renderCmd)
	renderCmd.Flags().IntVarP(&docOpts.width, "width", "w", 0, "Container width in CSS pixels (0 renders at full size)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Output file (stdout when empty)")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Write the visual tree as JSON instead of HTML")
	renderCmd.Flags().BoolVar(&renderThumbnail, "thumbnail", false, "Use the reduced preview text scale")

	rootCmd.AddCommand(renderCmd)
}

// previewPayload is the JSON form written by render --json.
type previewPayload struct {
	session.Preview
	Visibility rendering.Visibility `json:"visibility"`
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(docOpts)
	if err != nil {
		return err
	}
	sess, err := buildSession(cfg, docOpts.sample)
	if err != nil {
		return err
	}
	defer sess.Close()

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		data := sess.Data()
		tpl := sess.Template()
		printer.PrintCVData(&data)
		printer.PrintTemplate(tpl, theme.Resolve(tpl.Color))
		printer.PrintVisibility(rendering.SectionVisibility(data))
	}

	w := cmd.OutOrStdout()
	if renderOutputFile != "" {
		f, err := createOutput(renderOutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := writePreview(w, sess, cfg, renderThumbnail, renderJSON); err != nil {
		return err
	}
	if renderOutputFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", renderOutputFile)
	}
	return nil
}

// writePreview renders sess for the configured container width.
func writePreview(w io.Writer, sess *session.Session, cfg config.Config, thumbnail, asJSON bool) error {
	preview := sess.Preview(session.PreviewOptions{Width: float64(cfg.ContainerWidth), Thumbnail: thumbnail})

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(previewPayload{Preview: preview, Visibility: rendering.SectionVisibility(sess.Data())})
	}

	opts := rendering.DocumentOptions{Title: sess.Title()}
	if cfg.ContainerWidth > 0 {
		opts.FrameStyle = preview.Transform
	}
	return rendering.RenderDocument(w, preview.Tree, opts)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in templates",
	RunE:  runTemplates,
}

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	return writeCatalog(cmd.OutOrStdout(), templatesJSON)
}

func writeCatalog(w io.Writer, asJSON bool) error {
	catalog := templates.Catalog()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}
	observability.NewPrinter(w).PrintCatalog(catalog)
	return nil
}
