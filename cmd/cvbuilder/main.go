// Package main provides the cvbuilder CLI: render, export and serve CV documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvbuilder",
	Short: "CV builder: templated previews and A4 PDF export",
	Long: "cvbuilder renders CV data into one of four templates with a color theme, " +
		"reports how complete the CV is and exports it as a paginated A4 PDF.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&docOpts.configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&docOpts.verbose, "verbose", "v", false, "Print detailed output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
