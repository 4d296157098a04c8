// Package cmd contains all CLI commands for reportforge.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reportforge/sdk/node"
)

var (
	// Version is the current version of reportforge
	Version = "0.1.0"

	// Global flags
	verbose      bool
	settingsPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reportforge",
	Short: "Compile security-report designs into shareable documents",
	Long: `reportforge turns a saved report design into a finished document.

A design file is the JSON export of the visual report builder: the nodes
placed on the canvas, their content, and the edges between them. It is
linearized top-to-bottom by canvas position and compiled into Markdown,
a print-ready HTML document, or a self-contained ZIP archive.

Examples:
  reportforge validate design.json               # Check a design file
  reportforge compile design.json                # Compile to Markdown
  reportforge compile design.json -t html        # Compile to HTML
  reportforge generate design.json               # Populate AI test plans

See 'reportforge <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", ".", "Path to reportforge.yaml or its directory")

	cobra.OnInitialize(func() {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	})
}

// addOutputFlag registers the shared --out flag on a command's flag set.
func addOutputFlag(fs *pflag.FlagSet, out *string) {
	fs.StringVarP(out, "out", "o", "", "Output path ('-' for stdout; default derives from the project name)")
}

// loadDesign reads a design file into a fresh store.
func loadDesign(path string) (*node.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open design file: %w", err)
	}
	defer f.Close()

	store := node.NewStore()
	if err := store.ImportDesign(f); err != nil {
		return nil, err
	}
	return store, nil
}
