package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/report"
	"github.com/reportforge/sdk/settings"
)

var (
	compileTarget string
	compileOut    string
)

var compileCmd = &cobra.Command{
	Use:   "compile <design.json>",
	Short: "Compile a design file into a report document",
	Long: `Compile linearizes the design's nodes by canvas position and renders
them into the chosen target format.

Targets:
  markdown   UTF-8 Markdown document (default)
  html       print-ready HTML document
  archive    ZIP of the Markdown report plus referenced evidence

Evidence bytes are not stored in design files, so the html and archive
targets only succeed for designs without binary evidence references.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileTarget, "target", "t", "markdown", "Output target: markdown | html | archive")
	addOutputFlag(compileCmd.Flags(), &compileOut)
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	target, err := report.ParseTarget(compileTarget)
	if err != nil {
		return err
	}
	if target == report.TargetPreview {
		return fmt.Errorf("the preview target has no file artifact")
	}

	store, err := loadDesign(args[0])
	if err != nil {
		return err
	}

	cfg, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	snap := graph.Capture(store)
	compiler := report.New(report.WithPageSize(cfg.PageSize))

	var artifact []byte
	switch target {
	case report.TargetMarkdown:
		out, err := compiler.Markdown(cmd.Context(), snap)
		if err != nil {
			return err
		}
		artifact = []byte(out)
	case report.TargetHTML:
		out, err := compiler.HTML(cmd.Context(), snap)
		if err != nil {
			return err
		}
		artifact = []byte(out)
	case report.TargetArchive:
		var buf bytes.Buffer
		if err := compiler.Archive(cmd.Context(), snap, &buf); err != nil {
			return err
		}
		artifact = buf.Bytes()
	}

	out := compileOut
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(artifact)
		return err
	}
	if out == "" {
		out = report.OutputName(graph.ProjectName(graph.Linearize(snap)), target)
	}
	if err := os.WriteFile(out, artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	cmd.Printf("wrote %s (%d bytes)\n", out, len(artifact))
	return nil
}
