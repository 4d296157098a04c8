package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
	"github.com/reportforge/sdk/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <design.json>",
	Short: "Check that a design file imports cleanly",
	Long: `Validate imports the design file the same way compile does and reports
what it found: node and edge counts, the document component order, and
the evidence paths a compiled report would reference.

A design that fails validation exits non-zero and compiles nowhere.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	store, err := loadDesign(args[0])
	if err != nil {
		return err
	}

	snap := graph.Capture(store)
	components := graph.Linearize(snap)

	generators := 0
	for _, n := range snap.Nodes {
		if n.Kind == node.KindAIGenerator {
			generators++
		}
	}

	cmd.Printf("design ok: %d nodes, %d edges\n", len(snap.Nodes), len(snap.Edges))
	if name := graph.ProjectName(components); name != "" {
		cmd.Printf("project: %s\n", name)
	}
	cmd.Printf("document components, in order:\n")
	for i, c := range components {
		cmd.Printf("  %2d. %s (%s)\n", i+1, c.Kind.DisplayName(), c.NodeID)
	}
	if generators > 0 {
		cmd.Printf("editor-only generator nodes: %d (never rendered)\n", generators)
	}
	if paths := report.Manifest(snap); len(paths) > 0 {
		cmd.Printf("evidence referenced:\n")
		for _, p := range paths {
			cmd.Printf("  %s\n", p)
		}
	}
	return nil
}
