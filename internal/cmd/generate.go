package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reportforge/sdk/node"
	"github.com/reportforge/sdk/planner"
	"github.com/reportforge/sdk/settings"
)

var (
	generateID  string
	generateOut string
)

var generateCmd = &cobra.Command{
	Use:   "generate <design.json>",
	Short: "Populate AI test plans into the design's tables",
	Long: `Generate runs the test-plan planner for a generator node and appends
the produced rows to the test-case table it is connected to, then
writes the updated design back out.

The model credential comes from ` + settings.EnvAPIKey + ` or the api_key
field of reportforge.yaml. Without --generator, the design must contain
exactly one generator node.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateID, "generator", "g", "", "ID of the generator node to run")
	addOutputFlag(generateCmd.Flags(), &generateOut)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	store, err := loadDesign(args[0])
	if err != nil {
		return err
	}

	generatorID := generateID
	if generatorID == "" {
		generatorID, err = soleGenerator(store)
		if err != nil {
			return err
		}
	}

	cfg, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	client, err := planner.NewAnthropicClient(cfg.Credential(), cfg.Model)
	if err != nil {
		return err
	}

	defaultIntensity, err := planner.ParseIntensity(cfg.DefaultIntensity)
	if err != nil {
		return err
	}
	pl := planner.NewPlanner(client, planner.WithDefaultIntensity(defaultIntensity))

	added, err := pl.Populate(cmd.Context(), store, generatorID)
	if err != nil {
		return err
	}

	out := generateOut
	if out == "" {
		out = args[0]
	}
	if out == "-" {
		return store.ExportDesign(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	defer f.Close()
	if err := store.ExportDesign(f); err != nil {
		return err
	}
	cmd.Printf("added %d rows, wrote %s\n", added, out)
	return nil
}

// soleGenerator returns the only generator node's ID, or an error
// telling the user to disambiguate.
func soleGenerator(store *node.Store) (string, error) {
	nodes, _ := store.Snapshot()
	var ids []string
	for _, n := range nodes {
		if n.Kind == node.KindAIGenerator {
			ids = append(ids, n.ID)
		}
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("design has no generator node")
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("design has %d generator nodes, pick one with --generator: %v", len(ids), ids)
	}
}
