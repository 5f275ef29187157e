package main

import (
	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [scenario]",
	Short: "Export the scenario topology as a Mermaid diagram",
	Long:  `Builds the machine from a scenario file and outputs a Mermaid state diagram of its declared transitions.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.LoadConfig()
		if err != nil {
			fail("Error: %v", err)
		}

		path := resolveScenario(cmd, args, cfg)
		if path == "" {
			fail("Error: no scenario given (use --scenario, a positional argument or ESPALIER_SCENARIO)")
		}

		if err := cli.Graph(path); err != nil {
			fail("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
