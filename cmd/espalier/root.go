package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a tick driven state machine runtime",
	Long:  `Espalier runs declarative state machine scenarios from YAML files and embeds as a library in applications that own an update loop.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("scenario", "s", "", "Path to the scenario YAML file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// resolveScenario picks the scenario path from the flag, a positional
// argument, or the environment, in that order.
func resolveScenario(cmd *cobra.Command, args []string, cfg cli.Config) string {
	path, _ := cmd.Flags().GetString("scenario")
	if !cmd.Flags().Changed("scenario") && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = cfg.Scenario
	}
	return path
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
