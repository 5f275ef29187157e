package main

import (
	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a scenario in the foreground",
	Long:  `Loads a scenario file and ticks the machine until the tick budget runs out or the process is interrupted.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.LoadConfig()
		if err != nil {
			fail("Error: %v", err)
		}

		opts := cli.RunOptions{Scenario: resolveScenario(cmd, args, cfg)}
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		watchMode, _ := cmd.Flags().GetBool("watch")

		opts.Ticks, _ = cmd.Flags().GetUint64("ticks")
		if !cmd.Flags().Changed("ticks") {
			opts.Ticks = cfg.Ticks
		}
		opts.Interval, _ = cmd.Flags().GetDuration("interval")
		if !cmd.Flags().Changed("interval") {
			opts.Interval = cfg.Interval
		}

		if opts.Scenario == "" {
			fail("Error: no scenario given (use --scenario, a positional argument or ESPALIER_SCENARIO)")
		}

		if watchMode {
			err = cli.RunWatch(opts)
		} else {
			err = cli.Run(opts)
		}
		if err != nil {
			fail("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().Duration("interval", 0, "Tick interval (overrides the scenario value)")
	runCmd.Flags().BoolP("watch", "w", false, "Rebuild and restart when the scenario file changes")
	runCmd.Flags().Bool("plain", false, "Suppress the banner and markdown rendering")
}
