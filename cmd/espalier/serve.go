package main

import (
	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [scenario]",
	Short: "Tick a scenario and expose it over HTTP",
	Long:  `Runs the machine in the background and serves /status, /graph, /metrics and /healthz endpoints for it.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := cli.LoadConfig()
		if err != nil {
			fail("Error: %v", err)
		}

		opts := cli.ServeOptions{
			Scenario: resolveScenario(cmd, args, cfg),
			LogLevel: cfg.LogLevel,
		}
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		opts.Addr, _ = cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			opts.Addr = cfg.Addr
		}
		opts.Interval, _ = cmd.Flags().GetDuration("interval")
		if !cmd.Flags().Changed("interval") {
			opts.Interval = cfg.Interval
		}

		if opts.Scenario == "" {
			fail("Error: no scenario given (use --scenario, a positional argument or ESPALIER_SCENARIO)")
		}

		if err := cli.Serve(opts); err != nil {
			fail("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (defaults to ESPALIER_ADDR or :8080)")
	serveCmd.Flags().Duration("interval", 0, "Tick interval (overrides the scenario value)")
	serveCmd.Flags().Bool("plain", false, "Suppress the banner")
}
