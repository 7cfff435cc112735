package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scale-serp",
	Short: "ScaleSERP search gateway",
	Long: `Scale SERP - A strictly typed gateway for the ScaleSERP search API

This tool builds ScaleSERP query URLs, validates every response against
the documented schema, and tracks credit usage locally.

Features:
  • Web search via the /search endpoint
  • Location lookup via the /locations endpoint
  • Strict response validation (missing required fields are errors)
  • Local credit usage accounting
  • HTTP server exposing the same operations`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
