// Busboard is a terminal dashboard for NYC bus delay statistics.
//
// It talks to the bus delay statistics backend and presents aggregate
// delay charts plus per-stop schedule lookups, either interactively or
// through one-shot commands suitable for scripts.
//
// Usage:
//
//	busboard [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'busboard --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nycbus/busboard/internal/logging"
	"github.com/nycbus/busboard/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "busboard",
	Short: "NYC bus delay dashboard",
	Long: `A terminal dashboard for NYC bus delay statistics.

Shows average scheduled delays per route as navigable charts and answers
"when is the next bus at my stop" queries against the backend API.

If no command is specified, the interactive dashboard will launch.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the dashboard when no subcommand is given
		return runDashboard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("busboard %s (commit: %s)\n", version.Version, version.Commit)
	},
}
