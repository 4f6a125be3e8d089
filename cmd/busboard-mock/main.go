// Busboard-mock serves the bus delay statistics API from a local CSV
// export, or from a small built-in sample dataset when no CSV is given.
// It exists so the busboard dashboard can be developed and demonstrated
// without access to the production backend.
//
// Usage:
//
//	busboard-mock [--csv busDatabase.csv] [--addr 127.0.0.1:8000]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nycbus/busboard/internal/logging"
	"github.com/nycbus/busboard/internal/mockapi"
	"github.com/nycbus/busboard/internal/version"
)

var (
	csvPath string
	addr    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "busboard-mock",
	Short: "Local mock of the bus delay statistics API",
	Long: `Serves the bus delay statistics API endpoints from a CSV export.

Without --csv a small built-in sample dataset is served, which is enough
to exercise every busboard screen and command.`,
	Version: version.Version,
	RunE:    runServe,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Path to a busDatabase CSV export")
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize("info"); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	var (
		dataset *mockapi.Dataset
		err     error
	)
	if csvPath != "" {
		dataset, err = mockapi.LoadCSV(csvPath)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d records from %s\n", dataset.Len(), csvPath)
	} else {
		dataset = mockapi.SampleDataset()
		fmt.Println("No --csv given, serving the built-in sample dataset")
	}

	server := mockapi.NewServer(dataset, addr)

	// Shut down cleanly on interrupt
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Serving bus delay API on http://%s\n", addr)

	select {
	case err := <-done:
		return err
	case <-sig:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		return <-done
	}
}
