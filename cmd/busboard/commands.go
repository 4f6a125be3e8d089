package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nycbus/busboard/internal/busapi"
	"github.com/nycbus/busboard/internal/config"
	"github.com/nycbus/busboard/internal/report"
	"github.com/nycbus/busboard/internal/tui"
)

// Persistent flags
var (
	apiURL         string
	timeoutSeconds int
	retries        int
	outputFormat   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", -1, "Retry attempts for failed requests (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "styled", "Output format (styled, json)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(stopsCmd)
	rootCmd.AddCommand(arrivalCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(predictCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDefaultsCmd)
	rootCmd.AddCommand(configCmd)

	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
	rootCmd.AddCommand(favoriteCmd)
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		settings.API.BaseURL = apiURL
	}
	if timeoutSeconds > 0 {
		settings.API.TimeoutSeconds = timeoutSeconds
	}
	if retries >= 0 {
		settings.API.MaxRetries = retries
	}
	return settings, nil
}

// newClient builds an API client from the effective settings.
func newClient(settings *config.Settings) *busapi.Client {
	client := busapi.NewClient(settings.API.BaseURL)
	client.SetTimeout(time.Duration(settings.API.TimeoutSeconds) * time.Second)
	client.SetRetry(settings.API.MaxRetries, busapi.DefaultRetryDelay)
	return client
}

// printJSON emits a value as indented JSON for --format json.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// failure prints a failure box with troubleshooting advice and returns a
// silent error so cobra sets the exit code without double-printing.
func failure(title string, err error) error {
	result := report.NewFailureResult(title, fmt.Errorf("%s", busapi.ShortMessage(err)), nil)
	fmt.Println(result.Render())
	fmt.Println(busapi.TroubleshootingHint(err))
	return fmt.Errorf("%s", busapi.ShortMessage(err))
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard has a chart gallery of average delays per route and a
schedule screen that finds the next scheduled bus per route at a stop.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return tui.Run(newClient(settings), settings)
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show average delay per route as a bar chart",
	Example: `  # Chart against the configured backend
  busboard chart

  # Chart against a local mock backend
  busboard chart --api http://127.0.0.1:8000`,
	RunE: runChart,
}

func runChart(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	chart, err := client.GetChartData(context.Background())
	if err != nil {
		return failure("Failed to fetch chart data", err)
	}

	if outputFormat == "json" {
		return printJSON(chart)
	}

	width := report.GetTerminalWidth()
	header := report.NewHeader("Delay Chart", "busboard chart", map[string]string{
		"Backend": settings.API.BaseURL,
	})
	fmt.Println(header.Render())
	fmt.Println()
	fmt.Println(report.RenderBarChart(chart.Pairs(), width))
	fmt.Println()
	result := report.NewSuccessResult("Chart data loaded", map[string]string{
		"Routes": strconv.Itoa(len(chart.Routes)),
	})
	fmt.Println(result.Render())
	return nil
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes present in the dataset",
	RunE:  runRoutes,
}

func runRoutes(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	opts, err := client.GetFilterOptions(context.Background())
	if err != nil {
		return failure("Failed to fetch routes", err)
	}

	if outputFormat == "json" {
		return printJSON(opts)
	}

	fmt.Println(report.RenderList(opts.Routes, report.GetTerminalWidth()))
	return nil
}

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "List the stop names present in the dataset",
	RunE:  runStops,
}

func runStops(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	names, err := client.GetStopNames(context.Background())
	if err != nil {
		return failure("Failed to fetch stop names", err)
	}

	if outputFormat == "json" {
		return printJSON(names)
	}

	fmt.Println(report.RenderList(names.StopNames, report.GetTerminalWidth()))
	return nil
}

var arrivalCmd = &cobra.Command{
	Use:   "arrival <route> <hour>",
	Short: "Show the average delay for a route at an hour of day",
	Example: `  # Average delay for the B46 during the 8am hour
  busboard arrival B46 8`,
	Args: cobra.ExactArgs(2),
	RunE: runArrival,
}

func runArrival(cmd *cobra.Command, args []string) error {
	route := args[0]
	hour, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("hour must be a number (0-23), got %q", args[1])
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	arrival, err := client.FindArrival(context.Background(), route, hour)
	if err != nil {
		return failure("Arrival lookup failed", err)
	}

	if outputFormat == "json" {
		return printJSON(arrival)
	}

	header := report.NewHeader("Arrival Lookup", "busboard arrival", map[string]string{
		"Backend": settings.API.BaseURL,
	})
	fmt.Println(header.Render())
	fmt.Println()
	fmt.Println(report.RenderArrival(route, hour, arrival))
	fmt.Println()
	return nil
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <stop-name> <hour> <minute>",
	Short: "Show the next scheduled bus per route at a stop",
	Long: `For a stop and a time of day, show the next scheduled bus for each
route serving the stop, together with the average prediction error seen
for that exact scheduled arrival.`,
	Example: `  # Next buses at a stop at 8:30
  busboard schedule "UTICA AV/FULTON ST" 8 30`,
	Args: cobra.ExactArgs(3),
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	stopName := args[0]
	hour, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("hour must be a number (0-23), got %q", args[1])
	}
	minute, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("minute must be a number (0-59), got %q", args[2])
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	schedule, err := client.GetStopSchedule(context.Background(), stopName, hour, minute)
	if err != nil {
		return failure("Schedule lookup failed", err)
	}

	if outputFormat == "json" {
		return printJSON(schedule)
	}

	header := report.NewHeader("Stop Schedule", "busboard schedule", map[string]string{
		"Backend": settings.API.BaseURL,
	})
	fmt.Println(header.Render())
	fmt.Println()
	fmt.Println(report.RenderStopSchedule(schedule))
	fmt.Println()
	return nil
}

var predictCmd = &cobra.Command{
	Use:   "predict <HH:MM:SS>",
	Short: "Predict the delay for a time of day",
	Long: `Predict the expected bus delay for an exact time of day using the
backend's fitted time-of-day model.`,
	Example: `  # Predicted delay for the evening rush
  busboard predict 17:30:00`,
	Args: cobra.ExactArgs(1),
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	timeStr := args[0]

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	client := newClient(settings)

	prediction, err := client.PredictDelay(context.Background(), timeStr)
	if err != nil {
		return failure("Delay prediction failed", err)
	}

	if outputFormat == "json" {
		return printJSON(prediction)
	}

	header := report.NewHeader("Delay Prediction", "busboard predict", map[string]string{
		"Backend": settings.API.BaseURL,
	})
	fmt.Println(header.Render())
	fmt.Println()
	fmt.Println(report.RenderPrediction(prediction))
	fmt.Println()
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration file location and effective settings",
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	settings, err := config.Load()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}

	fmt.Printf("Config file: %s\n\n%s", path, data)
	return nil
}

var configSetDefaultsCmd = &cobra.Command{
	Use:   "set-defaults <stop-name> <hour> <minute>",
	Short: "Set the default stop and time for schedule queries",
	Example: `  busboard config set-defaults "UTICA AV/FULTON ST" 8 30`,
	Args: cobra.ExactArgs(3),
	RunE: runConfigSetDefaults,
}

func runConfigSetDefaults(cmd *cobra.Command, args []string) error {
	stopName := args[0]
	hour, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("hour must be a number (0-23), got %q", args[1])
	}
	minute, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("minute must be a number (0-59), got %q", args[2])
	}
	if err := busapi.ValidateHour(hour); err != nil {
		return err
	}
	if err := busapi.ValidateMinute(minute); err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	settings.Defaults.Stop = stopName
	settings.Defaults.Hour = hour
	settings.Defaults.Minute = minute
	if err := settings.Save(); err != nil {
		return err
	}

	fmt.Printf("Default schedule query set to %q at %02d:%02d\n", stopName, hour, minute)
	return nil
}

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Manage favorite stops",
	Long: `Manage the favorite stops list. Favorites sort to the top of the
dashboard's stop picker and are marked with a star.`,
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <stop-name>",
	Short: "Add a stop to the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteAdd,
}

func runFavoriteAdd(cmd *cobra.Command, args []string) error {
	stopName := args[0]
	if err := busapi.ValidateStopName(stopName); err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if !settings.AddFavoriteStop(stopName) {
		fmt.Printf("%q is already a favorite\n", stopName)
		return nil
	}
	if err := settings.Save(); err != nil {
		return err
	}

	fmt.Printf("Added %q to favorites\n", stopName)
	return nil
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove <stop-name>",
	Short: "Remove a stop from the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteRemove,
}

func runFavoriteRemove(cmd *cobra.Command, args []string) error {
	stopName := args[0]

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if !settings.RemoveFavoriteStop(stopName) {
		fmt.Printf("%q is not a favorite\n", stopName)
		return nil
	}
	if err := settings.Save(); err != nil {
		return err
	}

	fmt.Printf("Removed %q from favorites\n", stopName)
	return nil
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the favorite stops",
	RunE:  runFavoriteList,
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if len(settings.FavoriteStops) == 0 {
		fmt.Println("No favorite stops. Add one with 'busboard favorite add <stop-name>'.")
		return nil
	}
	for _, name := range settings.FavoriteStops {
		fmt.Println(name)
	}
	return nil
}
