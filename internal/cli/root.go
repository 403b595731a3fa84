package cli

import (
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/logging"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	flagDebug       bool
	flagLogLevel    string
	flagLogFormat   string
	flagConfig      string
	flagPackages    string
	flagDistances   string
	flagDB          string
	flagMetricsFile string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the dispatch CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Plan a day of package deliveries",
		Long:  "dispatch schedules a fixed package set across the truck fleet and reports delivery times.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.Get("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", config.Get("LOG_FORMAT", "text"), "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", config.Get("DISPATCH_CONFIG", ""), "Dispatch settings YAML (or DISPATCH_CONFIG env)")
	root.PersistentFlags().StringVar(&flagPackages, "packages", config.Get("PACKAGES_PATH", "data/packages.csv"), "Package file")
	root.PersistentFlags().StringVar(&flagDistances, "distances", config.Get("DISTANCES_PATH", "data/distances.csv"), "Distance table file")
	root.PersistentFlags().StringVar(&flagDB, "db", config.Get("DATABASE_URL", ""), "Read inputs from a database instead of files (or DATABASE_URL env)")
	root.PersistentFlags().StringVar(&flagMetricsFile, "metrics-file", config.Get("METRICS_FILE", ""), "Write run metrics in Prometheus text format")

	root.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newTrucksCmd(),
		newSeedCmd(),
	)

	return root
}
