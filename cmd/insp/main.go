// Package main provides the insp CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/config"
	"github.com/matsen/insp/internal/logging"
	"github.com/matsen/insp/internal/metrics"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	logLevel    string
	metricsFile string
	maxPapers   int
)

// Shared state set up before every command runs.
var (
	cfg    *config.Config
	logger *slog.Logger
	stats  *metrics.Metrics
)

func main() {
	err := rootCmd.Execute()
	if metricsFile != "" && stats != nil {
		if werr := stats.WriteTextfile(metricsFile); werr != nil {
			fmt.Fprintf(os.Stderr, "warning: writing metrics: %v\n", werr)
		}
	}
	if err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "insp",
	Short: "Citation statistics and publication lists from INSPIRE-HEP",
	Long: `insp fetches an author's records from INSPIRE-HEP and derives
citation statistics, publication lists, bibliographies and coauthor rosters.

An author is given by INSPIRE BAI (S.Weinberg.1), ORCID
(0000-0002-1825-0097) or INSPIRE record id (1014689).

All commands output JSON by default. Use --human for readable text.

Configuration: $XDG_CONFIG_HOME/insp/config.yml
Environment:   INSP_BASE_URL, INSP_LOG_LEVEL, INSP_MAX_PAPERS`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Load .env file if present (for INSP_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	rootCmd.PersistentFlags().IntVar(&maxPapers, "max-papers", 0, "Maximum number of records to fetch (default from config)")
	rootCmd.Version = Version
}

// setup loads the configuration and builds the logger and metrics registry.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg = loaded

	if logLevel != "" {
		if err := config.ValidateLogLevel(logLevel); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.LogLevel = logLevel
	}
	if maxPapers < 0 {
		exitWithError(ExitError, "--max-papers must not be negative")
	}
	if maxPapers > 0 {
		cfg.MaxPapers = maxPapers
	}

	logger = logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)
	stats = metrics.New()
	return nil
}
