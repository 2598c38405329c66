// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/dataset"
	"github.com/hightemp/countrydata/internal/flagres"
	"github.com/hightemp/countrydata/internal/metrics"
	"github.com/hightemp/countrydata/internal/output"
	"github.com/hightemp/countrydata/internal/snapshot"
	"github.com/hightemp/countrydata/internal/world"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var cfg = config.DefaultConfig()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "countrydata [identifier...]",
	Short: "Country flags, codes and currencies from bundled ISO reference data",
	Long: `countrydata resolves country identifiers to flags and looks up
ISO 3166-1 countries and their currencies.

Identifiers may be alpha-2 or alpha-3 codes, numeric codes or names, in any case:
  countrydata fr DEU 392 "united kingdom"

For batch processing (read from stdin, one identifier per line):
  cat codes.txt | countrydata --json

Unknown identifiers resolve to the globe flag. "xx", "xxx", "world" and
"globe" always do.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runLookup,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(ExitFailure, fmt.Sprintf("Error: %v", err))
	}
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DataDir, "data-dir", "", "load countries.json and currencies.json from this directory instead of the bundled data")
	pf.StringVar(&cfg.FlagMode, "flags", config.FlagModeEmoji, "flag rendering: emoji or assets")
	pf.StringVar(&cfg.FlagDir, "flag-dir", "", "directory with flag images (assets mode)")
	pf.StringVar(&cfg.FlagExt, "flag-ext", config.DefaultFlagExt, "flag image extension (assets mode)")
	pf.StringVar(&cfg.RemapFile, "remap", "", "YAML file mapping alpha-2 codes to asset names, only with --flags assets (default "+config.DefaultRemapPath()+")")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	pf.BoolVar(&cfg.JSONOutput, "json", false, "output in JSON format")

	// Lookup-specific flags
	rootCmd.Flags().IntVar(&cfg.Concurrency, "concurrency", config.DefaultBatchConcurrency, "batch lookup workers (max 16)")

	// Add subcommands
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(currenciesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExitCode constants
const (
	ExitSuccess          = 0
	ExitFailure          = 1
	ExitInvalidInput     = 2
	ExitDataError        = 3
	ExitValidationFailed = 5
)

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// app is the initialized directory plus what was used to build it.
type app struct {
	dir      *world.Directory
	registry *prometheus.Registry
	logger   *slog.Logger
	source   string
}

// loadApp builds the resolver and directory from cfg and initializes it.
func loadApp(c *config.Config) (*app, error) {
	logger, err := newLogger(c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	resolver, err := newResolver(c)
	if err != nil {
		return nil, err
	}

	loader, source, err := newLoader(c)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	d := world.New(resolver,
		world.WithLogger(logger),
		world.WithMetrics(metrics.New(registry)),
	)
	if err := d.Initialize(loader); err != nil {
		return nil, fmt.Errorf("load reference data from %s: %w", source, err)
	}

	return &app{dir: d, registry: registry, logger: logger, source: source}, nil
}

// mustLoadApp is loadApp that exits with ExitDataError on failure.
func mustLoadApp() *app {
	a, err := loadApp(cfg)
	if err != nil {
		exitWithCode(ExitDataError, fmt.Sprintf("Error: %v", err))
	}
	return a
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newResolver(c *config.Config) (flagres.Resolver, error) {
	switch strings.ToLower(c.FlagMode) {
	case config.FlagModeEmoji, "":
		if c.RemapFile != "" {
			return nil, fmt.Errorf("--remap requires --flags %s", config.FlagModeAssets)
		}
		return flagres.NewEmojiResolver(), nil
	case config.FlagModeAssets:
		if c.FlagDir == "" {
			return nil, fmt.Errorf("--flag-dir is required with --flags %s", config.FlagModeAssets)
		}
		remapPath := c.RemapFile
		if remapPath == "" {
			remapPath = config.DefaultRemapPath()
		}
		remap, err := flagres.LoadRemapFile(remapPath)
		if err != nil {
			return nil, err
		}
		return flagres.NewAssetDirResolver(c.FlagDir, c.FlagExt, remap), nil
	default:
		return nil, fmt.Errorf("invalid flag mode %q: use %s or %s", c.FlagMode, config.FlagModeEmoji, config.FlagModeAssets)
	}
}

func newLoader(c *config.Config) (dataset.Loader, string, error) {
	if c.UsesBundledData() {
		l := dataset.Embedded()
		return l, l.Source(), nil
	}
	_, l, err := snapshot.NewManager(c.DataDir).Open()
	if err != nil {
		return nil, "", err
	}
	return l, l.Source(), nil
}

func printJSON(w io.Writer, v any) error {
	data, err := output.FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, data)
	return err
}
