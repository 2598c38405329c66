package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/snapshot"
)

var (
	exportDir string
	force     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded reference data to a directory",
	Long: `Writes countries.json, currencies.json and metadata.json to a directory.
The result can be edited and loaded back with --data-dir.

Examples:
  countrydata export --out ./data
  countrydata --data-dir ./data export --out ./copy --force`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "", "output directory (required)")
	exportCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing export")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	mgr := snapshot.NewManager(exportDir)
	if !force && mgr.Exists() {
		fmt.Printf("Data already exists in %s. Use --force to overwrite.\n", exportDir)
		return nil
	}

	startTime := time.Now()
	a := mustLoadApp()

	ix, ok := a.dir.Index()
	if !ok {
		return fmt.Errorf("reference index not ready")
	}

	meta := snapshot.NewMetadata(a.source)
	meta.FlagMode = cfg.FlagMode
	if err := mgr.Export(ix, meta); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Exported reference data in %v\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("  Countries: %d\n", meta.CountriesCount)
	fmt.Printf("  Currencies: %d\n", meta.CurrenciesCount)
	if len(meta.DegradedFlags) > 0 {
		fmt.Printf("  Flags missing: %d\n", len(meta.DegradedFlags))
	}
	fmt.Printf("  Location: %s\n", exportDir)

	return nil
}
