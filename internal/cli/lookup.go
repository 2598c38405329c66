package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hightemp/countrydata/internal/batch"
	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/output"
	"github.com/hightemp/countrydata/internal/world"
)

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Check if we have identifiers or should read from stdin
	if len(args) == 0 && !isBatchMode() {
		return cmd.Help()
	}

	a := mustLoadApp()

	if len(args) > 0 {
		return lookupArgs(a.dir, args, os.Stdout, os.Stderr, cfg.JSONOutput)
	}

	// Batch mode from stdin
	processor := batch.NewProcessor(a.dir)
	processor.SetConcurrency(cfg.Concurrency)
	if cfg.JSONOutput {
		processor.SetSuggestions(config.DefaultSuggestions)
	}
	return processor.ProcessInputConcurrent(ctx, os.Stdin, os.Stdout, cfg.JSONOutput)
}

// lookupArgs resolves each identifier. Unknown identifiers still print the globe;
// the "did you mean" hint goes to stderr so stdout stays parseable.
func lookupArgs(d *world.Directory, args []string, stdout, stderr io.Writer, jsonOutput bool) error {
	results := make([]*output.LookupResult, len(args))
	for i, arg := range args {
		result := output.Lookup(d, arg)
		if result.Fallback {
			result.Suggestions = d.Suggest(result.Identifier, config.DefaultSuggestions)
			if hint := output.FormatSuggestions(result.Identifier, result.Suggestions); hint != "" {
				fmt.Fprintln(stderr, hint)
			}
		}
		results[i] = result
	}

	if jsonOutput {
		if len(results) == 1 {
			return printJSON(stdout, results[0])
		}
		return printJSON(stdout, results)
	}

	for _, result := range results {
		fmt.Fprintln(stdout, result.FormatText())
	}
	return nil
}

// isBatchMode checks if we're receiving batch input
func isBatchMode() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
