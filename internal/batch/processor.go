// Package batch handles batch flag lookups from stdin.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/output"
)

// Directory is the part of the world directory the processor needs.
type Directory interface {
	output.Directory
	Suggest(query string, n int) []string
}

// Processor handles batch lookups.
type Processor struct {
	dir         Directory
	concurrency int
	suggestions int
}

// NewProcessor creates a new batch processor.
func NewProcessor(dir Directory) *Processor {
	return &Processor{
		dir:         dir,
		concurrency: config.DefaultBatchConcurrency,
	}
}

// SetConcurrency sets the number of lookup workers, clamped to the allowed range.
func (p *Processor) SetConcurrency(n int) {
	p.concurrency = config.ClampConcurrency(n)
}

// SetSuggestions enables up to n "did you mean" codes on fallback results.
func (p *Processor) SetSuggestions(n int) {
	if n < 0 {
		n = 0
	}
	p.suggestions = n
}

// ProcessInput reads identifiers from input and writes results to output,
// one result per non-empty line, in input order.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)

	if jsonOutput {
		var results []*output.LookupResult
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			results = append(results, p.lookup(line))
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		return writeJSON(w, results)
	}

	// Stream output line by line
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Fprintln(w, p.lookup(line).FormatText())
	}

	return scanner.Err()
}

// ProcessInputConcurrent resolves all identifiers with a bounded worker pool and
// writes the results in input order once every lookup has finished.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	lines, err := ReadIdentifiers(r)
	if err != nil {
		return err
	}

	results := make([]*output.LookupResult, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.lookup(line)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, results)
	}
	for _, result := range results {
		fmt.Fprintln(w, result.FormatText())
	}
	return nil
}

// ReadIdentifiers returns the trimmed non-empty lines of r.
func ReadIdentifiers(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var lines []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (p *Processor) lookup(identifier string) *output.LookupResult {
	result := output.Lookup(p.dir, identifier)
	if result.Fallback && p.suggestions > 0 {
		result.Suggestions = p.dir.Suggest(result.Identifier, p.suggestions)
	}
	return result
}

func writeJSON(w io.Writer, results []*output.LookupResult) error {
	batch := &output.BatchResult{Results: results}
	jsonStr, err := batch.FormatJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, jsonStr)
	return err
}
