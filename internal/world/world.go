// Package world provides the process-wide Directory over the reference index.
//
// A Directory starts Uninitialized. The first successful Initialize builds the index
// exactly once, however many goroutines call it; afterwards every query reads the frozen
// index without locking. Queries issued before the Directory is Ready degrade to the
// globe flag and empty listings.
package world

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/dataset"
	"github.com/hightemp/countrydata/internal/flagres"
	"github.com/hightemp/countrydata/internal/index"
	"github.com/hightemp/countrydata/internal/metrics"
)

// State is the Directory lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Building
	Ready
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Directory serves flag, country and currency queries.
type Directory struct {
	resolver flagres.Resolver
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu    sync.Mutex // serializes builds
	state atomic.Int32
	index atomic.Pointer[index.Index]
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records builds and lookups on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Directory) {
		d.metrics = m
	}
}

// New returns an uninitialized Directory resolving flags through resolver.
func New(resolver flagres.Resolver, opts ...Option) *Directory {
	d := &Directory{
		resolver: resolver,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Initialize loads both datasets from loader and builds the index. Only the first
// successful call does any work; concurrent callers block until it completes.
// A failed build leaves the Directory Uninitialized so a later call can retry.
func (d *Directory) Initialize(loader dataset.Loader) error {
	if d.index.Load() != nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.index.Load() != nil {
		return nil
	}

	d.state.Store(int32(Building))
	start := time.Now()
	d.logger.Info("building reference index", "source", sourceOf(loader))

	ix, err := d.build(loader)
	if d.metrics != nil {
		d.metrics.ObserveBuild(start, err)
	}
	if err != nil {
		d.state.Store(int32(Uninitialized))
		d.logger.Error("reference index build failed", "error", err)
		return err
	}

	d.index.Store(ix)
	d.state.Store(int32(Ready))

	degraded := ix.Degraded()
	if d.metrics != nil {
		d.metrics.SetIndexSize(ix.Len(), len(degraded))
	}
	d.logger.Info("reference index ready",
		"countries", ix.Len(),
		"currencies", len(ix.Currencies()),
		"degraded_flags", len(degraded),
		"duration", time.Since(start))

	return nil
}

func (d *Directory) build(loader dataset.Loader) (*index.Index, error) {
	var (
		g       errgroup.Group
		records []countries.Record
		curs    []currencies.Currency
	)

	g.Go(func() error {
		data, err := loader.LoadCountryRecords()
		if err != nil {
			return err
		}
		records, err = countries.Parse(data)
		return err
	})
	g.Go(func() error {
		data, err := loader.LoadCurrencyRecords()
		if err != nil {
			return err
		}
		curs, err = currencies.Parse(data)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("world: initialize: %w", err)
	}

	return index.Build(records, curs, d.resolver, d.logger), nil
}

func sourceOf(loader dataset.Loader) string {
	if s, ok := loader.(interface{ Source() string }); ok {
		return s.Source()
	}
	return fmt.Sprintf("%T", loader)
}

// State returns the current lifecycle state.
func (d *Directory) State() State {
	return State(d.state.Load())
}

// Ready reports whether the index has been built.
func (d *Directory) Ready() bool {
	return d.index.Load() != nil
}

// Index returns the frozen index once the Directory is Ready.
func (d *Directory) Index() (*index.Index, bool) {
	ix := d.index.Load()
	return ix, ix != nil
}

// Globe returns the fallback flag. It is available in every state.
func (d *Directory) Globe() flagres.Ref {
	if ix := d.index.Load(); ix != nil {
		return ix.Globe()
	}
	return d.resolver.Globe()
}

// ResolveFlag returns the flag for identifier, or the globe when it is unknown.
func (d *Directory) ResolveFlag(identifier string) flagres.Ref {
	ix := d.index.Load()
	if ix == nil {
		d.observe(index.MatchNone)
		return d.resolver.Globe()
	}
	ref, match := ix.LookupFlag(identifier)
	d.observe(match)
	return ref
}

// ResolveFlags resolves each identifier in order. The result has the same length
// as identifiers, duplicates included.
func (d *Directory) ResolveFlags(identifiers []string) []flagres.Ref {
	refs := make([]flagres.Ref, len(identifiers))
	for i, id := range identifiers {
		refs[i] = d.ResolveFlag(id)
	}
	return refs
}

func (d *Directory) observe(match index.Match) {
	if d.metrics == nil {
		return
	}
	switch match {
	case index.MatchAlias:
		d.metrics.IncrementLookup(metrics.OutcomeAlias)
	case index.MatchNone:
		d.metrics.IncrementLookup(metrics.OutcomeFallback)
	default:
		d.metrics.IncrementLookup(metrics.OutcomeHit)
	}
}

// CountryCodes returns the sorted alpha-2 codes of the flag table, "XX" included.
func (d *Directory) CountryCodes() []string {
	if ix := d.index.Load(); ix != nil {
		return ix.CountryCodes()
	}
	return nil
}

// Currencies returns every loaded currency, whether or not it was linked to a country.
func (d *Directory) Currencies() []currencies.Currency {
	if ix := d.index.Load(); ix != nil {
		return ix.Currencies()
	}
	return nil
}

// Countries returns the resolved countries in dataset order.
func (d *Directory) Countries() []countries.Country {
	if ix := d.index.Load(); ix != nil {
		return ix.Countries()
	}
	return nil
}

// Country looks up a country by alpha-2, alpha-3, numeric code or name.
func (d *Directory) Country(identifier string) (countries.Country, bool) {
	if ix := d.index.Load(); ix != nil {
		return ix.Country(identifier)
	}
	return countries.Country{}, false
}

// Suggest returns up to n alpha-2 codes close to query.
func (d *Directory) Suggest(query string, n int) []string {
	if ix := d.index.Load(); ix != nil {
		return ix.Suggest(query, n)
	}
	return nil
}
