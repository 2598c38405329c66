// Package index builds the read-only reference index over countries and currencies.
//
// Build links every country with its currency and flag in a single ordered pass and
// produces an Index that is never mutated afterwards, so its query methods are safe for
// concurrent use without locking.
package index

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/flagres"
)

// GlobeAliases are identifiers that always resolve to the globe flag.
var GlobeAliases = []string{"xx", "xxx", "world", "globe"}

// Match reports which key table answered a lookup.
type Match int

const (
	MatchNone Match = iota
	MatchAlias
	MatchAlpha2
	MatchAlpha3
	MatchNumeric
	MatchName
)

func (m Match) String() string {
	switch m {
	case MatchAlias:
		return "alias"
	case MatchAlpha2:
		return "alpha2"
	case MatchAlpha3:
		return "alpha3"
	case MatchNumeric:
		return "numeric"
	case MatchName:
		return "name"
	default:
		return "none"
	}
}

// Index is the frozen reference index.
type Index struct {
	globe      flagres.Ref
	countries  []countries.Country
	currencies []currencies.Currency

	flags     map[string]flagres.Ref // upper alpha2 -> flag
	byAlpha2  map[string]int
	byAlpha3  map[string]int
	byNumeric map[int]int
	byName    map[string]int

	universe int // position of the world entry, -1 if absent
	degraded []string
}

// Build indexes the currencies by country, then resolves each country in dataset order:
// flag via resolver (misses degrade to the globe), currency via the lowercase alpha-2 join.
// The universe entry ("XX") always carries the globe flag, and the "XX" flag entry exists
// even when the dataset has no such country.
func Build(records []countries.Record, currencyList []currencies.Currency, resolver flagres.Resolver, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	globe := resolver.Globe()

	ix := &Index{
		globe:      globe,
		countries:  make([]countries.Country, 0, len(records)),
		currencies: append([]currencies.Currency(nil), currencyList...),
		flags:      make(map[string]flagres.Ref, len(records)+1),
		byAlpha2:   make(map[string]int, len(records)),
		byAlpha3:   make(map[string]int, len(records)),
		byNumeric:  make(map[int]int, len(records)),
		byName:     make(map[string]int, len(records)),
		universe:   -1,
	}

	// Later records for the same country win the join.
	currencyByAlpha2 := make(map[string]*currencies.Currency, len(ix.currencies))
	for i := range ix.currencies {
		currencyByAlpha2[ix.currencies[i].Key()] = &ix.currencies[i]
	}

	for _, rec := range records {
		alpha2 := strings.ToUpper(rec.Alpha2)

		flag, err := resolver.Resolve(alpha2)
		if rec.IsUniverse() {
			flag = globe
		} else if err != nil || flag == "" {
			logger.Debug("flag not found, using globe", "alpha2", alpha2, "error", err)
			flag = globe
			ix.degraded = append(ix.degraded, alpha2)
		}

		country := rec.Resolve(flag, currencyByAlpha2[strings.ToLower(alpha2)])
		pos := len(ix.countries)
		ix.countries = append(ix.countries, country)

		ix.flags[alpha2] = flag
		ix.byAlpha2[alpha2] = pos
		ix.byAlpha3[strings.ToUpper(rec.Alpha3)] = pos
		ix.byNumeric[rec.ID] = pos
		if key := nameKey(rec.Name); key != "" {
			if _, taken := ix.byName[key]; !taken {
				ix.byName[key] = pos
			}
		}

		if rec.IsUniverse() {
			ix.universe = pos
		}
	}

	ix.flags[countries.UniverseAlpha2] = globe

	return ix
}

// IsGlobeAlias reports whether identifier is one of GlobeAliases, ignoring case.
func IsGlobeAlias(identifier string) bool {
	for _, alias := range GlobeAliases {
		if strings.EqualFold(identifier, alias) {
			return true
		}
	}
	return false
}

// Globe returns the fallback flag.
func (ix *Index) Globe() flagres.Ref {
	return ix.globe
}

// LookupFlag resolves identifier to a flag and reports which table matched.
// Aliases are checked first, then alpha-2, alpha-3, numeric code and name.
// Unknown identifiers return the globe with MatchNone.
func (ix *Index) LookupFlag(identifier string) (flagres.Ref, Match) {
	id := strings.TrimSpace(identifier)
	if IsGlobeAlias(id) {
		return ix.globe, MatchAlias
	}
	if ref, ok := ix.flags[strings.ToUpper(id)]; ok {
		return ref, MatchAlpha2
	}
	pos, match := ix.position(id)
	if match == MatchNone {
		return ix.globe, MatchNone
	}
	return ix.countries[pos].Flag(), match
}

// Flag resolves identifier to a flag, falling back to the globe.
func (ix *Index) Flag(identifier string) flagres.Ref {
	ref, _ := ix.LookupFlag(identifier)
	return ref
}

// Flags resolves every identifier, preserving order and duplicates.
func (ix *Index) Flags(identifiers []string) []flagres.Ref {
	refs := make([]flagres.Ref, len(identifiers))
	for i, id := range identifiers {
		refs[i] = ix.Flag(id)
	}
	return refs
}

// Country returns the country for any identifier. Globe aliases return the
// universe entry when the dataset has one.
func (ix *Index) Country(identifier string) (countries.Country, bool) {
	id := strings.TrimSpace(identifier)
	if IsGlobeAlias(id) {
		return ix.Universe()
	}
	pos, match := ix.position(id)
	if match == MatchNone {
		return countries.Country{}, false
	}
	return ix.countries[pos], true
}

// CurrencyOf returns the currency linked to the country matching identifier.
func (ix *Index) CurrencyOf(identifier string) (currencies.Currency, bool) {
	c, ok := ix.Country(identifier)
	if !ok {
		return currencies.Currency{}, false
	}
	return c.Currency()
}

// Universe returns the world entry, if the dataset has one.
func (ix *Index) Universe() (countries.Country, bool) {
	if ix.universe < 0 {
		return countries.Country{}, false
	}
	return ix.countries[ix.universe], true
}

// Countries returns all countries in dataset order.
func (ix *Index) Countries() []countries.Country {
	return append([]countries.Country(nil), ix.countries...)
}

// Currencies returns every loaded currency in dataset order, linked or not.
func (ix *Index) Currencies() []currencies.Currency {
	return append([]currencies.Currency(nil), ix.currencies...)
}

// CountryCodes returns the sorted upper-case alpha-2 codes in the flag table,
// including "XX".
func (ix *Index) CountryCodes() []string {
	codes := make([]string, 0, len(ix.flags))
	for code := range ix.flags {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Degraded returns the alpha-2 codes whose flag fell back to the globe.
func (ix *Index) Degraded() []string {
	return append([]string(nil), ix.degraded...)
}

// Len returns the number of indexed countries.
func (ix *Index) Len() int {
	return len(ix.countries)
}

func (ix *Index) position(id string) (int, Match) {
	if id == "" {
		return 0, MatchNone
	}
	upper := strings.ToUpper(id)
	if pos, ok := ix.byAlpha2[upper]; ok {
		return pos, MatchAlpha2
	}
	if pos, ok := ix.byAlpha3[upper]; ok {
		return pos, MatchAlpha3
	}
	if isDigits(id) {
		if n, err := strconv.Atoi(id); err == nil {
			if pos, ok := ix.byNumeric[n]; ok {
				return pos, MatchNumeric
			}
		}
	}
	if pos, ok := ix.byName[nameKey(id)]; ok {
		return pos, MatchName
	}
	return 0, MatchNone
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
