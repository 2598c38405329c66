// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/flagres"
)

// Directory is the read side of the world directory used to build results.
type Directory interface {
	ResolveFlag(identifier string) flagres.Ref
	Country(identifier string) (countries.Country, bool)
}

// LookupResult contains the result of a flag lookup.
type LookupResult struct {
	Identifier  string      `json:"identifier"`
	Flag        flagres.Ref `json:"flag"`
	Alpha2      string      `json:"alpha2,omitempty"`
	Alpha3      string      `json:"alpha3,omitempty"`
	Name        string      `json:"name,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Fallback    bool        `json:"fallback"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// Lookup resolves identifier against d. Fallback is set when no country record matched.
// A globe alias matches the universe record when the dataset has one, so it only falls
// back without that record.
func Lookup(d Directory, identifier string) *LookupResult {
	id := strings.TrimSpace(identifier)
	r := &LookupResult{
		Identifier: id,
		Flag:       d.ResolveFlag(id),
	}

	c, ok := d.Country(id)
	if !ok {
		r.Fallback = true
		return r
	}
	r.Alpha2 = c.Alpha2
	r.Alpha3 = c.Alpha3
	r.Name = c.Name
	if cur, ok := c.Currency(); ok {
		r.Currency = cur.Code
	}
	return r
}

// FormatText formats result as tab-separated text.
func (r *LookupResult) FormatText() string {
	if r.Fallback && r.Alpha2 == "" {
		return fmt.Sprintf("%s\t%s\t-\t-\t-", r.Identifier, r.Flag)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
		r.Identifier,
		r.Flag,
		r.Alpha2,
		r.Name,
		dash(r.Currency),
	)
}

// FormatJSON formats result as JSON.
func (r *LookupResult) FormatJSON() (string, error) {
	return formatJSON(r)
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*LookupResult
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	if b.Results == nil {
		return "[]", nil
	}
	return formatJSON(b.Results)
}

// FormatSuggestions renders a "did you mean" hint, or "" when there is nothing to suggest.
func FormatSuggestions(identifier string, codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: unknown identifier, did you mean %s?", identifier, strings.Join(codes, ", "))
}

// CountryLine formats a country as alpha2, alpha3, numeric code, name, flag and currency.
func CountryLine(c countries.Country) string {
	code := ""
	if cur, ok := c.Currency(); ok {
		code = cur.Code
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
		c.Alpha2,
		c.Alpha3,
		c.NumericCode(),
		c.Name,
		c.Flag(),
		dash(code),
	)
}

// FormatCountries formats countries one per line.
func FormatCountries(list []countries.Country) string {
	lines := make([]string, len(list))
	for i, c := range list {
		lines[i] = CountryLine(c)
	}
	return strings.Join(lines, "\n")
}

// CurrencyLine formats a currency as country, code, name and symbol.
func CurrencyLine(c currencies.Currency) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s", c.Country, c.Code, c.Name, dash(c.Symbol))
}

// FormatCurrencies formats currencies one per line.
func FormatCurrencies(list []currencies.Currency) string {
	lines := make([]string, len(list))
	for i, c := range list {
		lines[i] = CurrencyLine(c)
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats any listing as indented JSON.
func FormatJSON(v any) (string, error) {
	return formatJSON(v)
}

func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
