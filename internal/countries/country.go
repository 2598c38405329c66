package countries

import (
	"encoding/json"
	"fmt"

	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/flagres"
)

// Country is a Record with its flag and currency resolved. Values are immutable:
// the flag and currency can only be set through Record.Resolve.
type Country struct {
	Record
	flag     flagres.Ref
	currency *currencies.Currency
}

// Resolve builds the resolved Country. A nil currency leaves the country without one.
func (r Record) Resolve(flag flagres.Ref, currency *currencies.Currency) Country {
	c := Country{Record: r, flag: flag}
	if currency != nil {
		cur := *currency
		c.currency = &cur
	}
	return c
}

// Flag returns the resolved flag.
func (c Country) Flag() flagres.Ref {
	return c.flag
}

// Currency returns the linked currency, if any.
func (c Country) Currency() (currencies.Currency, bool) {
	if c.currency == nil {
		return currencies.Currency{}, false
	}
	return *c.currency, true
}

// Equal reports whether both countries have the same numeric code, alpha-3 code and flag.
// Two resolutions of one record with different flags are not equal.
func (c Country) Equal(other Country) bool {
	return c.ID == other.ID && c.Alpha3 == other.Alpha3 && c.flag == other.flag
}

func (c Country) String() string {
	return fmt.Sprintf("Country{id=%s, alpha3=%s}", c.NumericCode(), c.Alpha3)
}

type countryJSON struct {
	ID         string               `json:"id"`
	Alpha2     string               `json:"alpha2"`
	Alpha3     string               `json:"alpha3"`
	Name       string               `json:"name"`
	Capital    string               `json:"capital,omitempty"`
	Area       float64              `json:"area"`
	Population int64                `json:"population"`
	Continent  string               `json:"continent,omitempty"`
	Flag       flagres.Ref          `json:"flag"`
	Currency   *currencies.Currency `json:"currency,omitempty"`
}

// MarshalJSON encodes the resolved country with typed numeric fields.
func (c Country) MarshalJSON() ([]byte, error) {
	return json.Marshal(countryJSON{
		ID:         c.NumericCode(),
		Alpha2:     c.Alpha2,
		Alpha3:     c.Alpha3,
		Name:       c.Name,
		Capital:    c.Capital,
		Area:       c.Area,
		Population: c.Population,
		Continent:  c.Continent,
		Flag:       c.flag,
		Currency:   c.currency,
	})
}
