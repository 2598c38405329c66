// Package currencies decodes currency reference records.
package currencies

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/countrydata/internal/dataset"
)

// Currency is the currency used by one country.
type Currency struct {
	Country string `json:"country"` // ISO 3166-1 alpha-2 of the owning country
	Name    string `json:"name"`
	Code    string `json:"code"` // ISO 4217 alphabetic code
	Symbol  string `json:"symbol"`
}

// Key returns the lowercase alpha-2 code used to link the currency to its country.
func (c Currency) Key() string {
	return strings.ToLower(c.Country)
}

func (c Currency) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Code, c.Name, c.Country)
}

// Parse decodes a JSON array of currency records.
// Any decoding or validation failure is returned as a *dataset.FormatError.
func Parse(data []byte) ([]Currency, error) {
	var records []Currency
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, dataset.NewFormatError(dataset.Currencies, -1, err)
	}
	if records == nil {
		return nil, dataset.NewFormatError(dataset.Currencies, -1, dataset.ErrNotArray)
	}

	for i := range records {
		rec := &records[i]
		rec.Country = strings.TrimSpace(rec.Country)
		rec.Code = strings.ToUpper(strings.TrimSpace(rec.Code))
		if !dataset.ValidCode(rec.Country, 2) {
			return nil, dataset.NewFormatError(dataset.Currencies, i,
				fmt.Errorf("invalid country code %q", rec.Country))
		}
	}

	return records, nil
}
