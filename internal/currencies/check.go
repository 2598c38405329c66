package currencies

import (
	"errors"
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Sentinel errors reported by Check.
var (
	ErrUnknownCode    = errors.New("currencies: unknown ISO 4217 code")
	ErrUnknownRegion  = errors.New("currencies: unknown region")
	ErrRegionMismatch = errors.New("currencies: region uses a different currency")
)

// Unit returns the ISO 4217 unit for the currency code.
func (c Currency) Unit() (currency.Unit, error) {
	u, err := currency.ParseISO(c.Code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: %q", ErrUnknownCode, c.Code)
	}
	return u, nil
}

// Check compares a record against CLDR: the code must be a known ISO 4217 unit and,
// when CLDR has tender data for the country, it must match the region's current currency.
func Check(c Currency) error {
	unit, err := c.Unit()
	if err != nil {
		return err
	}

	region, err := language.ParseRegion(c.Country)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, c.Country)
	}

	expected, ok := currency.FromRegion(region)
	if !ok {
		return nil
	}
	if expected != unit {
		return fmt.Errorf("%w: %s uses %s, CLDR lists %s", ErrRegionMismatch, c.Country, unit, expected)
	}
	return nil
}

// CheckAll runs Check over every record and returns the failures keyed by position.
func CheckAll(list []Currency) map[int]error {
	failures := make(map[int]error)
	for i, c := range list {
		if err := Check(c); err != nil {
			failures[i] = err
		}
	}
	return failures
}
