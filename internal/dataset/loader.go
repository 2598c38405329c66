// Package dataset provides access to the raw country and currency reference data.
package dataset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/hightemp/countrydata/internal/config"
)

//go:embed data/countries.json data/currencies.json
var bundled embed.FS

// Loader returns the raw JSON text of both reference datasets.
type Loader interface {
	LoadCountryRecords() ([]byte, error)
	LoadCurrencyRecords() ([]byte, error)
}

// FSLoader reads the datasets from a filesystem using the standard file names.
type FSLoader struct {
	fsys   fs.FS
	source string
}

// Embedded returns a loader for the datasets bundled into the binary.
func Embedded() *FSLoader {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return &FSLoader{fsys: sub, source: "bundled"}
}

// Dir returns a loader reading countries.json and currencies.json from dir.
func Dir(dir string) *FSLoader {
	return &FSLoader{fsys: os.DirFS(dir), source: dir}
}

// FS returns a loader reading the standard file names from fsys.
func FS(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys, source: "fs"}
}

// Source describes where the loader reads from.
func (l *FSLoader) Source() string {
	return l.source
}

// LoadCountryRecords reads the country dataset.
func (l *FSLoader) LoadCountryRecords() ([]byte, error) {
	return l.read(Countries, config.CountriesFileName)
}

// LoadCurrencyRecords reads the currency dataset.
func (l *FSLoader) LoadCurrencyRecords() ([]byte, error) {
	return l.read(Currencies, config.CurrenciesFileName)
}

func (l *FSLoader) read(name, file string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s from %s: %w", name, l.source, err)
	}
	return data, nil
}

// StaticLoader serves datasets held in memory.
type StaticLoader struct {
	countries  []byte
	currencies []byte
}

// Static returns a loader over in-memory dataset text.
func Static(countries, currencies []byte) *StaticLoader {
	return &StaticLoader{countries: countries, currencies: currencies}
}

// LoadCountryRecords returns the country dataset.
func (l *StaticLoader) LoadCountryRecords() ([]byte, error) {
	return l.countries, nil
}

// LoadCurrencyRecords returns the currency dataset.
func (l *StaticLoader) LoadCurrencyRecords() ([]byte, error) {
	return l.currencies, nil
}
