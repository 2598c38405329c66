package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hightemp/countrydata/internal/config"
	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/dataset"
	"github.com/hightemp/countrydata/internal/index"
)

// Manager handles an exported dataset directory.
type Manager struct {
	dir string
}

// NewManager creates a new snapshot manager for dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the managed directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Exists reports whether both dataset files are present.
func (m *Manager) Exists() bool {
	return config.FileExists(config.CountriesPath(m.dir)) &&
		config.FileExists(config.CurrenciesPath(m.dir))
}

// Export writes the indexed countries and currencies in the dataset shape, followed
// by metadata. Metadata is written last so a directory with metadata is complete.
func (m *Manager) Export(ix *index.Index, meta *Metadata) error {
	if err := config.EnsureDir(m.dir); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	list := ix.Countries()
	records := make([]countries.Record, len(list))
	codes := make([]string, 0, len(list))
	for i, c := range list {
		records[i] = c.Record
		codes = append(codes, c.Alpha2)
	}
	// Empty lists are written as [], which the parsers require.
	curs := append([]currencies.Currency{}, ix.Currencies()...)

	if err := writeJSON(config.CountriesPath(m.dir), records); err != nil {
		return fmt.Errorf("write countries: %w", err)
	}
	if err := writeJSON(config.CurrenciesPath(m.dir), curs); err != nil {
		return fmt.Errorf("write currencies: %w", err)
	}

	meta.CountriesCount = len(records)
	meta.CurrenciesCount = len(curs)
	meta.Countries = codes
	meta.DegradedFlags = ix.Degraded()

	if err := meta.Save(config.MetadataPath(m.dir)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Open checks the directory and returns a loader over it. Metadata is optional:
// hand-written data directories have none, and nil is returned for it.
func (m *Manager) Open() (*Metadata, *dataset.FSLoader, error) {
	if !m.Exists() {
		return nil, nil, fmt.Errorf("data dir %s must contain %s and %s",
			m.dir, config.CountriesFileName, config.CurrenciesFileName)
	}

	meta, err := LoadMetadata(config.MetadataPath(m.dir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("load metadata: %w", err)
	}

	return meta, dataset.Dir(m.dir), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
