// Package snapshot writes and reads exported dataset directories.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hightemp/countrydata/internal/config"
)

// Metadata describes an exported dataset directory.
type Metadata struct {
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	FlagMode        string    `json:"flag_mode,omitempty"`
	CountriesCount  int       `json:"countries_count"`
	CurrenciesCount int       `json:"currencies_count"`
	Countries       []string  `json:"countries"`
	DegradedFlags   []string  `json:"degraded_flags,omitempty"`
}

// MetadataVersion is the current metadata format version.
const MetadataVersion = config.ExportFormatVersion

// NewMetadata creates a new metadata instance.
func NewMetadata(source string) *Metadata {
	return &Metadata{
		Version:   MetadataVersion,
		CreatedAt: time.Now().UTC(),
		Source:    source,
	}
}

// Save writes metadata to a file.
func (m *Metadata) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMetadata loads metadata from a file.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if m.Version > MetadataVersion {
		return nil, fmt.Errorf("metadata version %d is newer than supported version %d", m.Version, MetadataVersion)
	}

	return &m, nil
}
