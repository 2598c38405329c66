// Package config provides configuration and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the per-user configuration directory name.
	ConfigDirName = ".countrydata"

	// CountriesFileName is the country dataset file name.
	CountriesFileName = "countries.json"

	// CurrenciesFileName is the currency dataset file name.
	CurrenciesFileName = "currencies.json"

	// MetadataFileName is the export metadata file name.
	MetadataFileName = "metadata.json"

	// RemapFileName is the default flag remap file name inside the config dir.
	RemapFileName = "remap.yaml"

	// FlagModeEmoji renders flags as regional indicator emoji.
	FlagModeEmoji = "emoji"

	// FlagModeAssets resolves flags to image files in a directory.
	FlagModeAssets = "assets"

	// DefaultFlagExt is the default flag asset extension.
	DefaultFlagExt = "png"

	// DefaultListenAddr is the default HTTP listen address for serve.
	DefaultListenAddr = ":8080"

	// DefaultBatchConcurrency is the default worker count for batch formatting.
	DefaultBatchConcurrency = 4

	// MaxBatchConcurrency caps batch workers.
	MaxBatchConcurrency = 16

	// DefaultSuggestions is how many "did you mean" hints the CLI prints.
	DefaultSuggestions = 3

	// ExportFormatVersion is the current export metadata format version.
	ExportFormatVersion = 1
)

// Config holds runtime configuration.
type Config struct {
	DataDir     string
	FlagMode    string
	FlagDir     string
	FlagExt     string
	RemapFile   string
	LogLevel    string
	JSONOutput  bool
	Concurrency int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FlagMode:    FlagModeEmoji,
		FlagExt:     DefaultFlagExt,
		LogLevel:    "warn",
		Concurrency: DefaultBatchConcurrency,
	}
}

// UsesBundledData reports whether the embedded datasets should be loaded.
func (c *Config) UsesBundledData() bool {
	return c.DataDir == ""
}

// DefaultConfigDir returns the default per-user configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultRemapPath returns the remap file path inside the config dir.
func DefaultRemapPath() string {
	return filepath.Join(DefaultConfigDir(), RemapFileName)
}

// CountriesPath returns the country dataset path inside a data dir.
func CountriesPath(dataDir string) string {
	return filepath.Join(dataDir, CountriesFileName)
}

// CurrenciesPath returns the currency dataset path inside a data dir.
func CurrenciesPath(dataDir string) string {
	return filepath.Join(dataDir, CurrenciesFileName)
}

// MetadataPath returns the metadata file path inside a data dir.
func MetadataPath(dataDir string) string {
	return filepath.Join(dataDir, MetadataFileName)
}

// ClampConcurrency bounds n to [1, MaxBatchConcurrency].
func ClampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxBatchConcurrency {
		return MaxBatchConcurrency
	}
	return n
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
