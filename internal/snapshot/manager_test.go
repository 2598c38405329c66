package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/dataset"
	"github.com/hightemp/countrydata/internal/flagres"
	"github.com/hightemp/countrydata/internal/index"
)

func buildTestIndex(t *testing.T) *index.Index {
	t.Helper()
	loader := dataset.Embedded()

	data, err := loader.LoadCountryRecords()
	if err != nil {
		t.Fatalf("LoadCountryRecords failed: %v", err)
	}
	records, err := countries.Parse(data)
	if err != nil {
		t.Fatalf("countries.Parse failed: %v", err)
	}

	data, err = loader.LoadCurrencyRecords()
	if err != nil {
		t.Fatalf("LoadCurrencyRecords failed: %v", err)
	}
	curs, err := currencies.Parse(data)
	if err != nil {
		t.Fatalf("currencies.Parse failed: %v", err)
	}

	return index.Build(records, curs, flagres.NewEmojiResolver(), nil)
}

func TestManagerExportAndOpen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "countrydata-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := filepath.Join(tmpDir, "export")
	mgr := NewManager(dir)

	if mgr.Exists() {
		t.Error("Export should not exist initially")
	}

	ix := buildTestIndex(t)
	if err := mgr.Export(ix, NewMetadata("bundled")); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !mgr.Exists() {
		t.Fatal("Export should exist after writing")
	}

	meta, loader, err := mgr.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if meta == nil {
		t.Fatal("Expected metadata")
	}
	if meta.CountriesCount != ix.Len() {
		t.Errorf("CountriesCount = %d, expected %d", meta.CountriesCount, ix.Len())
	}
	if meta.CurrenciesCount != len(ix.Currencies()) {
		t.Errorf("CurrenciesCount = %d, expected %d", meta.CurrenciesCount, len(ix.Currencies()))
	}

	// The exported files must parse back into the same records.
	data, err := loader.LoadCountryRecords()
	if err != nil {
		t.Fatalf("LoadCountryRecords failed: %v", err)
	}
	records, err := countries.Parse(data)
	if err != nil {
		t.Fatalf("Parse of exported countries failed: %v", err)
	}
	original := ix.Countries()
	if len(records) != len(original) {
		t.Fatalf("Exported %d countries, expected %d", len(records), len(original))
	}
	for i := range records {
		if records[i] != original[i].Record {
			t.Errorf("record %d = %+v, expected %+v", i, records[i], original[i].Record)
		}
	}

	data, err = loader.LoadCurrencyRecords()
	if err != nil {
		t.Fatalf("LoadCurrencyRecords failed: %v", err)
	}
	curs, err := currencies.Parse(data)
	if err != nil {
		t.Fatalf("Parse of exported currencies failed: %v", err)
	}
	if len(curs) != len(ix.Currencies()) {
		t.Errorf("Exported %d currencies, expected %d", len(curs), len(ix.Currencies()))
	}
}

func TestManagerOpenWithoutMetadata(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "countries.json"), []byte("[]"), 0644)
	os.WriteFile(filepath.Join(dir, "currencies.json"), []byte("[]"), 0644)

	meta, loader, err := NewManager(dir).Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if meta != nil {
		t.Errorf("Expected nil metadata, got %+v", meta)
	}
	if loader.Source() != dir {
		t.Errorf("Source() = %s, expected %s", loader.Source(), dir)
	}
}

func TestManagerOpenMissingFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "countries.json"), []byte("[]"), 0644)

	if _, _, err := NewManager(dir).Open(); err == nil {
		t.Error("Expected error when currencies.json is missing")
	}
}

func TestManagerOpenNewerMetadata(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "countries.json"), []byte("[]"), 0644)
	os.WriteFile(filepath.Join(dir, "currencies.json"), []byte("[]"), 0644)

	meta := NewMetadata("test")
	meta.Version = MetadataVersion + 1
	if err := meta.Save(filepath.Join(dir, "metadata.json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, _, err := NewManager(dir).Open(); err == nil {
		t.Error("Expected error for unsupported metadata version")
	}
}

func TestMetadataSaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "countrydata-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	metaPath := filepath.Join(tmpDir, "metadata.json")

	meta := NewMetadata("bundled")
	meta.FlagMode = "emoji"
	meta.CountriesCount = 250
	meta.CurrenciesCount = 248
	meta.Countries = []string{"US", "GB", "DE"}
	meta.DegradedFlags = []string{"AQ"}

	if err := meta.Save(metaPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadMetadata(metaPath)
	if err != nil {
		t.Fatalf("LoadMetadata failed: %v", err)
	}

	if loaded.Source != meta.Source {
		t.Errorf("Source = %s, expected %s", loaded.Source, meta.Source)
	}
	if loaded.CountriesCount != meta.CountriesCount {
		t.Errorf("CountriesCount = %d, expected %d", loaded.CountriesCount, meta.CountriesCount)
	}
	if loaded.CurrenciesCount != meta.CurrenciesCount {
		t.Errorf("CurrenciesCount = %d, expected %d", loaded.CurrenciesCount, meta.CurrenciesCount)
	}
	if len(loaded.Countries) != 3 || len(loaded.DegradedFlags) != 1 {
		t.Errorf("lists not preserved: %+v", loaded)
	}
}

func TestLoadMetadataInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	os.WriteFile(path, []byte("{broken"), 0644)

	if _, err := LoadMetadata(path); err == nil {
		t.Error("Expected error for invalid metadata")
	}
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("bundled")

	if meta.Version != MetadataVersion {
		t.Errorf("Version = %d, expected %d", meta.Version, MetadataVersion)
	}

	if meta.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if time.Since(meta.CreatedAt) > time.Minute {
		t.Error("CreatedAt should be recent")
	}

	if meta.Source != "bundled" {
		t.Errorf("Source = %s, expected bundled", meta.Source)
	}
}

func TestManagerExportEmptyCurrencies(t *testing.T) {
	records, err := countries.Parse([]byte(`[{"id": "020", "alpha2": "AD", "alpha3": "AND", "name": "Andorra"}]`))
	if err != nil {
		t.Fatalf("countries.Parse failed: %v", err)
	}
	ix := index.Build(records, nil, flagres.NewEmojiResolver(), nil)

	mgr := NewManager(t.TempDir())
	if err := mgr.Export(ix, NewMetadata("test")); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	_, loader, err := mgr.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := loader.LoadCurrencyRecords()
	if err != nil {
		t.Fatalf("LoadCurrencyRecords failed: %v", err)
	}
	curs, err := currencies.Parse(data)
	if err != nil {
		t.Fatalf("Exported currencies should parse back: %v", err)
	}
	if len(curs) != 0 {
		t.Errorf("Expected no currencies, got %d", len(curs))
	}
}
