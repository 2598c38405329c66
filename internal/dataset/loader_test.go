package dataset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedLoader(t *testing.T) {
	l := Embedded()

	countries, err := l.LoadCountryRecords()
	if err != nil {
		t.Fatalf("LoadCountryRecords failed: %v", err)
	}
	currencies, err := l.LoadCurrencyRecords()
	if err != nil {
		t.Fatalf("LoadCurrencyRecords failed: %v", err)
	}

	var c, cur []map[string]string
	if err := json.Unmarshal(countries, &c); err != nil {
		t.Fatalf("bundled countries are not a JSON array: %v", err)
	}
	if err := json.Unmarshal(currencies, &cur); err != nil {
		t.Fatalf("bundled currencies are not a JSON array: %v", err)
	}

	if len(c) < 240 {
		t.Errorf("Expected at least 240 countries, got %d", len(c))
	}
	if len(cur) < 200 {
		t.Errorf("Expected at least 200 currencies, got %d", len(cur))
	}
	if l.Source() != "bundled" {
		t.Errorf("Source() = %q, expected bundled", l.Source())
	}
}

func TestDirLoader(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "countrydata-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	os.WriteFile(filepath.Join(tmpDir, "countries.json"), []byte(`[{"id":"020"}]`), 0644)
	os.WriteFile(filepath.Join(tmpDir, "currencies.json"), []byte(`[]`), 0644)

	l := Dir(tmpDir)
	data, err := l.LoadCountryRecords()
	if err != nil {
		t.Fatalf("LoadCountryRecords failed: %v", err)
	}
	if string(data) != `[{"id":"020"}]` {
		t.Errorf("LoadCountryRecords = %s", data)
	}
	if _, err := l.LoadCurrencyRecords(); err != nil {
		t.Fatalf("LoadCurrencyRecords failed: %v", err)
	}
}

func TestFSLoaderMissingFile(t *testing.T) {
	l := FS(fstest.MapFS{
		"countries.json": {Data: []byte(`[]`)},
	})

	_, err := l.LoadCurrencyRecords()
	if err == nil {
		t.Fatal("Expected error for missing currencies.json")
	}
	if errors.Is(err, ErrDataFormat) {
		t.Error("A read failure must not be reported as a format error")
	}
	if !strings.Contains(err.Error(), "currencies") {
		t.Errorf("Error should name the dataset: %v", err)
	}
}

func TestStaticLoader(t *testing.T) {
	l := Static([]byte("a"), []byte("b"))

	c, _ := l.LoadCountryRecords()
	cur, _ := l.LoadCurrencyRecords()
	if string(c) != "a" || string(cur) != "b" {
		t.Errorf("Static loader returned %q, %q", c, cur)
	}
}

func TestFormatError(t *testing.T) {
	cause := errors.New("bad alpha2")
	err := error(NewFormatError(Countries, 3, cause))

	if !errors.Is(err, ErrDataFormat) {
		t.Error("FormatError should match ErrDataFormat")
	}
	if !errors.Is(err, cause) {
		t.Error("FormatError should unwrap to its cause")
	}

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As should find *FormatError")
	}
	if fe.Dataset != Countries || fe.Record != 3 {
		t.Errorf("FormatError = %+v", fe)
	}
	if !strings.Contains(err.Error(), "record 3") {
		t.Errorf("Error() = %q, expected record position", err.Error())
	}

	whole := NewFormatError(Currencies, -1, cause)
	if strings.Contains(whole.Error(), "record") {
		t.Errorf("Error() = %q, expected no record position", whole.Error())
	}
}
