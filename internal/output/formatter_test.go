package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hightemp/countrydata/internal/countries"
	"github.com/hightemp/countrydata/internal/currencies"
	"github.com/hightemp/countrydata/internal/dataset"
	"github.com/hightemp/countrydata/internal/flagres"
	"github.com/hightemp/countrydata/internal/world"
)

type fakeDirectory struct {
	countries map[string]countries.Country
}

func (f *fakeDirectory) ResolveFlag(identifier string) flagres.Ref {
	if c, ok := f.Country(identifier); ok {
		return c.Flag()
	}
	return "🌐"
}

func (f *fakeDirectory) Country(identifier string) (countries.Country, bool) {
	c, ok := f.countries[strings.ToUpper(identifier)]
	return c, ok
}

func newFakeDirectory() *fakeDirectory {
	ad := countries.Record{ID: 20, Alpha2: "AD", Alpha3: "AND", Name: "Andorra"}
	aq := countries.Record{ID: 10, Alpha2: "AQ", Alpha3: "ATA", Name: "Antarctica"}
	return &fakeDirectory{countries: map[string]countries.Country{
		"AD": ad.Resolve("🇦🇩", &currencies.Currency{Country: "AD", Name: "Euro", Code: "EUR", Symbol: "€"}),
		"AQ": aq.Resolve("🇦🇶", nil),
	}}
}

func TestLookup(t *testing.T) {
	d := newFakeDirectory()

	r := Lookup(d, " ad ")
	if r.Identifier != "ad" {
		t.Errorf("Identifier = %q, expected ad", r.Identifier)
	}
	if r.Flag != "🇦🇩" || r.Alpha2 != "AD" || r.Alpha3 != "AND" || r.Name != "Andorra" {
		t.Errorf("unexpected result %+v", r)
	}
	if r.Currency != "EUR" {
		t.Errorf("Currency = %q, expected EUR", r.Currency)
	}
	if r.Fallback {
		t.Error("Known country should not be a fallback")
	}

	unknown := Lookup(d, "atlantis")
	if !unknown.Fallback || unknown.Flag != "🌐" || unknown.Alpha2 != "" {
		t.Errorf("unexpected fallback result %+v", unknown)
	}
}

func TestLookupGlobeAliasFallback(t *testing.T) {
	const andorra = `{"id": "020", "alpha2": "AD", "alpha3": "AND", "name": "Andorra"}`
	const universe = `{"id": "999", "alpha2": "XX", "alpha3": "XXX", "name": "World"}`

	tests := []struct {
		name     string
		data     string
		fallback bool
	}{
		{"with universe record", "[" + andorra + "," + universe + "]", false},
		{"without universe record", "[" + andorra + "]", true},
	}

	for _, tc := range tests {
		d := world.New(flagres.NewEmojiResolver())
		if err := d.Initialize(dataset.Static([]byte(tc.data), []byte(`[]`))); err != nil {
			t.Fatalf("%s: Initialize failed: %v", tc.name, err)
		}

		r := Lookup(d, "world")
		if r.Fallback != tc.fallback {
			t.Errorf("%s: Fallback = %v, expected %v", tc.name, r.Fallback, tc.fallback)
		}
		if r.Flag != flagres.GlobeEmoji {
			t.Errorf("%s: Flag = %q, expected globe", tc.name, r.Flag)
		}
	}
}

func TestLookupResultFormatText(t *testing.T) {
	result := Lookup(newFakeDirectory(), "AD")

	text := result.FormatText()

	parts := strings.Split(text, "\t")
	if len(parts) != 5 {
		t.Fatalf("Expected 5 tab-separated parts, got %d", len(parts))
	}
	expected := []string{"AD", "🇦🇩", "AD", "Andorra", "EUR"}
	for i := range expected {
		if parts[i] != expected[i] {
			t.Errorf("part %d = %s, expected %s", i, parts[i], expected[i])
		}
	}
}

func TestLookupResultFormatTextNoCurrency(t *testing.T) {
	text := Lookup(newFakeDirectory(), "aq").FormatText()

	if !strings.HasSuffix(text, "\t-") {
		t.Errorf("Missing currency should show '-', got %q", text)
	}
}

func TestLookupResultFormatTextFallback(t *testing.T) {
	text := Lookup(newFakeDirectory(), "zz").FormatText()

	if text != "zz\t🌐\t-\t-\t-" {
		t.Errorf("FormatText() = %q", text)
	}
}

func TestLookupResultFormatJSON(t *testing.T) {
	result := Lookup(newFakeDirectory(), "AD")
	result.Suggestions = nil

	jsonStr, err := result.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if parsed["identifier"] != "AD" {
		t.Errorf("identifier = %v, expected AD", parsed["identifier"])
	}
	if parsed["flag"] != "🇦🇩" {
		t.Errorf("flag = %v", parsed["flag"])
	}
	if parsed["fallback"] != false {
		t.Errorf("fallback = %v, expected false", parsed["fallback"])
	}
	if _, ok := parsed["suggestions"]; ok {
		t.Error("suggestions should be omitted when empty")
	}
}

func TestBatchResultFormatText(t *testing.T) {
	d := newFakeDirectory()
	batch := &BatchResult{
		Results: []*LookupResult{Lookup(d, "AD"), Lookup(d, "zz"), Lookup(d, "AD")},
	}

	lines := strings.Split(batch.FormatText(), "\n")

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "AD\t") || !strings.HasPrefix(lines[1], "zz\t") {
		t.Errorf("lines out of order: %q", lines)
	}
	if lines[0] != lines[2] {
		t.Error("Duplicate identifiers should format identically")
	}
}

func TestBatchResultFormatJSON(t *testing.T) {
	batch := &BatchResult{Results: []*LookupResult{Lookup(newFakeDirectory(), "AD")}}

	jsonStr, err := batch.FormatJSON()
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		t.Fatalf("Invalid JSON array: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("Expected 1 result, got %d", len(parsed))
	}

	empty, err := (&BatchResult{}).FormatJSON()
	if err != nil || empty != "[]" {
		t.Errorf("empty batch = %q, %v", empty, err)
	}
}

func TestFormatSuggestions(t *testing.T) {
	if got := FormatSuggestions("andora", nil); got != "" {
		t.Errorf("Expected no hint, got %q", got)
	}

	got := FormatSuggestions("andora", []string{"AD", "AO"})
	if !strings.Contains(got, "andora") || !strings.Contains(got, "AD, AO") {
		t.Errorf("unexpected hint %q", got)
	}
}

func TestFormatCountries(t *testing.T) {
	d := newFakeDirectory()
	text := FormatCountries([]countries.Country{d.countries["AD"], d.countries["AQ"]})

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "AD\tAND\t020\tAndorra\t🇦🇩\tEUR" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "AQ\tATA\t010\tAntarctica\t🇦🇶\t-" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatCurrencies(t *testing.T) {
	text := FormatCurrencies([]currencies.Currency{
		{Country: "AD", Name: "Euro", Code: "EUR", Symbol: "€"},
		{Country: "ZZ", Name: "Nothing", Code: "XXX"},
	})

	lines := strings.Split(text, "\n")
	if lines[0] != "AD\tEUR\tEuro\t€" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "ZZ\tXXX\tNothing\t-" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatJSONListing(t *testing.T) {
	d := newFakeDirectory()
	jsonStr, err := FormatJSON([]countries.Country{d.countries["AD"]})
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	if !strings.Contains(jsonStr, `"alpha3": "AND"`) || !strings.Contains(jsonStr, `"code": "EUR"`) {
		t.Errorf("unexpected JSON %s", jsonStr)
	}
}
