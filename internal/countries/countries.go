// Package countries provides ISO-3166 country records and their parser.
package countries

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hightemp/countrydata/internal/dataset"
)

// UniverseAlpha2 is the reserved alpha-2 code of the synthetic "world" entry.
const UniverseAlpha2 = "XX"

// Record is a country as parsed from the dataset, before flag and currency resolution.
type Record struct {
	ID         int // ISO 3166-1 numeric
	Alpha2     string
	Alpha3     string
	Name       string
	Capital    string
	Area       float64 // km²
	Population int64
	Continent  string
}

// rawRecord mirrors the on-disk JSON shape where every field is a string.
type rawRecord struct {
	ID         string `json:"id"`
	Alpha2     string `json:"alpha2"`
	Alpha3     string `json:"alpha3"`
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Area       string `json:"area"`
	Population string `json:"population"`
	Continent  string `json:"continent"`
}

// NumericCode returns the zero-padded three digit numeric code.
func (r Record) NumericCode() string {
	return fmt.Sprintf("%03d", r.ID)
}

// IsUniverse reports whether the record is the synthetic world entry.
func (r Record) IsUniverse() bool {
	return strings.EqualFold(r.Alpha2, UniverseAlpha2)
}

// MarshalJSON encodes the record in the dataset's string-valued shape.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawRecord{
		ID:         r.NumericCode(),
		Alpha2:     r.Alpha2,
		Alpha3:     r.Alpha3,
		Name:       r.Name,
		Capital:    r.Capital,
		Area:       formatArea(r.Area),
		Population: FormatPopulation(r.Population),
		Continent:  r.Continent,
	})
}

// Parse decodes a JSON array of country records.
// Codes are upper-cased; numeric fields are converted. Any failure, including duplicate
// codes, is returned as a *dataset.FormatError.
func Parse(data []byte) ([]Record, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, dataset.NewFormatError(dataset.Countries, -1, err)
	}
	if raws == nil {
		return nil, dataset.NewFormatError(dataset.Countries, -1, dataset.ErrNotArray)
	}

	records := make([]Record, 0, len(raws))
	seenID := make(map[int]bool, len(raws))
	seenAlpha2 := make(map[string]bool, len(raws))
	seenAlpha3 := make(map[string]bool, len(raws))

	for i, raw := range raws {
		rec, err := raw.toRecord()
		if err != nil {
			return nil, dataset.NewFormatError(dataset.Countries, i, err)
		}

		switch {
		case seenID[rec.ID]:
			err = fmt.Errorf("duplicate numeric code %s", rec.NumericCode())
		case seenAlpha2[rec.Alpha2]:
			err = fmt.Errorf("duplicate alpha2 %s", rec.Alpha2)
		case seenAlpha3[rec.Alpha3]:
			err = fmt.Errorf("duplicate alpha3 %s", rec.Alpha3)
		}
		if err != nil {
			return nil, dataset.NewFormatError(dataset.Countries, i, err)
		}
		seenID[rec.ID] = true
		seenAlpha2[rec.Alpha2] = true
		seenAlpha3[rec.Alpha3] = true

		records = append(records, rec)
	}

	return records, nil
}

func (raw rawRecord) toRecord() (Record, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw.ID))
	if err != nil || id < 0 {
		return Record{}, fmt.Errorf("invalid numeric code %q", raw.ID)
	}

	alpha2 := strings.ToUpper(strings.TrimSpace(raw.Alpha2))
	if !dataset.ValidCode(alpha2, 2) {
		return Record{}, fmt.Errorf("invalid alpha2 %q", raw.Alpha2)
	}
	alpha3 := strings.ToUpper(strings.TrimSpace(raw.Alpha3))
	if !dataset.ValidCode(alpha3, 3) {
		return Record{}, fmt.Errorf("invalid alpha3 %q", raw.Alpha3)
	}

	var area float64
	if s := strings.TrimSpace(raw.Area); s != "" {
		area, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, fmt.Errorf("invalid area %q", raw.Area)
		}
	}

	population, err := ParsePopulation(raw.Population)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:         id,
		Alpha2:     alpha2,
		Alpha3:     alpha3,
		Name:       strings.TrimSpace(raw.Name),
		Capital:    strings.TrimSpace(raw.Capital),
		Area:       area,
		Population: population,
		Continent:  strings.ToUpper(strings.TrimSpace(raw.Continent)),
	}, nil
}

// ParsePopulation parses a population count that may contain grouping separators
// ("84,000", "1.380.004.000", "8'654'000"). An empty string is zero.
func ParsePopulation(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '\'', ' ', '_', '\u00a0':
			return -1
		}
		return r
	}, s)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid population %q", s)
	}
	return n, nil
}

// FormatPopulation renders n with comma grouping, the way the dataset stores it.
func FormatPopulation(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatArea(a float64) string {
	if a == float64(int64(a)) {
		return strconv.FormatFloat(a, 'f', 1, 64)
	}
	return strconv.FormatFloat(a, 'f', -1, 64)
}
