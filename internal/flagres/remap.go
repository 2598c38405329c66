package flagres

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hightemp/countrydata/internal/dataset"
)

// Remap substitutes asset names for alpha-2 codes that collide with reserved
// identifiers in the flag resource namespace. Keys and values are lowercase.
type Remap map[string]string

// DefaultRemap returns the built-in collisions: "do" is a reserved word in the
// drawable namespace the bundled flag set was built for, so its asset is "dominican".
func DefaultRemap() Remap {
	return Remap{"do": "dominican"}
}

// Name returns the asset name for alpha2: the remapped name if one exists,
// otherwise the lowercase code.
func (m Remap) Name(alpha2 string) string {
	key := strings.ToLower(strings.TrimSpace(alpha2))
	if name, ok := m[key]; ok {
		return name
	}
	return key
}

// Merge returns a new Remap with other's entries applied over m.
func (m Remap) Merge(other Remap) Remap {
	out := make(Remap, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Codes returns the remapped alpha-2 codes in sorted order.
func (m Remap) Codes() []string {
	codes := make([]string, 0, len(m))
	for k := range m {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}

// LoadRemap reads a YAML mapping of alpha-2 code to asset name and merges it over
// DefaultRemap. An empty document yields the defaults.
//
//	do: dominican
//	in: india
func LoadRemap(r io.Reader) (Remap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("flagres: read remap: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultRemap(), nil
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("flagres: decode remap: %w", err)
	}

	parsed := make(Remap, len(raw))
	for k, v := range raw {
		code := strings.ToLower(strings.TrimSpace(k))
		name := strings.ToLower(strings.TrimSpace(v))
		if !dataset.ValidCode(code, 2) {
			return nil, fmt.Errorf("flagres: remap key %q is not an alpha-2 code", k)
		}
		if name == "" {
			return nil, fmt.Errorf("flagres: remap for %q has an empty asset name", k)
		}
		parsed[code] = name
	}

	return DefaultRemap().Merge(parsed), nil
}

// LoadRemapFile reads a remap file. A missing file yields the defaults.
func LoadRemapFile(path string) (Remap, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultRemap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("flagres: open remap: %w", err)
	}
	defer f.Close()

	return LoadRemap(f)
}
