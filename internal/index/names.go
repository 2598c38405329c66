package index

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameKey folds case and strips combining marks so "Côte d'Ivoire" and
// "cote d'ivoire" share a key.
func nameKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return cases.Fold().String(plain)
}

type suggestion struct {
	alpha2   string
	distance int
}

// Suggest returns up to n alpha-2 codes whose name or codes are closest to query by
// edit distance. Matches further than half the query length are dropped and the
// universe entry is never suggested.
func (ix *Index) Suggest(query string, n int) []string {
	q := nameKey(query)
	if q == "" || n <= 0 {
		return nil
	}
	limit := len([]rune(q))/2 + 1

	var found []suggestion
	for i, c := range ix.countries {
		if i == ix.universe {
			continue
		}
		best := levenshtein.ComputeDistance(q, nameKey(c.Name))
		for _, code := range []string{c.Alpha2, c.Alpha3} {
			if d := levenshtein.ComputeDistance(q, strings.ToLower(code)); d < best {
				best = d
			}
		}
		if best <= limit {
			found = append(found, suggestion{alpha2: c.Alpha2, distance: best})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].alpha2 < found[j].alpha2
	})

	if len(found) > n {
		found = found[:n]
	}
	codes := make([]string, len(found))
	for i, s := range found {
		codes[i] = s.alpha2
	}
	return codes
}
