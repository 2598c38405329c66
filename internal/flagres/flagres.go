// Package flagres maps country codes to displayable flag resources.
//
// A Resolver turns an ISO 3166-1 alpha-2 code into an opaque Ref. Refs are not
// interpreted by the index; they may be emoji, asset paths or any other token the
// consuming application understands. Every resolver also names a globe Ref used as
// the fallback for unknown input and for the "world" entry.
package flagres

import (
	"errors"
	"strings"
)

// Ref identifies a displayable flag asset.
type Ref string

// ErrNotFound is returned when a resolver has no flag for a code.
var ErrNotFound = errors.New("flagres: flag not found")

// Resolver resolves flag resources for alpha-2 codes.
type Resolver interface {
	// Resolve returns the flag for alpha2, or an error wrapping ErrNotFound.
	Resolve(alpha2 string) (Ref, error)
	// Globe returns the distinguished fallback flag.
	Globe() Ref
}

// StaticResolver serves flags from a fixed table keyed by lowercase alpha-2.
type StaticResolver struct {
	globe Ref
	refs  map[string]Ref
}

// NewStaticResolver returns a resolver over refs. Keys are matched case-insensitively.
func NewStaticResolver(globe Ref, refs map[string]Ref) *StaticResolver {
	table := make(map[string]Ref, len(refs))
	for k, v := range refs {
		table[strings.ToLower(k)] = v
	}
	return &StaticResolver{globe: globe, refs: table}
}

// Resolve returns the table entry for alpha2.
func (r *StaticResolver) Resolve(alpha2 string) (Ref, error) {
	ref, ok := r.refs[strings.ToLower(alpha2)]
	if !ok {
		return "", ErrNotFound
	}
	return ref, nil
}

// Globe returns the configured globe flag.
func (r *StaticResolver) Globe() Ref {
	return r.globe
}
