package dag

import (
	"maps"
	"slices"
)

// Set is an unordered collection of node names.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	s.Add(names...)
	return s
}

// Add inserts names into the set.
func (s Set) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Remove deletes name from the set.
func (s Set) Remove(name string) { delete(s, name) }

// Len returns the number of names in the set.
func (s Set) Len() int { return len(s) }

// Sorted returns the names in ascending order. A nil or empty set yields an
// empty, non-nil slice.
func (s Set) Sorted() []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set { return maps.Clone(s) }

// Intersect returns the names present in every given set.
// With no sets it returns an empty set.
func Intersect(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	// Iterate the smallest set; membership checks go against the rest.
	smallest := slices.MinFunc(sets, func(a, b Set) int { return len(a) - len(b) })
	out := Set{}
	for name := range smallest {
		in := true
		for _, s := range sets {
			if !s.Has(name) {
				in = false
				break
			}
		}
		if in {
			out.Add(name)
		}
	}
	return out
}
