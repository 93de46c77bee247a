package domain

import (
	"slices"
)

// DictionarySet is a set of dictionary IDs.
type DictionarySet map[string]struct{}

// NewDictionarySet builds a set from ids, normalizing each and ignoring blanks.
func NewDictionarySet(ids ...string) DictionarySet {
	s := make(DictionarySet, len(ids))
	for _, id := range ids {
		id = NormalizeDictionaryID(id)
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. A nil set contains nothing.
func (s DictionarySet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the IDs in sorted order.
func (s DictionarySet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// LookupSettings are the user preferences that shape a single lookup.
// They are passed by value and never modified during the call.
type LookupSettings struct {
	DisabledDictionaries DictionarySet
	ShouldDeconjugate    bool
	BilingualFirst       bool
}
