// Package deinflect reverses Japanese verb and adjective conjugation.
//
// A Table holds suffix rewrite rules grouped by reason ("past", "negative",
// "-te", ...). Deinflect applies them repeatedly to a word and returns every
// reachable candidate together with the chain of reasons that produced it.
// Tables are immutable once loaded and safe for concurrent use; Deinflect
// itself keeps no state between calls.
package deinflect

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidTable is wrapped by every rule table validation error.
var ErrInvalidTable = errors.New("invalid rule table")

// Tag is a set of word classes encoded as bit flags.
type Tag uint16

const (
	// TagAny is the tag of the original input: its class is unknown, so
	// every rule may apply to it.
	TagAny Tag = 0

	TagV1   Tag = 1 << iota // ichidan verb
	TagV5                   // godan verb
	TagVS                   // suru verb
	TagVK                   // kuru verb
	TagVZ                   // zuru verb
	TagAdjI                 // i-adjective
	TagIru                  // intermediate -te iru form

	// TagWildcard matches any tag.
	TagWildcard Tag = TagV1 | TagV5 | TagVS | TagVK | TagVZ | TagAdjI | TagIru
)

var tagNames = []struct {
	tag  Tag
	name string
}{
	{TagV1, "v1"},
	{TagV5, "v5"},
	{TagVS, "vs"},
	{TagVK, "vk"},
	{TagVZ, "vz"},
	{TagAdjI, "adj-i"},
	{TagIru, "iru"},
}

// ParseTag parses a single tag name. "*" is TagWildcard.
func ParseTag(name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "*" {
		return TagWildcard, nil
	}
	for _, tn := range tagNames {
		if tn.name == name {
			return tn.tag, nil
		}
	}
	return TagAny, fmt.Errorf("%w: unknown tag %q", ErrInvalidTable, name)
}

// ParseTags parses and unions several tag names.
func ParseTags(names []string) (Tag, error) {
	var t Tag
	for _, n := range names {
		p, err := ParseTag(n)
		if err != nil {
			return TagAny, err
		}
		t |= p
	}
	return t, nil
}

// Names returns the tag names contained in t, in declaration order.
func (t Tag) Names() []string {
	if t == TagWildcard {
		return []string{"*"}
	}
	var out []string
	for _, tn := range tagNames {
		if t&tn.tag != 0 {
			out = append(out, tn.name)
		}
	}
	return out
}

func (t Tag) String() string {
	if t == TagAny {
		return ""
	}
	return strings.Join(t.Names(), "|")
}

// Rule rewrites a conjugated Suffix back to its dictionary-form Replacement.
// In is the set of classes the current form must belong to (empty means the
// rule only applies to the raw input); Out is the class of the result.
type Rule struct {
	Reason      string
	Suffix      string
	Replacement string
	In          Tag
	Out         Tag
}

// accepts reports whether r may be applied to a term currently tagged cur.
func (r Rule) accepts(cur Tag) bool {
	return cur == TagAny || r.In == TagWildcard || cur&r.In != 0
}

func (r Rule) validate() error {
	switch {
	case r.Reason == "":
		return fmt.Errorf("%w: rule without reason", ErrInvalidTable)
	case r.Suffix == "":
		return fmt.Errorf("%w: %s: empty suffix", ErrInvalidTable, r.Reason)
	case r.Out == TagAny:
		return fmt.Errorf("%w: %s: rule %q has no output tag", ErrInvalidTable, r.Reason, r.Suffix)
	}
	return nil
}

// Table is an immutable, ordered list of rules.
type Table struct {
	rules []Rule
}

// NewTable validates rules and returns a table that owns a copy of them.
func NewTable(rules []Rule) (*Table, error) {
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	return &Table{rules: slices.Clone(rules)}, nil
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Rules returns a copy of the rules in table order.
func (t *Table) Rules() []Rule { return slices.Clone(t.rules) }
