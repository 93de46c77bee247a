package domain

import (
	"strings"
)

// NormalizeDictionaryID turns a dictionary title or user-supplied ID into
// the slug used as Dictionary.ID:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses runs of whitespace, '-' and '_' into a single '_'
//
// Non-ASCII letters (e.g. 大辞林) are preserved.
func NormalizeDictionaryID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_', '　':
			if prevSep {
				continue
			}
			prevSep = true
			b.WriteByte('_')
		default:
			prevSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
