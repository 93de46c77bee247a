package kana

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	katakanaShift = 0x60

	// legacyHalfWidthShift is the offset historically applied to half-width
	// katakana. It lands inside the hiragana block but on the wrong letters
	// (ｦ becomes ぁ, ﾝ becomes へ). HalfWidthFold is the correct mapping.
	legacyHalfWidthShift = 0xcf25

	halfWidthVoiced     = 'ﾞ'
	halfWidthSemiVoiced = 'ﾟ'
)

// ToHiragana converts one katakana rune to hiragana. Full-width katakana is
// shifted by -0x60, half-width katakana by the legacy -0xCF25. Any other rune
// is returned unchanged.
func ToHiragana(r rune) rune {
	switch {
	case IsFullWidthKatakana(r):
		return r - katakanaShift
	case IsHalfWidthKatakana(r):
		return r - legacyHalfWidthShift
	}
	return r
}

// KatakanaToHiragana applies ToHiragana to every rune of s. The result has
// the same number of runes as s, in the same order, and converting it again
// is a no-op.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(ToHiragana(r))
	}
	return b.String()
}

// HalfWidthMode selects how half-width katakana is converted.
type HalfWidthMode string

const (
	// HalfWidthLegacy shifts half-width katakana by -0xCF25, rune for rune.
	HalfWidthLegacy HalfWidthMode = "legacy"
	// HalfWidthFold widens half-width katakana to full width, composes
	// voicing marks (ｶﾞ -> ガ) and then shifts into hiragana. The output may
	// be shorter than the input.
	HalfWidthFold HalfWidthMode = "fold"
)

// ParseHalfWidthMode parses a mode name; "" means HalfWidthLegacy.
func ParseHalfWidthMode(s string) (HalfWidthMode, bool) {
	switch HalfWidthMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", HalfWidthLegacy:
		return HalfWidthLegacy, true
	case HalfWidthFold:
		return HalfWidthFold, true
	}
	return "", false
}

// Normalizer converts lookup keys to hiragana and decides which strings are
// routed as kana. The zero value behaves exactly like IsAllKana and
// KatakanaToHiragana.
type Normalizer struct {
	Mode HalfWidthMode
	// RouteHalfWidth makes IsKana accept half-width katakana as well.
	RouteHalfWidth bool
}

// IsKana reports whether s should be looked up by reading.
func (n Normalizer) IsKana(s string) bool {
	if n.RouteHalfWidth {
		return isAnyKana(s)
	}
	return IsAllKana(s)
}

// ToHiragana converts s to hiragana according to n.Mode.
func (n Normalizer) ToHiragana(s string) string {
	if n.Mode != HalfWidthFold || !strings.ContainsFunc(s, IsHalfWidthKatakana) {
		return KatakanaToHiragana(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsHalfWidthKatakana(r) || r == halfWidthVoiced || r == halfWidthSemiVoiced {
			if w := width.LookupRune(r).Wide(); w != 0 {
				r = w
			}
		}
		b.WriteRune(r)
	}
	return KatakanaToHiragana(norm.NFC.String(b.String()))
}
