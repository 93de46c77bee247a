// Package kana classifies runes and strings by kana sub-script and converts
// katakana to hiragana.
//
// The ranges are fixed:
//
//	hiragana             U+3041..U+309E
//	full-width katakana  U+30A1..U+30FE
//	half-width katakana  U+FF66..U+FF9D
//
// IsAllKana only accepts the first two ranges. Strings of half-width katakana
// are not kana for routing purposes unless a Normalizer is configured with
// RouteHalfWidth.
package kana

const (
	hiraganaFirst = 'ぁ'
	hiraganaLast  = 'ゞ'

	katakanaFirst = 'ァ'
	katakanaLast  = 'ヾ'

	halfWidthFirst = 'ｦ'
	halfWidthLast  = 'ﾝ'
)

// IsHiragana reports whether r is in U+3041..U+309E.
func IsHiragana(r rune) bool {
	return r >= hiraganaFirst && r <= hiraganaLast
}

// IsFullWidthKatakana reports whether r is in U+30A1..U+30FE.
func IsFullWidthKatakana(r rune) bool {
	return r >= katakanaFirst && r <= katakanaLast
}

// IsHalfWidthKatakana reports whether r is in U+FF66..U+FF9D.
func IsHalfWidthKatakana(r rune) bool {
	return r >= halfWidthFirst && r <= halfWidthLast
}

// AllHiragana reports whether every rune of s is hiragana. True for "".
func AllHiragana(s string) bool {
	for _, r := range s {
		if !IsHiragana(r) {
			return false
		}
	}
	return true
}

// IsAllKana reports whether every rune of s is hiragana or full-width
// katakana. True for "". Half-width katakana does not count.
func IsAllKana(s string) bool {
	for _, r := range s {
		if !IsHiragana(r) && !IsFullWidthKatakana(r) {
			return false
		}
	}
	return true
}

// isAnyKana is IsAllKana extended with half-width katakana and the
// half-width voicing marks that follow it.
func isAnyKana(s string) bool {
	for _, r := range s {
		if !IsHiragana(r) && !IsFullWidthKatakana(r) && !IsHalfWidthKatakana(r) &&
			r != halfWidthVoiced && r != halfWidthSemiVoiced {
			return false
		}
	}
	return true
}
