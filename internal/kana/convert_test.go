package kana

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana_FullWidthShift(t *testing.T) {
	t.Parallel()

	for r := rune(0x30a1); r <= 0x30fe; r++ {
		got := ToHiragana(r)
		if got != r-0x60 {
			t.Fatalf("ToHiragana(%U) = %U, want %U", r, got, r-0x60)
		}
		if !IsHiragana(got) {
			t.Fatalf("ToHiragana(%U) = %U is not hiragana", r, got)
		}
	}
}

func TestToHiragana_LegacyHalfWidthOffset(t *testing.T) {
	t.Parallel()

	for r := rune(0xff66); r <= 0xff9d; r++ {
		if got := ToHiragana(r); got != r-0xcf25 {
			t.Fatalf("ToHiragana(%U) = %U, want %U", r, got, r-0xcf25)
		}
	}
	// The legacy offset misplaces letters: ｦ is を, not ぁ.
	assert.Equal(t, 'ぁ', ToHiragana('ｦ'))
	assert.Equal(t, 'へ', ToHiragana('ﾝ'))
}

func TestToHiragana_OtherRunesUnchanged(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'食', 'a', '1', ' ', '、', 0x30a0, 0x30ff, 0xff65, 0xff9e} {
		assert.Equal(t, r, ToHiragana(r), "rune %U", r)
	}
}

func TestToHiragana_BlockEdgesShiftOutOfLetters(t *testing.T) {
	t.Parallel()

	// The full-width range ends past the letters, so the middle dot and the
	// long vowel mark land on combining marks.
	assert.Equal(t, '゛', ToHiragana('・'))
	assert.Equal(t, rune(0x309c), ToHiragana('ー'))
}

func TestKatakanaToHiragana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ガッコウ", "がっこう"},
		{"がっこう", "がっこう"},
		{"タベル", "たべる"},
		{"食ベル", "食べる"},
		{"ヴァイオリン", "ゔぁいおりん"},
		{"カタカナとひらがな", "かたかなとひらがな"},
	}
	for _, tt := range tests {
		got := KatakanaToHiragana(tt.in)
		assert.Equal(t, tt.want, got, "KatakanaToHiragana(%q)", tt.in)
		assert.Equal(t, utf8.RuneCountInString(tt.in), utf8.RuneCountInString(got), "length of %q", tt.in)
	}
}

func FuzzKatakanaToHiragana_Idempotent(f *testing.F) {
	f.Add("ガッコウ")
	f.Add("ｶﾞｯｺｳ")
	f.Add("食べた")
	f.Add("")
	f.Add("ヴーｦﾝ")

	f.Fuzz(func(t *testing.T, s string) {
		once := KatakanaToHiragana(s)
		if twice := KatakanaToHiragana(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
		if utf8.ValidString(s) && utf8.RuneCountInString(once) != utf8.RuneCountInString(s) {
			t.Fatalf("length changed: %q -> %q", s, once)
		}
	})
}

func TestParseHalfWidthMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   HalfWidthMode
		wantOK bool
	}{
		{"", HalfWidthLegacy, true},
		{"legacy", HalfWidthLegacy, true},
		{" Fold ", HalfWidthFold, true},
		{"fix", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseHalfWidthMode(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseHalfWidthMode(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseHalfWidthMode(%q)", tt.in)
	}
}

func TestNormalizer_ZeroValueMatchesPackageFunctions(t *testing.T) {
	t.Parallel()

	var n Normalizer
	for _, s := range []string{"ガッコウ", "ｶﾞｯｺｳ", "がっこう", "学校", ""} {
		assert.Equal(t, IsAllKana(s), n.IsKana(s), "IsKana(%q)", s)
		assert.Equal(t, KatakanaToHiragana(s), n.ToHiragana(s), "ToHiragana(%q)", s)
	}
}

func TestNormalizer_RouteHalfWidth(t *testing.T) {
	t.Parallel()

	n := Normalizer{RouteHalfWidth: true}
	assert.True(t, n.IsKana("ｶﾞｯｺｳ"))
	assert.True(t, n.IsKana("がっｺう"))
	assert.False(t, n.IsKana("学校"))
	assert.True(t, n.IsKana(""))
}

func TestNormalizer_FoldHalfWidth(t *testing.T) {
	t.Parallel()

	n := Normalizer{Mode: HalfWidthFold}

	tests := []struct {
		in   string
		want string
	}{
		{"ｶﾞｯｺｳ", "がっこう"},
		{"ﾊﾟﾝ", "ぱん"},
		{"ｦ", "を"},
		{"ﾀﾍﾞﾙ", "たべる"},
		{"ガッコウ", "がっこう"},
		{"食ﾍﾞﾙ", "食べる"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.ToHiragana(tt.in), "ToHiragana(%q)", tt.in)
	}
}

func TestNormalizer_FoldMatchesFullWidthBlock(t *testing.T) {
	t.Parallel()

	// Every half-width letter folds to the hiragana of its full-width twin.
	half := []rune("ｦｧｨｩｪｫｬｭｮｯｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ")
	full := []rune("ヲァィゥェォャュョッアイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワン")
	if len(half) != len(full) {
		t.Fatalf("fixture mismatch: %d vs %d", len(half), len(full))
	}

	n := Normalizer{Mode: HalfWidthFold}
	for i, r := range half {
		want := string(full[i] - 0x60)
		if got := n.ToHiragana(string(r)); got != want {
			t.Errorf("fold %U = %q, want %q", r, got, want)
		}
	}
}
