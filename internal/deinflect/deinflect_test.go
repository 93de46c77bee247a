package deinflect

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(ds []Deinflection, term string) (Deinflection, bool) {
	for _, d := range ds {
		if d.Term == term {
			return d, true
		}
	}
	return Deinflection{}, false
}

func findTagged(ds []Deinflection, term string, tag Tag) (Deinflection, bool) {
	for _, d := range ds {
		if d.Term == term && d.Tag&tag != 0 {
			return d, true
		}
	}
	return Deinflection{}, false
}

func TestDeinflect_AlwaysIncludesOriginal(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"", "食べた", "学校", "がっこう", "x", "ない"} {
		ds := Deinflect(word, Default())
		require.NotEmpty(t, ds, "word %q", word)
		assert.Equal(t, word, ds[0].Term)
		assert.Equal(t, TagAny, ds[0].Tag)
		assert.Empty(t, ds[0].Rules)
	}
}

func TestDeinflect_EmptyWord(t *testing.T) {
	t.Parallel()

	ds := Deinflect("", Default())
	assert.Equal(t, []Deinflection{{Term: "", Tag: TagAny}}, ds)
}

func TestDeinflect_NoMatchingRule(t *testing.T) {
	t.Parallel()

	ds := Deinflect("学校", Default())
	assert.Equal(t, []string{"学校"}, Terms(ds))
}

func TestDeinflect_NilTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"食べた"}, Terms(Deinflect("食べた", nil)))
}

func TestDeinflect_Chains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word  string
		want  string
		rules []string
		tag   Tag
	}{
		{"食べた", "食べる", []string{"past"}, TagV1},
		{"食べない", "食べる", []string{"negative"}, TagV1},
		{"食べなかった", "食べる", []string{"past", "negative"}, TagV1},
		{"食べています", "食べる", []string{"polite", "progressive or perfect", "-te"}, TagV1},
		{"食べさせられた", "食べる", []string{"past", "potential or passive", "causative"}, TagV1},
		{"読んだ", "読む", []string{"past"}, TagV5},
		{"読んでいる", "読む", []string{"progressive or perfect", "-te"}, TagV5},
		{"行った", "行く", []string{"past"}, TagV5},
		{"書きたかった", "書く", []string{"past", "-tai"}, TagV5},
		{"来なかった", "来る", []string{"past", "negative"}, TagVK},
		{"勉強しました", "勉強する", []string{"polite past"}, TagVS},
		{"高くなかった", "高い", []string{"past", "negative"}, TagAdjI},
		{"高かった", "高い", []string{"past"}, TagAdjI},
		{"早く", "早い", []string{"adv"}, TagAdjI},
		{"飲めば", "飲む", []string{"-ba"}, TagV5},
		{"話そう", "話す", []string{"volitional"}, TagV5},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			ds := Deinflect(tt.word, Default())
			got, ok := findTagged(ds, tt.want, tt.tag)
			require.True(t, ok, "%q/%v not in %v", tt.want, tt.tag, Terms(ds))
			assert.Equal(t, tt.rules, got.Rules)
		})
	}
}

func TestDeinflect_BreadthFirstOrder(t *testing.T) {
	t.Parallel()

	ds := Deinflect("食べなかった", Default())

	depth := func(d Deinflection) int { return len(d.Rules) }
	for i := 1; i < len(ds); i++ {
		assert.LessOrEqual(t, depth(ds[i-1]), depth(ds[i]), "results must be ordered by depth")
	}

	negIdx := slices.IndexFunc(ds, func(d Deinflection) bool { return d.Term == "食べない" })
	baseIdx := slices.IndexFunc(ds, func(d Deinflection) bool { return d.Term == "食べる" })
	require.NotEqual(t, -1, negIdx)
	require.NotEqual(t, -1, baseIdx)
	assert.Less(t, negIdx, baseIdx)
}

func TestDeinflect_UniqueTermTagPairs(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"食べさせられなかった", "行っていました", "した"} {
		ds := Deinflect(word, Default())
		seen := map[candidateKey]bool{}
		for _, d := range ds {
			k := candidateKey{d.Term, d.Tag}
			assert.False(t, seen[k], "duplicate %q/%v for %q", d.Term, d.Tag, word)
			seen[k] = true
		}
	}
}

func TestDeinflect_RequiredTagBlocksChain(t *testing.T) {
	t.Parallel()

	// "past" only applies to the word as typed, so it cannot be undone twice.
	table, err := NewTable([]Rule{
		{Reason: "past", Suffix: "た", Replacement: "る", In: TagAny, Out: TagV1},
	})
	require.NoError(t, err)

	ds := Deinflect("たた", table)
	assert.Equal(t, []string{"たた", "たる"}, Terms(ds))
}

func TestDeinflect_WildcardInbound(t *testing.T) {
	t.Parallel()

	table, err := NewTable([]Rule{
		{Reason: "a", Suffix: "x", Replacement: "y", In: TagAny, Out: TagV5},
		{Reason: "b", Suffix: "y", Replacement: "z", In: TagWildcard, Out: TagV1},
	})
	require.NoError(t, err)

	ds := Deinflect("wx", table)
	got, ok := find(ds, "wz")
	require.True(t, ok, "terms: %v", Terms(ds))
	assert.Equal(t, []string{"a", "b"}, got.Rules)
}

func TestDeinflect_CycleStopsAtDepthCap(t *testing.T) {
	t.Parallel()

	// Each application grows the word, so only the depth cap ends the walk.
	table, err := NewTable([]Rule{
		{Reason: "grow", Suffix: "a", Replacement: "aa", In: TagWildcard, Out: TagV1},
	})
	require.NoError(t, err)

	ds := Deinflect("a", table)
	assert.Len(t, ds, MaxDepth+1)
	assert.Equal(t, strings.Repeat("a", MaxDepth+1), ds[len(ds)-1].Term)

	assert.Len(t, DeinflectDepth("a", table, 0), 1)
}

func TestDeinflect_SwapCycleTerminates(t *testing.T) {
	t.Parallel()

	table, err := NewTable([]Rule{
		{Reason: "ab", Suffix: "a", Replacement: "b", In: TagWildcard, Out: TagV1},
		{Reason: "ba", Suffix: "b", Replacement: "a", In: TagWildcard, Out: TagV1},
	})
	require.NoError(t, err)

	ds := Deinflect("a", table)
	assert.Equal(t, []string{"a", "b", "a"}, Terms(ds))
}

func TestDeinflect_NeverProducesEmptyTerm(t *testing.T) {
	t.Parallel()

	for _, d := range Deinflect("た", Default()) {
		if d.Term == "" {
			t.Fatalf("empty term produced: %+v", d)
		}
	}
	// "な" -> "" is only allowed when something remains.
	for _, d := range Deinflect("な", Default()) {
		assert.NotEmpty(t, d.Term)
	}
}

func TestDeinflect_DoesNotShareRuleSlices(t *testing.T) {
	t.Parallel()

	ds := Deinflect("食べさせられなかった", Default())
	before := make([][]string, len(ds))
	for i, d := range ds {
		before[i] = slices.Clone(d.Rules)
	}
	for _, d := range ds {
		if len(d.Rules) > 0 {
			d.Rules[0] = "mutated"
			break
		}
	}
	mutated := 0
	for i, d := range ds {
		if !slices.Equal(before[i], d.Rules) {
			mutated++
		}
	}
	assert.Equal(t, 1, mutated)
}

func FuzzDeinflect(f *testing.F) {
	f.Add("食べさせられなかった")
	f.Add("")
	f.Add("ないないないない")
	f.Add("ｶﾞｯｺｳ")

	table := Default()
	f.Fuzz(func(t *testing.T, word string) {
		ds := Deinflect(word, table)
		if len(ds) == 0 || ds[0].Term != word {
			t.Fatalf("original term missing for %q", word)
		}
		for _, d := range ds[1:] {
			if len(d.Rules) == 0 || len(d.Rules) > MaxDepth {
				t.Fatalf("bad rule path %v for %q", d.Rules, d.Term)
			}
		}
	})
}
