package domain

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestCompareEntries(t *testing.T) {
	t.Parallel()

	id1 := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	id2 := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	tests := []struct {
		name string
		a, b Entry
		want int
	}{
		{
			name: "higher score first",
			a:    Entry{Score: 10, ID: id2},
			b:    Entry{Score: 1, ID: id1},
			want: -1,
		},
		{
			name: "dictionary breaks score tie",
			a:    Entry{DictionaryID: "jmdict", ID: id2},
			b:    Entry{DictionaryID: "kenkyusha", ID: id1},
			want: -1,
		},
		{
			name: "expression breaks dictionary tie",
			a:    Entry{Expression: "学校", ID: id1},
			b:    Entry{Expression: "がっこう", ID: id2},
			want: 1,
		},
		{
			name: "reading breaks expression tie",
			a:    Entry{Expression: "生", Reading: "いき", ID: id2},
			b:    Entry{Expression: "生", Reading: "なま", ID: id1},
			want: -1,
		},
		{
			name: "id is the final tiebreak",
			a:    Entry{ID: id2},
			b:    Entry{ID: id1},
			want: 1,
		},
		{
			name: "equal",
			a:    Entry{ID: id1, Expression: "食べる"},
			b:    Entry{ID: id1, Expression: "食べる"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CompareEntries(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareEntries() = %d, want %d", got, tt.want)
			}
			if got := CompareEntries(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareEntries() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestDictionarySet(t *testing.T) {
	t.Parallel()

	s := NewDictionarySet("Kenkyusha", " jmdict ", "", "  ")

	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}
	if !s.Contains("jmdict") || !s.Contains("kenkyusha") {
		t.Errorf("set %v should contain jmdict and kenkyusha", s)
	}
	if s.Contains("") {
		t.Error("blank ids must be ignored")
	}
	if got := s.Slice(); !slices.Equal(got, []string{"jmdict", "kenkyusha"}) {
		t.Errorf("Slice() = %v", got)
	}

	var empty DictionarySet
	if empty.Contains("jmdict") {
		t.Error("nil set must contain nothing")
	}
	if got := empty.Slice(); len(got) != 0 {
		t.Errorf("nil Slice() = %v, want empty", got)
	}
}
