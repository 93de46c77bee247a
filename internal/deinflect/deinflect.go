package deinflect

import (
	"slices"
	"strings"
)

// MaxDepth bounds the number of rule applications in a single chain. Real
// conjugation chains are far shorter; the cap only guards against cycles.
const MaxDepth = 10

// Deinflection is one candidate dictionary form.
type Deinflection struct {
	Term string
	// Rules lists the reasons in the order they were undone, outermost first.
	Rules []string
	Tag   Tag
}

type candidateKey struct {
	term string
	tag  Tag
}

// Deinflect returns every form reachable from word by repeatedly undoing a
// suffix rule of t. The first element is always word itself with TagAny and
// no rules; the rest follow in breadth-first order. Each (term, tag) pair
// appears once.
func Deinflect(word string, t *Table) []Deinflection {
	return DeinflectDepth(word, t, MaxDepth)
}

// DeinflectDepth is Deinflect with an explicit depth limit. A limit <= 0
// returns only the original word.
func DeinflectDepth(word string, t *Table, maxDepth int) []Deinflection {
	results := []Deinflection{{Term: word, Tag: TagAny}}
	if t == nil || word == "" {
		return results
	}

	seen := map[candidateKey]struct{}{{word, TagAny}: {}}
	frontier := results

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []Deinflection
		for _, cur := range frontier {
			for _, rule := range t.rules {
				if !rule.accepts(cur.Tag) || !strings.HasSuffix(cur.Term, rule.Suffix) {
					continue
				}
				if len(cur.Term)-len(rule.Suffix)+len(rule.Replacement) == 0 {
					continue
				}

				term := cur.Term[:len(cur.Term)-len(rule.Suffix)] + rule.Replacement
				key := candidateKey{term, rule.Out}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				next = append(next, Deinflection{
					Term:  term,
					Rules: append(slices.Clip(cur.Rules), rule.Reason),
					Tag:   rule.Out,
				})
			}
		}
		results = append(results, next...)
		frontier = next
	}

	return results
}

// Terms returns the Term of every deinflection, in order.
func Terms(ds []Deinflection) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Term
	}
	return out
}
