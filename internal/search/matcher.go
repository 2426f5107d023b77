// Package search ranks records against a free-text query with typo-tolerant
// matching over several weighted fields.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the largest per-field score still counted as a match.
// Scores run from 0 (exact) to 1 (nothing in common).
const DefaultThreshold = 0.4

// minScore stands in for a perfect field score so that weights still order
// results in the product.
const minScore = 0.001

// Key selects one searchable field of T and its relative weight.
type Key[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// Result is one matched item with its combined score, lower is better.
type Result[T any] struct {
	Item  T
	Score float64
}

// Matcher performs fuzzy search over items of type T. It holds no mutable
// state and is safe for concurrent use.
type Matcher[T any] struct {
	keys      []Key[T]
	threshold float64
}

// NewMatcher builds a matcher. Weights are normalised to sum to 1; a
// non-positive threshold selects DefaultThreshold.
func NewMatcher[T any](threshold float64, keys ...Key[T]) *Matcher[T] {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var total float64
	for _, k := range keys {
		if k.Weight > 0 {
			total += k.Weight
		}
	}

	norm := make([]Key[T], 0, len(keys))
	for _, k := range keys {
		w := k.Weight
		if w <= 0 {
			continue
		}
		if total > 0 {
			w /= total
		}
		k.Weight = w
		norm = append(norm, k)
	}

	return &Matcher[T]{keys: norm, threshold: threshold}
}

// Threshold returns the per-field match threshold in use.
func (m *Matcher[T]) Threshold() float64 {
	return m.threshold
}

// Rank scores every item against query and returns the matches best first.
// Items whose every field scores above the threshold are dropped. Equal
// scores keep their input order, so the result is deterministic.
func (m *Matcher[T]) Rank(query string, items []T) []Result[T] {
	q := Fold(query)
	if q == "" {
		return nil
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		score, ok := m.score(q, item)
		if !ok {
			continue
		}
		results = append(results, Result[T]{Item: item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// Search is Rank without the scores.
func (m *Matcher[T]) Search(query string, items []T) []T {
	ranked := m.Rank(query, items)
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}

// score combines the per-field scores of the fields that matched as a
// weighted product.
func (m *Matcher[T]) score(q string, item T) (float64, bool) {
	total := 1.0
	matched := false
	for _, k := range m.keys {
		s := FieldScore(q, Fold(k.Value(item)))
		if s > m.threshold {
			continue
		}
		matched = true
		total *= math.Pow(math.Max(s, minScore), k.Weight)
	}
	return total, matched
}

// proximityDistance is how many characters into a field a match may start
// before its position alone costs a full point of score.
const proximityDistance = 100

// FieldScore returns how well the folded query q approximately occurs in the
// folded text: edit distance over query length, plus a penalty growing with
// how far from the start of text the match begins. An exact substring at the
// start scores 0. The text is scanned in word windows around the query's word
// count, and each window is also compared by its prefix so partial words
// still match.
func FieldScore(q, text string) float64 {
	if q == "" || text == "" {
		return 1
	}

	best := 1.0
	if i := strings.Index(text, q); i >= 0 {
		best = proximity(utf8.RuneCountInString(text[:i]))
		if best == 0 {
			return 0
		}
	}

	words := strings.Fields(text)
	offsets := make([]int, len(words))
	pos := 0
	for i, w := range words {
		offsets[i] = pos
		pos += utf8.RuneCountInString(w) + 1
	}

	qLen := utf8.RuneCountInString(q)
	n := len(strings.Fields(q))
	for w := max(n-1, 1); w <= n+1; w++ {
		for i := 0; i+w <= len(words); i++ {
			penalty := proximity(offsets[i])
			if penalty >= best {
				break
			}
			cand := strings.Join(words[i:i+w], " ")
			d := levenshtein.ComputeDistance(q, cand)
			if utf8.RuneCountInString(cand) > qLen {
				d = min(d, levenshtein.ComputeDistance(q, string([]rune(cand)[:qLen])))
			}
			if s := float64(d)/float64(qLen) + penalty; s < best {
				best = s
			}
		}
	}

	return math.Min(best, 1)
}

func proximity(offset int) float64 {
	return float64(offset) / proximityDistance
}
