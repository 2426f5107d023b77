// Package classify derives coarse category labels from the loosely structured
// free-text columns of a listing. Every function here is pure and never fails:
// empty or unrecognised input simply yields no match.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// listDelimiter splits free-text lists on punctuation and on the connective
// words used in Indonesian and English source data.
var listDelimiter = regexp.MustCompile(`(?i)[,;/|&]|\s+(?:dan|and|or|atau)\s+`)

// normalizeSpace collapses runs of whitespace into one space and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleWords upper-cases the first letter of every word and leaves the rest
// alone, so acronyms such as "DKI" or "S1" survive.
func titleWords(s string) string {
	return cases.Title(language.Indonesian, cases.NoLower).String(s)
}

// SplitAndClean splits a delimited free-text field into trimmed, title-cased
// tokens. Order is preserved and duplicates are kept.
func SplitAndClean(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, part := range listDelimiter.Split(text, -1) {
		part = normalizeSpace(part)
		if part == "" {
			continue
		}
		out = append(out, titleWords(part))
	}
	return out
}

// containsFold reports whether either string contains the other, ignoring case.
func containsFold(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// mergeUniqueFold appends items to dst, skipping blanks and case-insensitive
// duplicates.
func mergeUniqueFold(dst []string, items []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		k := strings.ToLower(strings.TrimSpace(v))
		if k != "" {
			seen[k] = struct{}{}
		}
	}

	for _, v := range items {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		dst = append(dst, v)
		seen[k] = struct{}{}
	}

	return dst
}

// SortedDistinct returns the non-blank values deduplicated case-insensitively
// (first spelling wins) and sorted.
func SortedDistinct(values []string) []string {
	out := mergeUniqueFold(nil, values)
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}
