package classify

import "strings"

// MatchesCategory reports whether a delimited free-text field (location,
// field of study, education level) matches target. A record matches when any
// of its tokens contains the target or is contained by it, ignoring case.
func MatchesCategory(fieldText, target string) bool {
	target = strings.TrimSpace(target)
	if strings.TrimSpace(fieldText) == "" || target == "" {
		return false
	}
	for _, token := range SplitAndClean(fieldText) {
		if containsFold(token, target) {
			return true
		}
	}
	return false
}

// CategoryTokens returns the distinct, sorted tokens of every field. It feeds
// filter controls such as the education-level dropdown.
func CategoryTokens(fields []string) []string {
	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, SplitAndClean(f)...)
	}
	return SortedDistinct(tokens)
}

// MatchingProvinces returns the provinces that bidirectionally match at least
// one of the given locations, sorted.
func MatchingProvinces(locations []string) []string {
	var out []string
	for _, province := range Provinces {
		for _, loc := range locations {
			if strings.TrimSpace(loc) != "" && containsFold(loc, province) {
				out = append(out, province)
				break
			}
		}
	}
	return SortedDistinct(out)
}
