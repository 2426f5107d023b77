package listing

import "strconv"

// PageSize is the fixed number of records per page.
const PageSize = 12

// Ellipsis marks skipped pages in PageLabels.
const Ellipsis = "..."

// TotalPagesFor returns ceil(count / PageSize); zero records give zero pages.
func TotalPagesFor(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// window returns the 1-indexed page of items. Pages outside the range,
// including zero and negative ones, are empty.
func window[T any](items []T, page int) []T {
	if page < 1 || page > TotalPagesFor(len(items)) {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageLabels lays out pagination controls for current out of total pages.
// Up to seven pages are listed in full; otherwise the window collapses
// around the start, the end or the current page with Ellipsis markers.
func PageLabels(current, total int) []string {
	if total <= 0 {
		return []string{}
	}

	var pages []int
	switch {
	case total <= 7:
		pages = make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
	case current <= 3:
		pages = []int{1, 2, 3, 0, total - 1, total}
	case current >= total-2:
		pages = []int{1, 2, 0, total - 2, total - 1, total}
	default:
		pages = []int{1, 0, current - 1, current, current + 1, 0, total}
	}

	labels := make([]string, len(pages))
	for i, p := range pages {
		if p == 0 {
			labels[i] = Ellipsis
			continue
		}
		labels[i] = strconv.Itoa(p)
	}
	return labels
}
