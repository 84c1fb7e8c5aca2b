package tui

import (
	"strconv"
	"strings"
)

// pagerSpan is how many pages either side of the current one are listed.
const pagerSpan = 2

// PageWindow returns the page numbers to show in a pager for current of
// total pages. Zero marks a gap. The first and last pages are always shown.
func PageWindow(current, total, span int) []int {
	if total <= 0 {
		return nil
	}

	current = min(max(current, 1), total)
	lo := max(1, current-span)
	hi := min(total, current+span)

	var pages []int
	if lo > 1 {
		pages = append(pages, 1)
		if lo > 2 {
			pages = append(pages, 0)
		}
	}
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	if hi < total {
		if hi < total-1 {
			pages = append(pages, 0)
		}
		pages = append(pages, total)
	}
	return pages
}

// renderPager renders "‹ 1 2 [3] 4 ›". Arrows are dimmed when there is no
// page in that direction.
func renderPager(current, total int) string {
	if total <= 0 {
		return ""
	}

	prev, next := "‹", "›"
	if current <= 1 {
		prev = SubtleStyle.Render(prev)
	}
	if current >= total {
		next = SubtleStyle.Render(next)
	}

	parts := []string{prev}
	for _, p := range PageWindow(current, total, pagerSpan) {
		switch {
		case p == 0:
			parts = append(parts, "…")
		case p == current:
			parts = append(parts, CurrentPageStyle.Render("["+strconv.Itoa(p)+"]"))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}
