// Package pagination holds the paging affordance shared by every list screen.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxButtons      = 5
)

// Params is what a list screen asks the API for.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Parse reads page and search query values. Garbage or non-positive pages
// become 1.
func Parse(pageStr, search string, limit int) Params {
	page := 1
	if pageStr != "" {
		if p, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && p > 0 {
			page = p
		}
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Params{Page: page, Limit: limit, Search: strings.TrimSpace(search)}
}

// Window returns the numbered page buttons for current out of total: all of
// them when total <= 5, otherwise five pages centred on current and clamped
// to [1, total].
func Window(current, total int) []int {
	if total <= 0 {
		return nil
	}
	current = clamp(current, 1, total)

	if total <= MaxButtons {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := clamp(current-MaxButtons/2, 1, total-MaxButtons+1)
	pages := make([]int, MaxButtons)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// View is the template model of the pager.
type View struct {
	Current    int
	TotalPages int
	TotalCount int
	Pages      []int
	HasPrev    bool
	HasNext    bool
	Prev       int
	Next       int
	Search     string
}

func NewView(current, totalPages, totalCount int, search string) View {
	if totalPages > 0 {
		current = clamp(current, 1, totalPages)
	}
	return View{
		Current:    current,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Pages:      Window(current, totalPages),
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
		Prev:       current - 1,
		Next:       current + 1,
		Search:     search,
	}
}

// Show reports whether the pager is worth rendering.
func (v View) Show() bool {
	return v.TotalPages > 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
