package pagination

import "strings"

// Filter keeps rows where any of the fields returned by text contains term,
// case-insensitively. An empty term keeps everything. Used by lists the API
// returns whole.
func Filter[T any](rows []T, term string, text func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, field := range text(row) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Slice returns page p (1-based) of rows with the given size, plus the
// total page count.
func Slice[T any](rows []T, p, size int) ([]T, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(rows) + size - 1) / size
	if total == 0 {
		return []T{}, 0
	}
	p = clamp(p, 1, total)
	start := (p - 1) * size
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}
