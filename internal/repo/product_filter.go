package repo

import (
	"strings"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// ProductFilter narrows the inventory view. Empty Category or Location (or "All") match everything;
// Name is a case-insensitive substring match.
type ProductFilter struct {
	Name     string
	Category string
	Location models.Location
	Offset   *int
	Limit    *int
}

func isAll(s string) bool { return s == "" || strings.EqualFold(s, "all") }

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if !isAll(pf.Category) && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if !isAll(string(pf.Location)) && !strings.EqualFold(string(p.Location), string(pf.Location)) {
		return false
	}
	return true
}

// paginate applies offset and limit to an already filtered slice.
func paginate[T any](items []T, offset, limit *int) []T {
	if offset != nil && *offset > len(items) {
		return []T{}
	}

	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(items))
	}

	end := len(items)
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, len(items))
	}
	return items[start:end]
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
