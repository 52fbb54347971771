package product

import (
	"sort"
	"strings"
)

// Price bands offered by the catalog filter.
const (
	PriceUnder500   = "under-500"
	Price500To1000  = "500-1000"
	Price1000To2000 = "1000-2000"
	PriceAbove2000  = "above-2000"
)

// Sort orders.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// Query narrows and orders the catalog. Zero values match everything.
type Query struct {
	Categories []string
	PriceBands []string
	MinRating  float64
	Search     string
	Sort       string
}

func inBand(price int64, band string) bool {
	switch band {
	case PriceUnder500:
		return price < 500
	case Price500To1000:
		return price >= 500 && price <= 1000
	case Price1000To2000:
		return price > 1000 && price <= 2000
	case PriceAbove2000:
		return price > 2000
	}
	return false
}

func (q Query) matches(p Product) bool {
	if len(q.Categories) > 0 {
		ok := false
		for _, c := range q.Categories {
			if strings.EqualFold(c, p.Category) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(q.PriceBands) > 0 {
		ok := false
		for _, b := range q.PriceBands {
			if inBand(p.Price, b) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if q.MinRating > 0 && p.Rating < q.MinRating {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(p.Title), s) && !strings.Contains(strings.ToLower(p.Category), s) {
			return false
		}
	}
	return true
}

// Apply filters products and sorts the result; the input is not modified.
func (q Query) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

// ParseRating accepts the "4.0+" style labels as well as plain numbers.
func ParseRating(v string) float64 {
	switch strings.TrimSuffix(strings.TrimSpace(v), "+") {
	case "4", "4.0":
		return 4
	case "3", "3.0":
		return 3
	}
	return 0
}
