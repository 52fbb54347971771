// Package recommended ranks the catalog for the "recommended for you" rail.
package recommended

import (
	"sort"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Rank orders products by rating, then review count, then id. With like set,
// products sharing its category come first and like itself is dropped.
func Rank(products []product.Product, like *product.Product) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if like != nil && p.ID == like.ID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if like != nil {
			sa, sb := a.Category == like.Category, b.Category == like.Category
			if sa != sb {
				return sa
			}
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Reviews != b.Reviews {
			return a.Reviews > b.Reviews
		}
		return a.ID < b.ID
	})
	return out
}

func page(items []product.Product, limit, offset int) []product.Product {
	if offset >= len(items) {
		return []product.Product{}
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
