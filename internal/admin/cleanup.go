package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Catalog is the product service as seen by the maintenance tools.
type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

// CleanupResult reports what a maintenance run looked at and removed.
type CleanupResult struct {
	Scanned int      `json:"scanned"`
	Removed int      `json:"removed"`
	IDs     []string `json:"ids"`
}

type Cleaner struct {
	catalog Catalog
	log     logrus.FieldLogger
}

func NewCleaner(catalog Catalog, log logrus.FieldLogger) *Cleaner {
	return &Cleaner{catalog: catalog, log: log}
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// FindDuplicates returns every product whose normalized title was already
// seen earlier in products. The first occurrence is never included.
func FindDuplicates(products []product.Product) []product.Product {
	seen := make(map[string]struct{}, len(products))
	dupes := make([]product.Product, 0)
	for _, p := range products {
		key := titleKey(p.Title)
		if _, ok := seen[key]; ok {
			dupes = append(dupes, p)
			continue
		}
		seen[key] = struct{}{}
	}
	return dupes
}

// InCategories returns the products filed under any of categories.
func InCategories(products []product.Product, categories []string) []product.Product {
	want := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		want[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	out := make([]product.Product, 0)
	for _, p := range products {
		if _, ok := want[strings.ToLower(p.Category)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RemoveDuplicates deletes all but the first product of each title group.
func (c *Cleaner) RemoveDuplicates(ctx context.Context, confirm Confirmer) (CleanupResult, error) {
	return c.remove(ctx, confirm, FindDuplicates, func(n int) string {
		return fmt.Sprintf("Found %d duplicate products. Delete them and keep the first of each title?", n)
	})
}

// PurgeCategories deletes every product in the named categories.
func (c *Cleaner) PurgeCategories(ctx context.Context, categories []string, confirm Confirmer) (CleanupResult, error) {
	pick := func(products []product.Product) []product.Product { return InCategories(products, categories) }
	return c.remove(ctx, confirm, pick, func(n int) string {
		return fmt.Sprintf("Delete %d products in %s?", n, strings.Join(categories, ", "))
	})
}

func (c *Cleaner) remove(ctx context.Context, confirm Confirmer, pick func([]product.Product) []product.Product, prompt func(int) string) (CleanupResult, error) {
	products, err := c.catalog.List(ctx)
	if err != nil {
		return CleanupResult{}, err
	}
	victims := pick(products)
	res := CleanupResult{Scanned: len(products), IDs: make([]string, 0, len(victims))}
	if len(victims) == 0 {
		return res, nil
	}
	q := prompt(len(victims))
	if confirm == nil || !confirm.Confirm(q) {
		return CleanupResult{}, &ConfirmationError{Prompt: q}
	}
	for _, p := range victims {
		res.IDs = append(res.IDs, p.ID)
	}
	n, err := c.catalog.DeleteMany(ctx, res.IDs)
	if err != nil {
		return CleanupResult{}, err
	}
	res.Removed = n
	c.log.WithFields(logrus.Fields{"scanned": res.Scanned, "removed": n}).Info("catalog cleanup finished")
	return res, nil
}
