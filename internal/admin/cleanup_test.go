package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/logging"
	"github.com/wichananm65/styliqo-backend/internal/product"
)

func seedProducts() []product.Product {
	mk := func(id, title, category string, minutes int) product.Product {
		return product.Product{ID: id, Title: title, Category: category, Price: 999, CreatedAt: base.Add(time.Duration(minutes) * time.Minute)}
	}
	return []product.Product{
		mk("1", "Banarasi Silk Saree", "Sarees", 1),
		mk("2", "  banarasi silk SAREE ", "Sarees", 2),
		mk("3", "Anarkali Kurti", "Kurtis", 3),
		mk("4", "Denim Jacket", "Western", 4),
		mk("5", "Denim Jacket", "Western", 5),
	}
}

func newProductService(seed []product.Product) *product.Service {
	return product.NewService(product.NewInMemoryRepository(seed), nil, logging.Discard(), time.Second)
}

func TestFindDuplicatesKeepsFirst(t *testing.T) {
	dupes := FindDuplicates(seedProducts())
	if len(dupes) != 2 || dupes[0].ID != "2" || dupes[1].ID != "5" {
		t.Fatalf("unexpected duplicates: %+v", dupes)
	}
	if got := FindDuplicates(nil); len(got) != 0 {
		t.Fatalf("expected none, got %+v", got)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	svc := newProductService(seedProducts())
	cl := NewCleaner(svc, logging.Discard())

	_, err := cl.RemoveDuplicates(context.Background(), Confirmed(false))
	var ce *ConfirmationError
	if !errors.As(err, &ce) || !strings.Contains(ce.Prompt, "2 duplicate") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if all, _ := svc.List(context.Background()); len(all) != 5 {
		t.Fatalf("nothing should be deleted without confirmation, got %d", len(all))
	}

	res, err := cl.RemoveDuplicates(context.Background(), Confirmed(true))
	if err != nil || res.Scanned != 5 || res.Removed != 2 {
		t.Fatalf("unexpected result: %+v %v", res, err)
	}
	all, _ := svc.List(context.Background())
	if len(all) != 3 || all[0].ID != "1" {
		t.Fatalf("unexpected remaining products: %+v", all)
	}

	asked := false
	res, err = cl.RemoveDuplicates(context.Background(), ConfirmFunc(func(string) bool {
		asked = true
		return true
	}))
	if err != nil || res.Removed != 0 || asked {
		t.Fatalf("a clean catalog needs no confirmation, got %+v %v asked=%v", res, err, asked)
	}
}

func TestPurgeCategories(t *testing.T) {
	svc := newProductService(seedProducts())
	cl := NewCleaner(svc, logging.Discard())

	res, err := cl.PurgeCategories(context.Background(), []string{"sarees", "Kurtis"}, Confirmed(true))
	if err != nil || res.Removed != 3 {
		t.Fatalf("unexpected result: %+v %v", res, err)
	}
	all, _ := svc.List(context.Background())
	for _, p := range all {
		if p.Category != "Western" {
			t.Fatalf("unexpected survivor: %+v", p)
		}
	}
}
