package recommended

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/logging"
	"github.com/wichananm65/styliqo-backend/internal/product"
)

type catalogStub struct {
	products []product.Product
	err      error
}

func (c catalogStub) List(ctx context.Context) ([]product.Product, error) {
	return c.products, c.err
}

func sampleCatalog() []product.Product {
	return []product.Product{
		{ID: "1", Title: "Banarasi Silk Saree", Category: "Sarees", Rating: 4.5, Reviews: 120},
		{ID: "2", Title: "Chiffon Saree", Category: "Sarees", Rating: 3.9, Reviews: 40},
		{ID: "3", Title: "Denim Jacket", Category: "Western", Rating: 4.8, Reviews: 10},
		{ID: "4", Title: "Anarkali Kurti", Category: "Kurtis", Rating: 4.5, Reviews: 300},
	}
}

func ids(ps []product.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestRank(t *testing.T) {
	got := ids(Rank(sampleCatalog(), nil))
	want := []string{"3", "4", "1", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	like := sampleCatalog()[0]
	got = ids(Rank(sampleCatalog(), &like))
	want = []string{"2", "3", "4"}
	if len(got) != 3 {
		t.Fatalf("expected like to be dropped, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestServicePagesAndDegrades(t *testing.T) {
	s := NewService(catalogStub{products: sampleCatalog()}, logging.Discard())
	if got := ids(s.List(context.Background(), 2, 1, "")); len(got) != 2 || got[0] != "4" || got[1] != "1" {
		t.Fatalf("unexpected page: %v", got)
	}
	if got := s.List(context.Background(), 5, 10, ""); len(got) != 0 {
		t.Fatalf("expected empty page past the end, got %v", ids(got))
	}
	if got := s.List(context.Background(), 5, 0, "missing"); len(got) != 4 {
		t.Fatalf("unknown like should rank everything, got %v", ids(got))
	}

	broken := NewService(catalogStub{err: errors.New("connection reset")}, logging.Discard())
	if got := broken.List(context.Background(), 5, 0, ""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", got)
	}
}

func TestRecommendedRoute(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(catalogStub{products: sampleCatalog()}, logging.Discard())).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/recommended?limit=1&like=3", nil))
	if err != nil || res.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected response: %v", err)
	}
	var got []product.Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected top non-western product, got %v", ids(got))
	}
}
