package product

import (
	"testing"
	"time"
)

func catalog() []Product {
	return SeedCatalog(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestQueryCategoryAndSearch(t *testing.T) {
	got := Query{Categories: []string{"sarees"}}.Apply(catalog())
	if len(got) == 0 {
		t.Fatalf("expected sarees")
	}
	for _, p := range got {
		if p.Category != "Sarees" {
			t.Fatalf("unexpected category %q", p.Category)
		}
	}

	got = Query{Search: "  KURTI "}.Apply(catalog())
	for _, p := range got {
		if p.Category != "Kurtis" {
			t.Fatalf("search should match title or category, got %q", p.Title)
		}
	}
	if len(got) == 0 {
		t.Fatalf("expected kurti matches")
	}
}

func TestQueryPriceBands(t *testing.T) {
	products := []Product{{ID: "a", Price: 499}, {ID: "b", Price: 500}, {ID: "c", Price: 1000}, {ID: "d", Price: 1001}, {ID: "e", Price: 2001}}

	cases := map[string][]string{
		PriceUnder500:   {"a"},
		Price500To1000:  {"b", "c"},
		Price1000To2000: {"d"},
		PriceAbove2000:  {"e"},
	}
	for band, want := range cases {
		got := Query{PriceBands: []string{band}}.Apply(products)
		if len(got) != len(want) {
			t.Fatalf("band %s: got %d products, want %d", band, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("band %s: got %s, want %s", band, got[i].ID, want[i])
			}
		}
	}
}

func TestQuerySortAndRating(t *testing.T) {
	got := Query{Sort: SortPriceAsc}.Apply(catalog())
	for i := 1; i < len(got); i++ {
		if got[i-1].Price > got[i].Price {
			t.Fatalf("not sorted ascending at %d", i)
		}
	}
	got = Query{Sort: SortPriceDesc}.Apply(catalog())
	for i := 1; i < len(got); i++ {
		if got[i-1].Price < got[i].Price {
			t.Fatalf("not sorted descending at %d", i)
		}
	}
	got = Query{MinRating: ParseRating("4.0+"), Sort: SortRating}.Apply(catalog())
	for i, p := range got {
		if p.Rating < 4 {
			t.Fatalf("rating filter let %v through", p.Rating)
		}
		if i > 0 && got[i-1].Rating < p.Rating {
			t.Fatalf("not sorted by rating")
		}
	}
}

func TestInputValidate(t *testing.T) {
	errs := Input{Price: -1, Rating: 6, Category: "Toys"}.Validate()
	for _, k := range []string{"title", "price", "rating", "category"} {
		if _, ok := errs[k]; !ok {
			t.Fatalf("expected %s error in %v", k, errs)
		}
	}
	if errs := (Input{Title: "Saree", Price: 100, Category: "Sarees"}).Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestDiscountPercent(t *testing.T) {
	if DiscountPercent(1299, 2999) != 56 {
		t.Fatalf("unexpected discount %d", DiscountPercent(1299, 2999))
	}
	if DiscountPercent(100, 0) != 0 || DiscountPercent(200, 100) != 0 {
		t.Fatalf("expected zero discount")
	}
}
