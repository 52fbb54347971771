package cart

import (
	"testing"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

var (
	saree = product.Product{ID: "101", Title: "Banarasi Silk Saree", Price: 1299, OriginalPrice: 2599}
	kurti = product.Product{ID: "201", Title: "Cotton Kurti", Price: 499, OriginalPrice: 999}
)

func TestAddItemMergesSameSize(t *testing.T) {
	s := NewStore()
	s.AddItem(saree, "")
	s.AddItem(saree, "")
	s.AddItem(saree, "M")

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Size != DefaultSize || items[0].Quantity != 2 {
		t.Fatalf("unexpected first line %+v", items[0])
	}
	if items[1].Size != "M" || items[1].Quantity != 1 {
		t.Fatalf("unexpected second line %+v", items[1])
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s := NewStore()
	s.AddItem(saree, "S")
	s.AddItem(saree, "L")
	s.AddItem(kurti, "")

	s.UpdateQuantity("101", 3)
	if got := s.TotalPrice(); got != 1299*6+499 {
		t.Fatalf("unexpected total %d", got)
	}

	s.SetLineQuantity("101", "L", 0)
	if s.Len() != 2 {
		t.Fatalf("expected line removed, got %d lines", s.Len())
	}

	s.UpdateQuantity("201", -1)
	if s.Len() != 1 {
		t.Fatalf("expected kurti removed, got %d lines", s.Len())
	}

	s.AddItem(saree, "XL")
	s.RemoveLine("101", "S")
	items := s.Items()
	if len(items) != 1 || items[0].Size != "XL" {
		t.Fatalf("unexpected lines %+v", items)
	}

	s.RemoveItem("101")
	if s.Len() != 0 || s.TotalPrice() != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestItemsIsCopy(t *testing.T) {
	s := NewStore()
	s.AddItem(kurti, "")
	items := s.Items()
	items[0].Quantity = 99
	if s.Items()[0].Quantity != 1 {
		t.Fatalf("store mutated through Items copy")
	}
	s.Clear()
	if len(items) != 1 || s.Len() != 0 {
		t.Fatalf("clear should not affect previous copies")
	}
}

func TestSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem(saree, "")
	s.AddItem(kurti, "M")
	s.AddItem(kurti, "M")

	items, total := s.Snapshot()
	if len(items) != 2 || total != 1299+2*499 {
		t.Fatalf("unexpected snapshot %+v total %d", items, total)
	}
	if total != s.TotalPrice() {
		t.Fatalf("snapshot total %d differs from TotalPrice %d", total, s.TotalPrice())
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		total    int64
		discount int64
		final    int64
	}{
		{1299, 130, 1169},
		{499, 50, 449},
		{0, 0, 0},
		{1000, 100, 900},
	}
	for _, tc := range cases {
		got := Summarize(tc.total)
		if got.Discount != tc.discount || got.Total != tc.final || got.Delivery != 0 || got.Subtotal != tc.total {
			t.Errorf("Summarize(%d) = %+v", tc.total, got)
		}
	}
}
