package cart

import (
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

// DefaultSize is used when an item is added without picking a size.
const DefaultSize = "Free Size"

// Item is one cart line. Lines are keyed by (ProductID, Size).
type Item struct {
	ProductID     string `json:"productId"`
	Title         string `json:"title"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	Quantity      int    `json:"quantity"`
	Size          string `json:"selectedSize"`
	Image         string `json:"image"`
}

// Store is a shopper's cart. It never talks to a backend.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func NewStore() *Store {
	return &Store{items: make([]Item, 0)}
}

func normalizeSize(size string) string {
	if size == "" {
		return DefaultSize
	}
	return size
}

// AddItem bumps the quantity of a matching line or appends a new one with quantity 1.
// Stock is not checked here.
func (s *Store) AddItem(p product.Product, size string) {
	size = normalizeSize(size)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == p.ID && s.items[i].Size == size {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, Item{
		ProductID:     p.ID,
		Title:         p.Title,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Quantity:      1,
		Size:          size,
		Image:         p.Image,
	})
}

// RemoveItem drops every line of the product regardless of size.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter(func(it Item) bool { return it.ProductID != productID })
}

func (s *Store) RemoveLine(productID, size string) {
	size = normalizeSize(size)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter(func(it Item) bool { return it.ProductID != productID || it.Size != size })
}

// UpdateQuantity sets qty on every line of the product; qty <= 0 removes them.
func (s *Store) UpdateQuantity(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty <= 0 {
		s.filter(func(it Item) bool { return it.ProductID != productID })
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = qty
		}
	}
}

func (s *Store) SetLineQuantity(productID, size string, qty int) {
	size = normalizeSize(size)
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty <= 0 {
		s.filter(func(it Item) bool { return it.ProductID != productID || it.Size != size })
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].Size == size {
			s.items[i].Quantity = qty
		}
	}
}

// TotalPrice is the sum of price x quantity over all lines.
func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, it := range s.items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = make([]Item, 0)
	s.mu.Unlock()
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item{}, s.items...)
}

// Snapshot returns the lines and their total read under one lock.
func (s *Store) Snapshot() ([]Item, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, it := range s.items {
		total += it.Price * int64(it.Quantity)
	}
	return append([]Item{}, s.items...), total
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// filter keeps the lines for which keep returns true. Caller holds mu.
func (s *Store) filter(keep func(Item) bool) {
	out := s.items[:0]
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	s.items = out
}
