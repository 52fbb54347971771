package wishlist

import (
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Store is a set of liked products keyed by product id. It lives only in the
// shopper's session and is never synced to a backend.
type Store struct {
	mu    sync.RWMutex
	order []string
	items map[string]product.Product
}

func NewStore() *Store {
	return &Store{items: map[string]product.Product{}}
}

// AddItem is a no-op when the product is already present.
func (s *Store) AddItem(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(p)
}

func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
}

// ToggleItem flips membership and reports whether the product is now present.
func (s *Store) ToggleItem(p product.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID]; ok {
		s.remove(p.ID)
		return false
	}
	s.add(p)
	return true
}

func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[productID]
	return ok
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.order = nil
	s.items = map[string]product.Product{}
	s.mu.Unlock()
}

// Items returns the products in the order they were liked.
func (s *Store) Items() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store) add(p product.Product) {
	if _, ok := s.items[p.ID]; ok {
		return
	}
	s.items[p.ID] = p
	s.order = append(s.order, p.ID)
}

func (s *Store) remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
