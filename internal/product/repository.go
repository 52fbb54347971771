package product

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	// List returns every product, oldest first.
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	// DeleteMany removes ids and reports how many existed.
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	repo := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	repo.products = append(repo.products, seed...)
	return repo
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]Product, len(r.products))
	copy(products, r.products)
	sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	return products, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == p.ID {
			now := time.Now().UTC()
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = &now
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.products[:0]
	removed := 0
	for _, p := range r.products {
		if drop[p.ID] {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.products = kept
	return removed, nil
}

// OfflineRepository serves an empty catalog and rejects writes.
type OfflineRepository struct{}

func (OfflineRepository) List(ctx context.Context) ([]Product, error) { return []Product{}, nil }

func (OfflineRepository) GetByID(ctx context.Context, id string) (Product, error) {
	return Product{}, ErrNotFound
}

func (OfflineRepository) Create(ctx context.Context, p Product) (Product, error) {
	return Product{}, backend.ErrUnavailable
}

func (OfflineRepository) Update(ctx context.Context, p Product) (Product, error) {
	return Product{}, backend.ErrUnavailable
}

func (OfflineRepository) Delete(ctx context.Context, id string) error { return backend.ErrUnavailable }

func (OfflineRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	return 0, backend.ErrUnavailable
}
