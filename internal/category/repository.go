package category

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context, limit int) ([]Category, error)
	Save(ctx context.Context, items []Category) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	return &InMemoryRepository{items: append([]Category(nil), seed...)}
}

// List returns categories by descending ord.
func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]Category, error) {
	r.mu.RLock()
	out := append([]Category{}, r.items...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Ord > out[j].Ord })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, items []Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
	return nil
}
