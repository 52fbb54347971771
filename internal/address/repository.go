package address

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

var ErrNotFound = errors.New("address not found")

// Repository stores addresses per user. Addresses are never updated or deleted.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	Create(ctx context.Context, a Address) (Address, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]Address
}

func NewInMemoryRepository(seed map[string][]Address) *InMemoryRepository {
	m := make(map[string][]Address, len(seed))
	for k, v := range seed {
		m[k] = append([]Address(nil), v...)
	}
	return &InMemoryRepository{byUser: m}
}

// ListByUser returns the user's addresses newest first.
func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	r.mu.RLock()
	out := append([]Address{}, r.byUser[userID]...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[a.UserID] = append(r.byUser[a.UserID], a)
	return a, nil
}

// OfflineRepository is used when no backend is reachable.
type OfflineRepository struct{}

func (OfflineRepository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	return []Address{}, nil
}

func (OfflineRepository) Create(ctx context.Context, a Address) (Address, error) {
	return Address{}, backend.ErrUnavailable
}
