package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. UpdateStatus is a partial write that touches
// only status and updatedAt.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	m := make(map[string]Order, len(seed))
	for _, o := range seed {
		m[o.ID] = o
	}
	return &InMemoryRepository{orders: m}
}

func (r *InMemoryRepository) Create(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = cloneOrder(o)
	return cloneOrder(o), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(o), nil
}

// List returns every order newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]Order, error) {
	return r.filter(func(Order) bool { return true }), nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.UserID == userID }), nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = &at
	r.orders[id] = o
	return nil
}

func (r *InMemoryRepository) filter(keep func(Order) bool) []Order {
	r.mu.RLock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	r.mu.RUnlock()
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders by creation time descending, ties by id.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
}

func cloneOrder(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	if o.UpdatedAt != nil {
		t := *o.UpdatedAt
		o.UpdatedAt = &t
	}
	return o
}

// OfflineRepository reads empty and rejects writes.
type OfflineRepository struct{}

func (OfflineRepository) Create(ctx context.Context, o Order) (Order, error) {
	return Order{}, backend.ErrUnavailable
}

func (OfflineRepository) GetByID(ctx context.Context, id string) (Order, error) {
	return Order{}, ErrNotFound
}

func (OfflineRepository) List(ctx context.Context) ([]Order, error) { return []Order{}, nil }

func (OfflineRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return []Order{}, nil
}

func (OfflineRepository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	return backend.ErrUnavailable
}
