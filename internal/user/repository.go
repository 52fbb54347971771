package user

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, uid string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// Upsert writes the profile fields of user, keeping any stored password hash.
	Upsert(ctx context.Context, user User) (User, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{users: make([]User, 0, len(seed))}
	repo.users = append(repo.users, seed...)
	return repo
}

// List returns users newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.UID == uid {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return User{}, ErrEmailTaken
		}
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.UID == user.UID {
			u.Email = user.Email
			u.DisplayName = user.DisplayName
			u.Role = user.Role
			r.users[i] = u
			return u, nil
		}
	}
	r.users = append(r.users, user)
	return user, nil
}

// OfflineRepository serves empty reads and rejects writes.
type OfflineRepository struct{}

func (OfflineRepository) List(ctx context.Context) ([]User, error) { return []User{}, nil }

func (OfflineRepository) GetByID(ctx context.Context, uid string) (User, error) {
	return User{}, ErrNotFound
}

func (OfflineRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return User{}, ErrNotFound
}

func (OfflineRepository) Create(ctx context.Context, user User) (User, error) {
	return User{}, backend.ErrUnavailable
}

func (OfflineRepository) Upsert(ctx context.Context, user User) (User, error) {
	return User{}, backend.ErrUnavailable
}
