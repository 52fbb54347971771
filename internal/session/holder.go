// Package session keeps the per-shopper state that lives between requests:
// who is signed in, their cart and their wishlist.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/wichananm65/styliqo-backend/internal/auth"
)

var ErrAlreadyInitialized = errors.New("session already initialized")

// Holder mirrors the provider's view of one user. Notifications and SetUser
// calls may interleave; the last write wins.
type Holder struct {
	mu          sync.RWMutex
	user        *auth.Identity
	loading     bool
	provider    auth.Provider
	uid         string
	unsubscribe func()
}

func NewHolder() *Holder {
	return &Holder{loading: true}
}

// Initialize subscribes to provider notifications for uid. It may be called
// once; the returned func ends the subscription.
func (h *Holder) Initialize(provider auth.Provider, uid string) (func(), error) {
	h.mu.Lock()
	if h.provider != nil {
		h.mu.Unlock()
		return nil, ErrAlreadyInitialized
	}
	h.provider = provider
	h.uid = uid
	h.mu.Unlock()

	unsub := provider.Subscribe(uid, func(id *auth.Identity) {
		h.mu.Lock()
		h.user = id
		h.loading = false
		h.mu.Unlock()
	})

	h.mu.Lock()
	h.unsubscribe = unsub
	h.mu.Unlock()
	return h.Close, nil
}

// SetUser overrides the current user without waiting for a notification.
func (h *Holder) SetUser(id *auth.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id != nil {
		cp := *id
		id = &cp
	}
	h.user = id
	h.loading = false
}

// User returns a copy of the current user, or nil when signed out.
func (h *Holder) User() *auth.Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	cp := *h.user
	return &cp
}

func (h *Holder) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// Logout signs out with the provider and then clears the user. When the
// provider call fails the user is kept.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.RLock()
	provider, uid := h.provider, h.uid
	if uid == "" && h.user != nil {
		uid = h.user.UID
	}
	h.mu.RUnlock()

	if provider != nil {
		if err := provider.SignOut(ctx, uid); err != nil {
			return err
		}
	}
	h.SetUser(nil)
	return nil
}

// Close ends the provider subscription. It is safe to call more than once.
func (h *Holder) Close() {
	h.mu.Lock()
	unsub := h.unsubscribe
	h.unsubscribe = nil
	h.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
