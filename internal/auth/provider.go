package auth

import (
	"context"
	"sync"
)

// Provider is the identity backend behind sign-up, sign-in and sign-out.
type Provider interface {
	SignUp(ctx context.Context, email, password, displayName string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context, uid string) error
	// Subscribe reports auth state changes for uid; nil means signed out.
	Subscribe(uid string, fn func(*Identity)) (unsubscribe func())
}

// Notifier fans auth state changes out to per-uid observers. Providers embed
// it to implement Subscribe.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(*Identity)
}

func (n *Notifier) Subscribe(uid string, fn func(*Identity)) func() {
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[string]map[int]func(*Identity))
	}
	if n.subs[uid] == nil {
		n.subs[uid] = make(map[int]func(*Identity))
	}
	n.next++
	id := n.next
	n.subs[uid][id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[uid], id)
			if len(n.subs[uid]) == 0 {
				delete(n.subs, uid)
			}
		})
	}
}

// Notify calls every observer of uid outside the lock.
func (n *Notifier) Notify(uid string, identity *Identity) {
	n.mu.Lock()
	fns := make([]func(*Identity), 0, len(n.subs[uid]))
	for _, fn := range n.subs[uid] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		if identity == nil {
			fn(nil)
			continue
		}
		cp := *identity
		fn(&cp)
	}
}

// Observers reports how many observers uid has.
func (n *Notifier) Observers(uid string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[uid])
}
