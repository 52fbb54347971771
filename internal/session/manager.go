package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/cart"
	"github.com/wichananm65/styliqo-backend/internal/wishlist"
)

// Session is everything one signed-in shopper owns on the server.
type Session struct {
	UID      string
	Holder   *Holder
	Cart     *cart.Store
	Wishlist *wishlist.Store
}

// Manager owns the sessions of all shoppers, keyed by uid.
type Manager struct {
	provider auth.Provider
	log      logrus.FieldLogger

	mu       sync.Mutex
	sessions map[string]*Session
	onClose  []func(uid string)
}

func NewManager(provider auth.Provider, log logrus.FieldLogger) *Manager {
	return &Manager{provider: provider, log: log, sessions: make(map[string]*Session)}
}

// OnClose registers fn to run after a session is torn down.
func (m *Manager) OnClose(fn func(uid string)) {
	m.mu.Lock()
	m.onClose = append(m.onClose, fn)
	m.mu.Unlock()
}

// Open returns the session for id, creating it on first use, and records id
// as the current user.
func (m *Manager) Open(id auth.Identity) *Session {
	s := m.Ensure(id)
	s.Holder.SetUser(&id)
	return s
}

// Ensure is Open without overriding the user of an existing session.
func (m *Manager) Ensure(id auth.Identity) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[id.UID]; ok {
		m.mu.Unlock()
		return s
	}
	s := &Session{UID: id.UID, Holder: NewHolder(), Cart: cart.NewStore(), Wishlist: wishlist.NewStore()}
	m.sessions[id.UID] = s
	m.mu.Unlock()

	if _, err := s.Holder.Initialize(m.provider, id.UID); err != nil {
		m.log.WithError(err).WithField("user_id", id.UID).Warn("session subscribe failed")
	}
	// providers may report "signed out" on subscribe; the caller's token says otherwise
	s.Holder.SetUser(&id)
	m.log.WithField("user_id", id.UID).Debug("session opened")
	return s
}

func (m *Manager) Get(uid string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	return s, ok
}

// Cart implements the cart handler's lookup.
func (m *Manager) Cart(id auth.Identity) *cart.Store {
	return m.Ensure(id).Cart
}

// Wishlist implements the wishlist handler's lookup.
func (m *Manager) Wishlist(id auth.Identity) *wishlist.Store {
	return m.Ensure(id).Wishlist
}

// Logout signs the user out with the provider and drops their session.
// A provider failure leaves the session in place.
func (m *Manager) Logout(ctx context.Context, id auth.Identity) error {
	s := m.Ensure(id)
	if err := s.Holder.Logout(ctx); err != nil {
		return err
	}
	m.Close(id.UID)
	return nil
}

// Close tears a session down without contacting the provider.
func (m *Manager) Close(uid string) {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	hooks := append([]func(string){}, m.onClose...)
	m.mu.Unlock()
	if !ok {
		return
	}

	s.Holder.Close()
	for _, fn := range hooks {
		fn(uid)
	}
	m.log.WithField("user_id", uid).Debug("session closed")
}

// CloseAll tears down every session, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	uids := make([]string, 0, len(m.sessions))
	for uid := range m.sessions {
		uids = append(uids, uid)
	}
	m.mu.Unlock()
	for _, uid := range uids {
		m.Close(uid)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
