package auth

import (
	"context"
	"strings"
	"time"
)

const (
	OfflineUserUID    = "mock-user-123"
	OfflineNewUserUID = "mock-new-user-456"
)

// OfflineProvider stands in when no identity backend is configured. Every
// sign-in succeeds as a fixed test user and sign-up answers after a short
// delay, so the storefront stays usable for local work.
type OfflineProvider struct {
	Notifier
	AdminEmail  string
	SignUpDelay time.Duration
}

func NewOfflineProvider(adminEmail string) *OfflineProvider {
	return &OfflineProvider{AdminEmail: adminEmail, SignUpDelay: 800 * time.Millisecond}
}

func (p *OfflineProvider) SignUp(ctx context.Context, email, password, displayName string) (Identity, error) {
	if err := ValidateSignUp(email, password); err != nil {
		return Identity{}, err
	}
	if p.SignUpDelay > 0 {
		select {
		case <-time.After(p.SignUpDelay):
		case <-ctx.Done():
			return Identity{}, ctx.Err()
		}
	}
	return Identity{
		UID:         OfflineNewUserUID,
		Email:       email,
		DisplayName: displayName,
		Role:        RoleFor(email, p.AdminEmail),
	}, nil
}

func (p *OfflineProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if strings.TrimSpace(email) == "" {
		return Identity{}, ErrMissingFields
	}
	return Identity{
		UID:         OfflineUserUID,
		Email:       email,
		DisplayName: "Test User",
		Role:        RoleFor(email, p.AdminEmail),
	}, nil
}

func (p *OfflineProvider) SignOut(ctx context.Context, uid string) error {
	p.Notify(uid, nil)
	return nil
}

// Subscribe reports "signed out" once, the only state an offline backend knows.
func (p *OfflineProvider) Subscribe(uid string, fn func(*Identity)) func() {
	unsub := p.Notifier.Subscribe(uid, fn)
	fn(nil)
	return unsub
}
