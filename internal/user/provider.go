package user

import (
	"context"

	"github.com/wichananm65/styliqo-backend/internal/auth"
)

// LocalProvider implements auth.Provider on top of the profile records and
// bcrypt password hashes.
type LocalProvider struct {
	auth.Notifier
	service *Service
}

func NewLocalProvider(service *Service) *LocalProvider {
	return &LocalProvider{service: service}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password, displayName string) (auth.Identity, error) {
	created, err := p.service.Register(ctx, email, password, displayName)
	if err != nil {
		return auth.Identity{}, err
	}
	id := created.Identity()
	p.Notify(id.UID, &id)
	return id, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	if email == "" || password == "" {
		return auth.Identity{}, auth.ErrMissingFields
	}
	u, err := p.service.Authenticate(ctx, email, password)
	if err != nil {
		return auth.Identity{}, err
	}
	id := u.Identity()
	p.Notify(id.UID, &id)
	return id, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, uid string) error {
	p.Notify(uid, nil)
	return nil
}
