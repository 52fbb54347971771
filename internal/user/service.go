package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/styliqo-backend/internal/auth"
)

type Service struct {
	repo       Repository
	adminEmail string
}

func NewService(repo Repository, adminEmail string) *Service {
	return &Service{repo: repo, adminEmail: adminEmail}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, uid string) (User, error) {
	return s.repo.GetByID(ctx, uid)
}

// Register creates a password account. The role is derived from the email.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (User, error) {
	if err := auth.ValidateSignUp(email, password); err != nil {
		return User{}, err
	}
	email = strings.TrimSpace(email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, auth.ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	created, err := s.repo.Create(ctx, User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		Role:         auth.RoleFor(email, s.adminEmail),
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	})
	if err == ErrEmailTaken {
		return User{}, auth.ErrEmailExists
	}
	return created, err
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, auth.ErrInvalidCredentials
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, auth.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureProfile records an identity that came from an external provider.
func (s *Service) EnsureProfile(ctx context.Context, id auth.Identity) (User, error) {
	role := id.Role
	if role == "" {
		role = auth.RoleFor(id.Email, s.adminEmail)
	}
	return s.repo.Upsert(ctx, User{
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	})
}

// Identity projects a profile record onto the auth principal.
func (u User) Identity() auth.Identity {
	return auth.Identity{UID: u.UID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role}
}
