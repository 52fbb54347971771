package user

import (
	"context"
	"testing"

	"github.com/wichananm65/styliqo-backend/internal/auth"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository(nil), "admin@gmail.com")

	u, err := svc.Register(ctx, "priya@example.com", "secret1", "Priya")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.UID == "" || u.PasswordHash == "secret1" || u.Role != auth.RoleCustomer {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := svc.Register(ctx, "PRIYA@example.com", "secret1", "Dup"); err != auth.ErrEmailExists {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
	if _, err := svc.Register(ctx, "x@example.com", "123", ""); err != auth.ErrWeakPassword {
		t.Fatalf("expected weak password, got %v", err)
	}

	got, err := svc.Authenticate(ctx, "priya@example.com", "secret1")
	if err != nil || got.UID != u.UID {
		t.Fatalf("authenticate failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "priya@example.com", "wrong"); err != auth.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret1"); err != auth.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestRegisterAdminEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), "admin@gmail.com")
	u, err := svc.Register(context.Background(), "admin@gmail.com", "secret1", "Admin")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.Role != auth.RoleAdmin {
		t.Fatalf("expected admin role, got %q", u.Role)
	}
}

func TestEnsureProfileKeepsPassword(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo, "admin@gmail.com")
	u, _ := svc.Register(ctx, "a@example.com", "secret1", "A")

	if _, err := svc.EnsureProfile(ctx, auth.Identity{UID: u.UID, Email: u.Email, DisplayName: "Renamed"}); err != nil {
		t.Fatalf("ensure profile failed: %v", err)
	}
	stored, _ := repo.GetByID(ctx, u.UID)
	if stored.DisplayName != "Renamed" || stored.PasswordHash == "" {
		t.Fatalf("unexpected stored record %+v", stored)
	}

	if _, err := svc.EnsureProfile(ctx, auth.Identity{UID: "fb-9", Email: "fb@example.com"}); err != nil {
		t.Fatalf("ensure profile failed: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
}

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider(NewService(NewInMemoryRepository(nil), "admin@gmail.com"))

	id, err := p.SignUp(ctx, "asha@example.com", "secret1", "Asha")
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	var seen []*auth.Identity
	unsub := p.Subscribe(id.UID, func(i *auth.Identity) { seen = append(seen, i) })
	defer unsub()

	if _, err := p.SignIn(ctx, "asha@example.com", "secret1"); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if err := p.SignOut(ctx, id.UID); err != nil {
		t.Fatalf("sign-out failed: %v", err)
	}
	if len(seen) != 2 || seen[0] == nil || seen[1] != nil {
		t.Fatalf("expected signed-in then signed-out notifications, got %v", seen)
	}
	if _, err := p.SignIn(ctx, "", ""); err != auth.ErrMissingFields {
		t.Fatalf("expected missing fields, got %v", err)
	}
}
