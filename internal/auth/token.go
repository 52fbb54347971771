package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 72 * time.Hour

// Tokens issues and verifies the HS256 session tokens handed to clients.
// Signed-out tokens are remembered by id until they expire.
type Tokens struct {
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, revoked: make(map[string]time.Time)}
}

func (t *Tokens) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": id.UID,
		"email":   id.Email,
		"name":    id.DisplayName,
		"role":    id.Role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies raw and returns the identity it carries.
func (t *Tokens) Parse(raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid || t.isRevoked(tok) {
		return Identity{}, ErrUnauthorized
	}
	return identityFromToken(tok)
}

// Revoke rejects the token stored in c.Locals("user") from now on.
func (t *Tokens) Revoke(c *fiber.Ctx) error {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ErrUnauthorized
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return ErrUnauthorized
	}
	exp := time.Now().Add(t.ttl)
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0)
	}

	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, until := range t.revoked {
		if now.After(until) {
			delete(t.revoked, id)
		}
	}
	t.revoked[jti] = exp
	return nil
}

func (t *Tokens) isRevoked(tok *jwt.Token) bool {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, revoked := t.revoked[jti]
	return revoked
}

// FromRequest reads a bearer token from the Authorization header or the
// "token" query parameter, which browsers use for websocket upgrades.
func (t *Tokens) FromRequest(r *http.Request) (Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if raw == "" {
		raw = r.URL.Query().Get("token")
	}
	if raw == "" {
		return Identity{}, ErrUnauthorized
	}
	return t.Parse(raw)
}

// Middleware rejects requests without a valid token, including signed-out
// ones, and stores the parsed *jwt.Token in c.Locals("user").
func (t *Tokens) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: t.secret,
		SuccessHandler: func(c *fiber.Ctx) error {
			if tok, ok := c.Locals("user").(*jwt.Token); ok && t.isRevoked(tok) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// IdentityFromCtx extracts the caller from the JWT stored in c.Locals("user").
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, ErrUnauthorized
	}
	return identityFromToken(tok)
}

// GetUserIDFromCtx is the common case of IdentityFromCtx.
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	id, err := IdentityFromCtx(c)
	if err != nil {
		return "", err
	}
	return id.UID, nil
}

// RequireAdmin lets only admin tokens through.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := IdentityFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if !id.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": ErrForbidden.Error()})
		}
		return c.Next()
	}
}

func identityFromToken(tok *jwt.Token) (Identity, error) {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return Identity{}, ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleCustomer
	}
	return Identity{UID: uid, Email: email, DisplayName: name, Role: role}, nil
}
