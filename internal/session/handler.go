package session

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/user"
)

// Profiles records identities that signed in, so the admin customer list
// sees users from every provider.
type Profiles interface {
	EnsureProfile(ctx context.Context, id auth.Identity) (user.User, error)
}

type Handler struct {
	provider auth.Provider
	tokens   *auth.Tokens
	manager  *Manager
	profiles Profiles
	log      logrus.FieldLogger
}

func NewHandler(provider auth.Provider, tokens *auth.Tokens, manager *Manager, profiles Profiles, log logrus.FieldLogger) *Handler {
	return &Handler{provider: provider, tokens: tokens, manager: manager, profiles: profiles, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-up", h.signUp)
	app.Post("/api/v1/sign-in", h.signIn)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-out", h.signOut)
	app.Get("/api/v1/session", h.getSession)
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

func (h *Handler) signUp(c *fiber.Ctx) error {
	payload := new(signUpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := h.provider.SignUp(c.UserContext(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		return writeAuthError(c, err)
	}
	return h.start(c, fiber.StatusCreated, id)
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, err := h.provider.SignIn(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return writeAuthError(c, err)
	}
	return h.start(c, fiber.StatusOK, id)
}

// start records the profile, opens the session and issues the token.
func (h *Handler) start(c *fiber.Ctx, status int, id auth.Identity) error {
	if h.profiles != nil {
		if _, err := h.profiles.EnsureProfile(c.UserContext(), id); err != nil {
			// the profile is a convenience record; signing in still works
			h.log.WithError(err).WithField("user_id", id.UID).Warn("profile upsert failed")
		}
	}
	h.manager.Open(id)

	token, err := h.tokens.Issue(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(status).JSON(authResponse{Token: token, User: id})
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.manager.Logout(c.UserContext(), id); err != nil {
		h.log.WithError(err).WithField("user_id", id.UID).Error("sign-out failed")
		if backend.IsUnavailable(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.tokens.Revoke(c); err != nil {
		h.log.WithError(err).WithField("user_id", id.UID).Warn("token revoke failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type sessionResponse struct {
	User          *auth.Identity `json:"user"`
	Loading       bool           `json:"loading"`
	CartCount     int            `json:"cartCount"`
	WishlistCount int            `json:"wishlistCount"`
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	s := h.manager.Ensure(id)
	return c.JSON(sessionResponse{
		User:          s.Holder.User(),
		Loading:       s.Holder.Loading(),
		CartCount:     s.Cart.Len(),
		WishlistCount: len(s.Wishlist.Items()),
	})
}

func writeAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, auth.ErrEmailExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, auth.ErrTooManyAttempts):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": err.Error()})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
