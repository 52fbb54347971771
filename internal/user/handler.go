package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
}

// getProfile returns the stored record for the caller, falling back to the
// token claims when no record exists yet.
func (h *Handler) getProfile(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	u, err := h.service.GetByID(c.UserContext(), id.UID)
	if err != nil {
		if err == ErrNotFound {
			return c.JSON(User{UID: id.UID, Email: id.Email, DisplayName: id.DisplayName, Role: id.Role})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(u)
}
