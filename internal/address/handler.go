package address

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/backend"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/address", h.getAddresses)
	app.Post("/api/v1/address", h.addAddress)
}

func (h *Handler) getAddresses(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addrs, err := h.service.ListAddresses(c.UserContext(), userID)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(addrs)
}

func (h *Handler) addAddress(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(Input)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.AddAddress(c.UserContext(), userID, *payload)
	if err != nil {
		return WriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

// WriteError maps address errors to responses. Checkout reuses it.
func WriteError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
