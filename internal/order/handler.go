package order

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
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/:id", h.getOrder)
}

// View is an order with its tracking projection.
type View struct {
	Order
	Tracking Tracking `json:"tracking"`
}

func NewView(o Order) View {
	return View{Order: o, Tracking: Track(o.Status)}
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		return WriteError(c, err)
	}
	views := make([]View, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewView(o))
	}
	return c.JSON(views)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return WriteError(c, err)
	}
	// other customers' orders look missing
	if o.UserID != id.UID && !id.IsAdmin() {
		return WriteError(c, ErrNotFound)
	}
	return c.JSON(NewView(o))
}

// WriteError maps order errors to responses.
func WriteError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case errors.Is(err, ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrUnknownAction), errors.Is(err, ErrUnknownStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
