package checkout

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/address"
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
	app.Post("/api/v1/checkout", h.begin)
	app.Get("/api/v1/checkout", h.getState)
	app.Delete("/api/v1/checkout", h.reset)
	app.Post("/api/v1/checkout/address", h.address)
	app.Post("/api/v1/checkout/continue", h.proceed)
	app.Post("/api/v1/checkout/payment", h.payment)
	app.Post("/api/v1/checkout/upi/verify", h.verifyUPI)
	app.Post("/api/v1/checkout/place", h.place)
}

type addressRequest struct {
	AddressID string         `json:"addressId"`
	Address   *address.Input `json:"address"`
	ShowForm  *bool          `json:"showForm"`
}

type paymentRequest struct {
	Mode   string `json:"mode"`
	Method string `json:"method"`
}

type upiRequest struct {
	UPIID string `json:"upiId"`
}

// with resolves the caller and runs fn, translating its result.
func (h *Handler) with(c *fiber.Ctx, fn func(id auth.Identity) (State, error)) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	st, err := fn(id)
	if err != nil {
		return writeError(c, st, err)
	}
	return c.JSON(st)
}

func (h *Handler) begin(c *fiber.Ctx) error {
	return h.with(c, h.service.Begin)
}

func (h *Handler) getState(c *fiber.Ctx) error {
	return h.with(c, h.service.State)
}

func (h *Handler) reset(c *fiber.Ctx) error {
	uid, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	h.service.Reset(uid)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) address(c *fiber.Ctx) error {
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ctx := c.UserContext()
	return h.with(c, func(id auth.Identity) (State, error) {
		switch {
		case payload.Address != nil:
			return h.service.AddAddress(ctx, id, *payload.Address)
		case payload.AddressID != "":
			return h.service.SelectAddress(id, payload.AddressID)
		case payload.ShowForm != nil:
			return h.service.ShowAddressForm(id, *payload.ShowForm)
		}
		return State{}, ErrNoAddressSelected
	})
}

func (h *Handler) proceed(c *fiber.Ctx) error {
	return h.with(c, h.service.ProceedToPayment)
}

func (h *Handler) payment(c *fiber.Ctx) error {
	payload := new(paymentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return h.with(c, func(id auth.Identity) (State, error) {
		return h.service.SelectPayment(id, payload.Mode, payload.Method)
	})
}

func (h *Handler) verifyUPI(c *fiber.Ctx) error {
	payload := new(upiRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ctx := c.UserContext()
	return h.with(c, func(id auth.Identity) (State, error) {
		return h.service.VerifyUPI(ctx, id, payload.UPIID)
	})
}

func (h *Handler) place(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return h.with(c, func(id auth.Identity) (State, error) {
		return h.service.PlaceOrder(ctx, id)
	})
}

func writeError(c *fiber.Ctx, st State, err error) error {
	var ve *address.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrEmptyCart):
		// the client leaves checkout for the cart page
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error(), "redirect": "/cart"})
	case errors.Is(err, ErrNoCheckout), errors.Is(err, ErrUnknownAddress):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalidUPI):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error(), "state": st})
	case errors.Is(err, ErrWrongStep), errors.Is(err, ErrNoAddressSelected),
		errors.Is(err, ErrUPINotVerified), errors.Is(err, ErrPlacing):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalidPayment):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
