package cart

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Carts resolves the cart owned by the caller's session.
type Carts interface {
	Cart(id auth.Identity) *Store
}

// Catalog looks up the product being added.
type Catalog interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type Handler struct {
	carts   Carts
	catalog Catalog
}

func NewHandler(carts Carts, catalog Catalog) *Handler {
	return &Handler{carts: carts, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Delete("/api/v1/cart", h.clearCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:productId", h.updateItem)
	app.Delete("/api/v1/cart/items/:productId", h.removeItem)
}

type addRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}

type updateRequest struct {
	Quantity *int   `json:"quantity"`
	Size     string `json:"size"`
}

type cartResponse struct {
	Items   []Item  `json:"items"`
	Summary Summary `json:"summary"`
}

func respond(c *fiber.Ctx, store *Store) error {
	return c.JSON(cartResponse{Items: store.Items(), Summary: Summarize(store.TotalPrice())})
}

func (h *Handler) store(c *fiber.Ctx) (*Store, error) {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return nil, err
	}
	return h.carts.Cart(id), nil
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return respond(c, store)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}

	p, err := h.catalog.GetByID(c.UserContext(), payload.ProductID)
	switch {
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	store.AddItem(p, payload.Size)
	return respond(c, store)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity is required"})
	}
	if payload.Size != "" {
		store.SetLineQuantity(c.Params("productId"), payload.Size, *payload.Quantity)
	} else {
		store.UpdateQuantity(c.Params("productId"), *payload.Quantity)
	}
	return respond(c, store)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if size := c.Query("size"); size != "" {
		store.RemoveLine(c.Params("productId"), size)
	} else {
		store.RemoveItem(c.Params("productId"))
	}
	return respond(c, store)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	store.Clear()
	return respond(c, store)
}
