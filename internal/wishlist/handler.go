package wishlist

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Wishlists resolves the wishlist owned by the caller's session.
type Wishlists interface {
	Wishlist(id auth.Identity) *Store
}

type Catalog interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type Handler struct {
	lists   Wishlists
	catalog Catalog
}

func NewHandler(lists Wishlists, catalog Catalog) *Handler {
	return &Handler{lists: lists, catalog: catalog}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist", h.addItem)
	app.Post("/api/v1/wishlist/toggle", h.toggleItem)
	app.Delete("/api/v1/wishlist/:productId", h.removeItem)
	app.Delete("/api/v1/wishlist", h.clear)
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) store(c *fiber.Ctx) (*Store, bool) {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return nil, false
	}
	return h.lists.Wishlist(id), true
}

// lookup parses the body and resolves the product, writing the error
// response itself when it fails.
func (h *Handler) lookup(c *fiber.Ctx) (product.Product, bool, error) {
	payload := new(wishlistRequest)
	if err := c.BodyParser(payload); err != nil {
		return product.Product{}, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return product.Product{}, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	p, err := h.catalog.GetByID(c.UserContext(), payload.ProductID)
	switch {
	case errors.Is(err, product.ErrNotFound):
		return p, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case backend.IsUnavailable(err):
		return p, false, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	case err != nil:
		return p, false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return p, true, nil
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	s, ok := h.store(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(s.Items())
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	s, ok := h.store(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, found, err := h.lookup(c)
	if !found {
		return err
	}
	s.AddItem(p)
	return c.JSON(s.Items())
}

func (h *Handler) toggleItem(c *fiber.Ctx) error {
	s, ok := h.store(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, found, err := h.lookup(c)
	if !found {
		return err
	}
	liked := s.ToggleItem(p)
	return c.JSON(fiber.Map{"productId": p.ID, "liked": liked, "items": s.Items()})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	s, ok := h.store(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	s.RemoveItem(c.Params("productId"))
	return c.JSON(s.Items())
}

func (h *Handler) clear(c *fiber.Ctx) error {
	s, ok := h.store(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	s.Clear()
	return c.JSON(s.Items())
}
