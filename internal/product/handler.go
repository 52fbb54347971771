package product

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/blob"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/:id", h.getProduct)
}

// RegisterAdminRoutes expects r to be guarded by auth.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/products", h.createProduct)
	r.Put("/products/:id", h.updateProduct)
	r.Delete("/products/:id", h.deleteProduct)
	r.Post("/products/:id/image", h.uploadImage)
}

func splitParam(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	q := Query{
		Categories: splitParam(c.Query("category")),
		PriceBands: splitParam(c.Query("price")),
		MinRating:  ParseRating(c.Query("rating")),
		Search:     c.Query("q"),
		Sort:       c.Query("sort", SortRelevance),
	}
	return c.JSON(h.service.Query(c.UserContext(), q))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p, err := h.service.Create(c.UserContext(), *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p, err := h.service.Update(c.UserContext(), c.Params("id"), *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	p, err := h.service.UploadImage(c.UserContext(), c.Params("id"), file.Filename, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func writeError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case errors.Is(err, blob.ErrEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
