package recommended

import "github.com/gofiber/fiber/v2"

const defaultLimit = 12

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/recommended", h.getRecommended)
}

func (h *Handler) getRecommended(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return c.JSON(h.service.List(c.UserContext(), limit, offset, c.Query("like")))
}
