package admin

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/order"
)

// DefaultPurgeCategories is what the category cleanup removes when the
// request names none.
var DefaultPurgeCategories = []string{"Sarees", "Kurtis"}

type Handler struct {
	console   *Console
	orders    Orders
	cleaner   *Cleaner
	directory *Directory
	log       logrus.FieldLogger
}

func NewHandler(console *Console, orders Orders, cleaner *Cleaner, directory *Directory, log logrus.FieldLogger) *Handler {
	return &Handler{console: console, orders: orders, cleaner: cleaner, directory: directory, log: log}
}

// RegisterAdminRoutes expects r to be guarded by auth.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/orders", h.getOrders)
	r.Get("/orders/export", h.exportOrders)
	r.Post("/orders/:id/transition", h.transition)
	r.Get("/customers", h.getCustomers)
	r.Get("/stats", h.getStats)
	r.Post("/products/cleanup/duplicates", h.cleanupDuplicates)
	r.Post("/products/cleanup/category", h.cleanupCategory)
}

// card is an order as the console renders it.
type card struct {
	order.Order
	Label   string         `json:"label"`
	Actions []ActionOption `json:"actions"`
}

type bucketView struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Orders []card `json:"orders"`
}

func toView(b Bucket) bucketView {
	cards := make([]card, 0, len(b.Orders))
	for _, o := range b.Orders {
		cards = append(cards, card{Order: o, Label: order.Label(o.Status), Actions: Actions(o)})
	}
	return bucketView{Name: b.Name, Count: b.Count, Orders: cards}
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	if name := c.Query("bucket"); name != "" {
		b, err := h.console.Bucket(name)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(toView(b))
	}
	buckets := h.console.Buckets()
	views := make([]bucketView, 0, len(buckets))
	for _, b := range buckets {
		views = append(views, toView(b))
	}
	return c.JSON(fiber.Map{"buckets": views})
}

type transitionRequest struct {
	Action  string `json:"action"`
	Confirm bool   `json:"confirm"`
}

func (h *Handler) transition(c *fiber.Ctx) error {
	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	action, err := order.ParseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.console.Transition(c.UserContext(), c.Params("id"), action, Confirmed(req.Confirm))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(card{Order: o, Label: order.Label(o.Status), Actions: Actions(o)})
}

func (h *Handler) exportOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := WriteOrdersXLSX(&buf, orders); err != nil {
		h.log.WithError(err).Error("order export failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate Excel file"})
	}
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+ExportFilename)
	c.Set(fiber.HeaderContentType, XLSXContentType)
	return c.Send(buf.Bytes())
}

func (h *Handler) getCustomers(c *fiber.Ctx) error {
	customers, err := h.directory.Customers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customers)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	customers, err := h.directory.Customers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ComputeStats(orders, len(customers)))
}

type cleanupRequest struct {
	Categories []string `json:"categories"`
	Confirm    bool     `json:"confirm"`
}

func (h *Handler) cleanupDuplicates(c *fiber.Ctx) error {
	var req cleanupRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
		}
	}
	res, err := h.cleaner.RemoveDuplicates(c.UserContext(), Confirmed(req.Confirm))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) cleanupCategory(c *fiber.Ctx) error {
	var req cleanupRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
		}
	}
	categories := req.Categories
	if len(categories) == 0 {
		categories = DefaultPurgeCategories
	}
	res, err := h.cleaner.PurgeCategories(c.UserContext(), categories, Confirmed(req.Confirm))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func writeError(c *fiber.Ctx, err error) error {
	var ce *ConfirmationError
	switch {
	case errors.As(err, &ce):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "confirmation required", "prompt": ce.Prompt})
	case errors.Is(err, ErrUnknownBucket):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case backend.IsUnavailable(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
	default:
		return order.WriteError(c, err)
	}
}
