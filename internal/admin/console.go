// Package admin holds the back-office operations: the order console, catalog
// maintenance, the customer list and exports.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

var ErrNotConfirmed = errors.New("action not confirmed")

// Confirmer approves a destructive action after reading its prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer with a fixed answer, used when the client already
// showed the prompt.
type Confirmed bool

func (c Confirmed) Confirm(string) bool { return bool(c) }

// ConfirmationError carries the prompt that was declined.
type ConfirmationError struct {
	Prompt string
}

func (e *ConfirmationError) Error() string { return ErrNotConfirmed.Error() + ": " + e.Prompt }

func (e *ConfirmationError) Unwrap() error { return ErrNotConfirmed }

// Orders is the order service as seen by the console.
type Orders interface {
	ListAll(ctx context.Context) ([]order.Order, error)
	Plan(ctx context.Context, id string, action order.Action) (order.Order, order.Status, error)
	Transition(ctx context.Context, id string, action order.Action) (order.Order, error)
	SubscribeAll(onData func([]order.Order), onErr func(error)) realtime.Unsubscribe
}

// ActionOption is one button on an order card.
type ActionOption struct {
	Action order.Action `json:"action"`
	Label  string       `json:"label"`
	To     order.Status `json:"to"`
	Prompt string       `json:"prompt"`
}

// Console is the admin's live view of all orders. Its snapshot only ever
// changes through the order feed, never through its own writes.
type Console struct {
	orders Orders
	log    logrus.FieldLogger

	mu       sync.RWMutex
	snapshot []order.Order
	lastErr  error
	unsub    realtime.Unsubscribe
}

func NewConsole(orders Orders, log logrus.FieldLogger) *Console {
	return &Console{orders: orders, log: log, snapshot: []order.Order{}}
}

// Start subscribes to the order feed. Calling it again is a no-op.
func (c *Console) Start() {
	c.mu.Lock()
	if c.unsub != nil {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	unsub := c.orders.SubscribeAll(c.replace, c.feedError)

	c.mu.Lock()
	if c.unsub != nil {
		c.mu.Unlock()
		unsub()
		return
	}
	c.unsub = unsub
	c.mu.Unlock()
}

func (c *Console) Close() {
	c.mu.Lock()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (c *Console) replace(list []order.Order) {
	c.mu.Lock()
	c.snapshot = list
	c.mu.Unlock()
}

func (c *Console) feedError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	c.log.WithError(err).Warn("order console feed degraded")
}

// Snapshot returns the orders as last delivered by the feed.
func (c *Console) Snapshot() []order.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]order.Order{}, c.snapshot...)
}

func (c *Console) Buckets() []Bucket {
	return GroupOrders(c.Snapshot())
}

// Bucket returns the orders of one tab.
func (c *Console) Bucket(name string) (Bucket, error) {
	b, err := ParseBucket(name)
	if err != nil {
		return Bucket{}, err
	}
	for _, bk := range c.Buckets() {
		if bk.Name == b {
			return bk, nil
		}
	}
	return Bucket{}, ErrUnknownBucket
}

// Actions lists the transitions valid for o with their captions and prompts.
func Actions(o order.Order) []ActionOption {
	allowed := order.AllowedActions(o.Status)
	out := make([]ActionOption, 0, len(allowed))
	for _, a := range allowed {
		to, _ := order.Next(o.Status, a)
		out = append(out, ActionOption{
			Action: a,
			Label:  order.ActionLabel(o.Status, a),
			To:     to,
			Prompt: Prompt(o, to),
		})
	}
	return out
}

// Prompt is the confirmation question for moving o to the given status.
func Prompt(o order.Order, to order.Status) string {
	ref := o.Reference
	if ref == "" {
		ref = o.ID
	}
	if to == order.StatusDeclined {
		return fmt.Sprintf("Are you sure you want to DECLINE order %s (currently '%s')?", ref, order.Label(o.Status))
	}
	return fmt.Sprintf("Are you sure you want to move order %s from '%s' to '%s'?", ref, order.Label(o.Status), order.Label(to))
}

// Transition validates action against the stored status, asks confirm and
// only then writes. The local snapshot is left for the feed to update.
func (c *Console) Transition(ctx context.Context, id string, action order.Action, confirm Confirmer) (order.Order, error) {
	o, to, err := c.orders.Plan(ctx, id, action)
	if err != nil {
		return order.Order{}, err
	}
	prompt := Prompt(o, to)
	if confirm == nil || !confirm.Confirm(prompt) {
		return order.Order{}, &ConfirmationError{Prompt: prompt}
	}
	updated, err := c.orders.Transition(ctx, id, action)
	if err != nil {
		c.log.WithError(err).WithField("order_id", id).Error("failed to update status")
		return order.Order{}, err
	}
	return updated, nil
}
