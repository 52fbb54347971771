package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/logging"
	"github.com/wichananm65/styliqo-backend/internal/order"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func seedOrder(id, uid string, status order.Status, minutes int) order.Order {
	return order.Order{
		ID:        id,
		Reference: "STY-" + strings.ToUpper(id),
		UserID:    uid,
		UserEmail: uid + "@example.com",
		Items: []order.Item{
			{ProductID: "101", Title: "Banarasi Silk Saree", Price: 1299, Quantity: 2, Size: "Free Size"},
		},
		TotalAmount:     2598,
		PaymentMethod:   "cod",
		ShippingAddress: order.ShippingAddress{Name: "Asha", Phone: "98765", City: "Pune"},
		Status:          status,
		CreatedAt:       base.Add(time.Duration(minutes) * time.Minute),
	}
}

func seededOrders() []order.Order {
	return []order.Order{
		seedOrder("o1", "u-1", order.StatusOrdered, 1),
		seedOrder("o2", "u-2", order.StatusOrdered, 2),
		seedOrder("o3", "u-1", order.StatusShipping, 3),
		seedOrder("o4", "u-3", order.StatusDelivered, 4),
		seedOrder("o5", "u-2", order.StatusDeclined, 5),
	}
}

func newOrderService(seed []order.Order) *order.Service {
	return order.NewService(order.NewInMemoryRepository(seed), nil, logging.Discard(), time.Second)
}

// countingOrders counts status writes.
type countingOrders struct {
	*order.Service
	transitions int
}

func (s *countingOrders) Transition(ctx context.Context, id string, a order.Action) (order.Order, error) {
	s.transitions++
	return s.Service.Transition(ctx, id, a)
}

func TestBucketsNewestFirst(t *testing.T) {
	c := NewConsole(newOrderService(seededOrders()), logging.Discard())
	c.Start()
	defer c.Close()

	buckets := c.Buckets()
	if len(buckets) != len(BucketNames) {
		t.Fatalf("expected %d buckets, got %d", len(BucketNames), len(buckets))
	}
	ordered := buckets[0]
	if ordered.Name != BucketOrdered || ordered.Count != 2 {
		t.Fatalf("unexpected ordered bucket: %+v", ordered)
	}
	if ordered.Orders[0].ID != "o2" || ordered.Orders[1].ID != "o1" {
		t.Fatalf("expected newest first, got %s, %s", ordered.Orders[0].ID, ordered.Orders[1].ID)
	}
	if buckets[2].Name != BucketOutForDelivery || buckets[2].Count != 0 || buckets[2].Orders == nil {
		t.Fatalf("expected empty out-for-delivery bucket, got %+v", buckets[2])
	}

	shipped, err := c.Bucket("shipping")
	if err != nil || shipped.Name != BucketShipped || shipped.Count != 1 {
		t.Fatalf("expected shipped bucket by status alias, got %+v %v", shipped, err)
	}
	if _, err := c.Bucket("lost"); !errors.Is(err, ErrUnknownBucket) {
		t.Fatalf("expected ErrUnknownBucket, got %v", err)
	}
}

func TestActions(t *testing.T) {
	acts := Actions(seedOrder("o1", "u-1", order.StatusOrdered, 0))
	if len(acts) != 2 {
		t.Fatalf("expected accept and decline, got %+v", acts)
	}
	if acts[0].Action != order.ActionAccept || acts[0].Label != "Accept" || acts[0].To != order.StatusShipping {
		t.Fatalf("unexpected first action: %+v", acts[0])
	}
	if acts[1].Action != order.ActionDecline || !strings.Contains(acts[1].Prompt, "DECLINE") {
		t.Fatalf("unexpected decline action: %+v", acts[1])
	}

	acts = Actions(seedOrder("o3", "u-1", order.StatusOutForDelivery, 0))
	if len(acts) != 1 || acts[0].Label != "Mark Delivered" {
		t.Fatalf("unexpected out-for-delivery actions: %+v", acts)
	}
	if acts := Actions(seedOrder("o4", "u-1", order.StatusDelivered, 0)); len(acts) != 0 {
		t.Fatalf("delivered orders have no actions, got %+v", acts)
	}
}

func TestPromptNamesBothStatuses(t *testing.T) {
	p := Prompt(seedOrder("o1", "u-1", order.StatusOrdered, 0), order.StatusShipping)
	if !strings.Contains(p, "'Ordered'") || !strings.Contains(p, "'Shipped'") || !strings.Contains(p, "STY-O1") {
		t.Fatalf("unexpected prompt: %q", p)
	}
}

func TestTransitionRequiresConfirmation(t *testing.T) {
	svc := newOrderService(seededOrders())
	c := NewConsole(svc, logging.Discard())
	c.Start()
	defer c.Close()

	var asked string
	_, err := c.Transition(context.Background(), "o1", order.ActionAccept, ConfirmFunc(func(p string) bool {
		asked = p
		return false
	}))
	var ce *ConfirmationError
	if !errors.As(err, &ce) || !errors.Is(err, ErrNotConfirmed) || ce.Prompt != asked {
		t.Fatalf("expected confirmation error carrying the prompt, got %v", err)
	}
	o, _ := svc.Get(context.Background(), "o1")
	if o.Status != order.StatusOrdered {
		t.Fatalf("declined confirmation must not write, got %s", o.Status)
	}

	if _, err := c.Transition(context.Background(), "o1", order.ActionAccept, nil); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("nil confirmer must not confirm, got %v", err)
	}

	updated, err := c.Transition(context.Background(), "o1", order.ActionAccept, Confirmed(true))
	if err != nil || updated.Status != order.StatusShipping {
		t.Fatalf("expected shipping, got %+v %v", updated, err)
	}
	shipped, _ := c.Bucket(BucketShipped)
	if shipped.Count != 2 {
		t.Fatalf("expected feed to move the order, got %d shipped", shipped.Count)
	}
}

func TestTransitionRejectsInvalidBeforeAsking(t *testing.T) {
	c := NewConsole(newOrderService(seededOrders()), logging.Discard())
	asked := false
	_, err := c.Transition(context.Background(), "o3", order.ActionDecline, ConfirmFunc(func(string) bool {
		asked = true
		return true
	}))
	if !errors.Is(err, order.ErrInvalidTransition) || asked {
		t.Fatalf("expected invalid transition without prompt, got %v asked=%v", err, asked)
	}
	if _, err := c.Transition(context.Background(), "missing", order.ActionAccept, Confirmed(true)); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransitionLeavesSnapshotToFeed(t *testing.T) {
	svc := newOrderService(seededOrders())
	counting := &countingOrders{Service: svc}
	c := NewConsole(counting, logging.Discard())
	c.Start()
	// detach from the feed so only a local patch could change the snapshot
	c.Close()

	if _, err := c.Transition(context.Background(), "o1", order.ActionAccept, Confirmed(true)); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if counting.transitions != 1 {
		t.Fatalf("expected one write, got %d", counting.transitions)
	}
	for _, o := range c.Snapshot() {
		if o.ID == "o1" && o.Status != order.StatusOrdered {
			t.Fatalf("snapshot was patched locally: %s", o.Status)
		}
	}
}
