package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/events"
	"github.com/wichananm65/styliqo-backend/internal/logging"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// stalledPublisher never answers; it returns only when ctx ends.
type stalledPublisher struct {
	mu          sync.Mutex
	hadDeadline bool
}

func (p *stalledPublisher) Publish(ctx context.Context, e events.Event) error {
	_, ok := ctx.Deadline()
	p.mu.Lock()
	p.hadDeadline = ok
	p.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (p *stalledPublisher) Close() error { return nil }

// failingWrites serves reads from the embedded repository and fails status writes.
type failingWrites struct {
	Repository
}

func (failingWrites) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	return errors.New("connection reset")
}

func sampleDraft(uid string) Draft {
	return Draft{
		UserID:        uid,
		UserEmail:     uid + "@example.com",
		Items:         []Item{{ProductID: "101", Title: "Banarasi Silk Saree", Price: 1299, Quantity: 1, Size: "Free Size"}},
		TotalAmount:   1299,
		PaymentMethod: "cod",
		ShippingAddress: ShippingAddress{
			Name: "Asha", Phone: "98765", HouseNo: "12B", RoadName: "MG Road", City: "Pune", State: "MH", PinCode: "411001",
		},
	}
}

func newTestService(repo Repository, pub events.Publisher) *Service {
	s := NewService(repo, pub, logging.Discard(), time.Second)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestCreateAndTransitions(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(NewInMemoryRepository(nil), pub)
	ctx := context.Background()

	o, err := svc.Create(ctx, sampleDraft("u-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Status != StatusOrdered || o.ID == "" || len(o.Reference) != 14 || o.UpdatedAt != nil {
		t.Fatalf("unexpected created order %+v", o)
	}

	if _, err := svc.Transition(ctx, o.ID, ActionAdvance); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected skip to be rejected, got %v", err)
	}

	for _, want := range []struct {
		action Action
		status Status
	}{{ActionAccept, StatusShipping}, {ActionAdvance, StatusOutForDelivery}, {ActionAdvance, StatusDelivered}} {
		got, err := svc.Transition(ctx, o.ID, want.action)
		if err != nil || got.Status != want.status || got.UpdatedAt == nil {
			t.Fatalf("transition %s: %+v %v", want.action, got, err)
		}
	}

	stored, _ := svc.Get(ctx, o.ID)
	if stored.Status != StatusDelivered || stored.TotalAmount != 1299 || stored.ShippingAddress.City != "Pune" || len(stored.Items) != 1 {
		t.Fatalf("status write changed more than status: %+v", stored)
	}
	if _, err := svc.Transition(ctx, o.ID, ActionDecline); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal order accepted a transition: %v", err)
	}

	if len(pub.events) != 4 || pub.events[0].Topic != events.TopicOrderCreated || pub.events[3].PrevStatus != string(StatusOutForDelivery) {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestDeclineOnlyBeforeShipping(t *testing.T) {
	svc := newTestService(NewInMemoryRepository(nil), nil)
	ctx := context.Background()
	o, _ := svc.Create(ctx, sampleDraft("u-1"))
	svc.Transition(ctx, o.ID, ActionAccept)

	if _, err := svc.Transition(ctx, o.ID, ActionDecline); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected decline from Shipping to be rejected, got %v", err)
	}
	stored, _ := svc.Get(ctx, o.ID)
	if stored.Status != StatusShipping {
		t.Fatalf("status changed by rejected transition: %q", stored.Status)
	}
}

func TestFailedWriteLeavesFeedsUntouched(t *testing.T) {
	mem := NewInMemoryRepository(nil)
	seed := newTestService(mem, nil)
	o, _ := seed.Create(context.Background(), sampleDraft("u-1"))

	svc := newTestService(failingWrites{Repository: mem}, nil)
	var snaps [][]Order
	unsub := svc.SubscribeAll(func(list []Order) { snaps = append(snaps, list) }, func(error) {})
	defer unsub()

	if _, err := svc.Transition(context.Background(), o.ID, ActionAccept); err == nil {
		t.Fatalf("expected write failure")
	}
	if len(snaps) != 1 || snaps[0][0].Status != StatusOrdered {
		t.Fatalf("feed changed after failed write: %v", snaps)
	}
}

func TestFeedsFollowWrites(t *testing.T) {
	svc := newTestService(NewInMemoryRepository(nil), nil)
	ctx := context.Background()

	var mine, all [][]Order
	u1 := svc.SubscribeUser("u-1", func(l []Order) { mine = append(mine, l) }, func(error) {})
	u2 := svc.SubscribeAll(func(l []Order) { all = append(all, l) }, func(error) {})
	defer u1()
	defer u2()

	first, _ := svc.Create(ctx, sampleDraft("u-1"))
	svc.Create(ctx, sampleDraft("u-2"))
	svc.Transition(ctx, first.ID, ActionAccept)

	last := mine[len(mine)-1]
	if len(last) != 1 || last[0].Status != StatusShipping {
		t.Fatalf("unexpected user snapshot %+v", last)
	}
	latest := all[len(all)-1]
	if len(latest) != 2 || latest[0].UserID != "u-2" {
		t.Fatalf("expected newest first, got %+v", latest)
	}
}

func TestOfflineOrders(t *testing.T) {
	svc := newTestService(OfflineRepository{}, nil)
	if _, err := svc.Create(context.Background(), sampleDraft("u-1")); !backend.IsUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	list, err := svc.ListForUser(context.Background(), "u-1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v %v", list, err)
	}
}

func TestStalledPublisherDoesNotBlockWrites(t *testing.T) {
	pub := &stalledPublisher{}
	svc := NewService(NewInMemoryRepository(nil), pub, logging.Discard(), 50*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	o, err := svc.Create(ctx, sampleDraft("u-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Transition(ctx, o.ID, ActionAccept); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("writes waited %v on the publisher", elapsed)
	}
	pub.mu.Lock()
	defer pub.mu.Unlock()
	if !pub.hadDeadline {
		t.Fatalf("publish ran without a deadline")
	}
	stored, err := svc.Get(ctx, o.ID)
	if err != nil || stored.Status != StatusShipping {
		t.Fatalf("expected stored Shipping, got %+v %v", stored, err)
	}
}
