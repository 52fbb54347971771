package order

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/events"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

// Service owns order creation and every status change.
type Service struct {
	repo      Repository
	publisher events.Publisher
	log       logrus.FieldLogger
	timeout   time.Duration
	now       func() time.Time

	all  *realtime.Feed[Order]
	mine *realtime.FeedSet[Order]
}

func NewService(repo Repository, publisher events.Publisher, log logrus.FieldLogger, timeout time.Duration) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		timeout:   timeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
	s.all = realtime.NewFeed[Order](repo.List,
		realtime.WithTimeout(timeout), realtime.WithLogger(log), realtime.WithName("orders"))
	s.mine = realtime.NewFeedSet[Order](repo.ListByUser,
		realtime.WithTimeout(timeout), realtime.WithLogger(log), realtime.WithName("orders.mine"))
	return s
}

// Create stores a new order in the Ordered state.
func (s *Service) Create(ctx context.Context, d Draft) (Order, error) {
	o := d.build(s.now())

	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		s.log.WithError(err).WithField("user_id", d.UserID).Error("order create failed")
		return Order{}, err
	}

	s.log.WithFields(logrus.Fields{"order_id": created.ID, "reference": created.Reference, "total": created.TotalAmount}).Info("order placed")
	s.publish(ctx, events.Event{
		Topic:      events.TopicOrderCreated,
		OrderID:    created.ID,
		Reference:  created.Reference,
		UserID:     created.UserID,
		Status:     string(created.Status),
		Total:      created.TotalAmount,
		OccurredAt: created.CreatedAt,
	})
	s.changed(ctx, created.UserID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.List(ctx)
}

// Plan validates action against the stored status without writing anything.
func (s *Service) Plan(ctx context.Context, id string, action Action) (Order, Status, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return Order{}, "", err
	}
	to, err := Next(o.Status, action)
	if err != nil {
		return o, "", err
	}
	return o, to, nil
}

// Transition applies action to the order's current stored status. On any
// failure nothing is written and the returned error explains why.
func (s *Service) Transition(ctx context.Context, id string, action Action) (Order, error) {
	o, to, err := s.Plan(ctx, id, action)
	if err != nil {
		return Order{}, err
	}

	at := s.now()
	wctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.repo.UpdateStatus(wctx, id, to, at); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"order_id": id, "to": to}).Error("status update failed")
		return Order{}, err
	}

	prev := o.Status
	o.Status = to
	o.UpdatedAt = &at
	s.log.WithFields(logrus.Fields{"order_id": id, "from": prev, "to": to}).Info("order status changed")
	s.publish(wctx, events.Event{
		Topic:      events.TopicOrderStatusUpdated,
		OrderID:    o.ID,
		Reference:  o.Reference,
		UserID:     o.UserID,
		Status:     string(to),
		PrevStatus: string(prev),
		OccurredAt: at,
	})
	s.changed(wctx, o.UserID)
	return o, nil
}

// SubscribeAll streams every order, newest first. Used by the admin console.
func (s *Service) SubscribeAll(onData func([]Order), onErr func(error)) realtime.Unsubscribe {
	return s.all.Subscribe(onData, onErr)
}

// SubscribeUser streams one customer's orders.
func (s *Service) SubscribeUser(userID string, onData func([]Order), onErr func(error)) realtime.Unsubscribe {
	return s.mine.Subscribe(userID, onData, onErr)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := backend.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.WithError(err).WithField("topic", e.Topic).Warn("event publish failed")
	}
}

func (s *Service) changed(ctx context.Context, userID string) {
	ctx = context.WithoutCancel(ctx)
	s.all.Refresh(ctx)
	s.mine.Refresh(ctx, userID)
}
