package address

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

// ValidationError lists the blank fields of a rejected Input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid address: %s", strings.Join(keys, ", "))
}

type Service struct {
	repo    Repository
	log     logrus.FieldLogger
	timeout time.Duration
	feeds   *realtime.FeedSet[Address]
	now     func() time.Time
}

func NewService(repo Repository, log logrus.FieldLogger, timeout time.Duration) *Service {
	s := &Service{repo: repo, log: log, timeout: timeout, now: func() time.Time { return time.Now().UTC() }}
	s.feeds = realtime.NewFeedSet[Address](repo.ListByUser,
		realtime.WithTimeout(timeout), realtime.WithLogger(log), realtime.WithName("addresses"))
	return s
}

// ListAddresses returns the user's addresses, newest first.
func (s *Service) ListAddresses(ctx context.Context, userID string) ([]Address, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.ListByUser(ctx, userID)
}

// Subscribe delivers the user's addresses now and after each AddAddress.
func (s *Service) Subscribe(userID string, onData func([]Address), onErr func(error)) realtime.Unsubscribe {
	return s.feeds.Subscribe(userID, onData, onErr)
}

// AddAddress validates in and appends it. Nothing is written when a field is blank.
func (s *Service) AddAddress(ctx context.Context, userID string, in Input) (Address, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return Address{}, &ValidationError{Fields: errs}
	}
	a := in.toAddress(uuid.NewString(), userID, s.now())

	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("address write failed")
		return Address{}, err
	}
	s.feeds.Refresh(context.WithoutCancel(ctx), userID)
	return created, nil
}
