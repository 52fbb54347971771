package product

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/blob"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
)

// ValidationError carries per-field messages for a rejected Input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid product: %s", strings.Join(keys, ", "))
}

type Service struct {
	repo    Repository
	blobs   blob.Store
	log     logrus.FieldLogger
	timeout time.Duration
	feed    *realtime.Feed[Product]
}

func NewService(repo Repository, blobs blob.Store, log logrus.FieldLogger, timeout time.Duration) *Service {
	s := &Service{repo: repo, blobs: blobs, log: log, timeout: timeout}
	s.feed = realtime.NewFeed[Product](repo.List,
		realtime.WithTimeout(timeout), realtime.WithLogger(log), realtime.WithName("products"))
	return s
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.List(ctx)
}

// Query lists products matching q. A failed read degrades to an empty page.
func (s *Service) Query(ctx context.Context, q Query) []Product {
	all, err := s.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("catalog read failed")
		return []Product{}
	}
	return q.Apply(all)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

// Subscribe delivers the whole catalog now and after every change.
func (s *Service) Subscribe(onData func([]Product), onErr func(error)) realtime.Unsubscribe {
	return s.feed.Subscribe(onData, onErr)
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return Product{}, &ValidationError{Fields: errs}
	}
	p := in.apply(Product{ID: uuid.NewString(), CreatedAt: time.Now().UTC()})

	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.changed(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return Product{}, &ValidationError{Fields: errs}
	}
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	updated, err := s.repo.Update(ctx, in.apply(existing))
	if err != nil {
		return Product{}, err
	}
	s.changed(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) DeleteMany(ctx context.Context, ids []string) (int, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.changed(ctx)
	}
	return n, nil
}

// UploadImage stores data in the blob store and points the product at it.
func (s *Service) UploadImage(ctx context.Context, id, filename string, data []byte) (Product, error) {
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	url, err := s.blobs.Put(ctx, filename, data)
	if err != nil {
		return Product{}, err
	}
	p.Image = url
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.changed(ctx)
	return updated, nil
}

// Seed loads products into an empty store and reports how many were written.
func (s *Service) Seed(ctx context.Context, products []Product) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	ctx, cancel := backend.WithTimeout(ctx, s.timeout)
	defer cancel()
	n := 0
	for _, p := range products {
		if _, err := s.repo.Create(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	s.changed(ctx)
	return n, nil
}

func (s *Service) changed(ctx context.Context) {
	s.feed.Refresh(context.WithoutCancel(ctx))
}
