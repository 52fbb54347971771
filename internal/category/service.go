package category

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewService(r Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: r, log: log}
}

// List returns up to limit categories; a failed read yields an empty list.
func (s *Service) List(ctx context.Context, limit int) []Category {
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		s.log.WithError(err).Warn("category read failed")
		return []Category{}
	}
	return items
}

// SeedDefaults fills an empty store with Defaults.
func (s *Service) SeedDefaults(ctx context.Context) error {
	items, err := s.repo.List(ctx, 1)
	if err != nil || len(items) > 0 {
		return err
	}
	return s.repo.Save(ctx, Defaults)
}
