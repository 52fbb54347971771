package banner

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewService(r Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: r, log: log}
}

func (s *Service) List(ctx context.Context, limit int) []Banner {
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		s.log.WithError(err).Warn("banner read failed")
		return []Banner{}
	}
	return items
}

func (s *Service) SeedDefaults(ctx context.Context) error {
	items, err := s.repo.List(ctx, 1)
	if err != nil || len(items) > 0 {
		return err
	}
	return s.repo.Save(ctx, Defaults)
}
