package recommended

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/product"
)

// Catalog is the product service as seen by the recommender.
type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
}

type Service struct {
	catalog Catalog
	log     logrus.FieldLogger
}

func NewService(catalog Catalog, log logrus.FieldLogger) *Service {
	return &Service{catalog: catalog, log: log}
}

// List returns up to limit ranked products starting at offset. When likeID
// names a product, its category is preferred. Read failures degrade to an
// empty rail.
func (s *Service) List(ctx context.Context, limit, offset int, likeID string) []product.Product {
	all, err := s.catalog.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("recommended: catalog read failed")
		return []product.Product{}
	}
	var like *product.Product
	if likeID != "" {
		for i := range all {
			if all[i].ID == likeID {
				like = &all[i]
				break
			}
		}
		if like == nil {
			s.log.WithField("product_id", likeID).Debug("recommended: unknown product, ranking without it")
		}
	}
	return page(Rank(all, like), limit, offset)
}
