// Package storage picks the repository implementations for the configured
// backend mode and owns the connections behind them.
package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wichananm65/styliqo-backend/internal/address"
	"github.com/wichananm65/styliqo-backend/internal/backend"
	"github.com/wichananm65/styliqo-backend/internal/banner"
	"github.com/wichananm65/styliqo-backend/internal/blob"
	"github.com/wichananm65/styliqo-backend/internal/category"
	"github.com/wichananm65/styliqo-backend/internal/config"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/product"
	"github.com/wichananm65/styliqo-backend/internal/user"
)

// Repositories is every store the services need, all from one backend mode.
type Repositories struct {
	Mode       backend.Mode
	Users      user.Repository
	Products   product.Repository
	Categories category.Repository
	Banners    banner.Repository
	Addresses  address.Repository
	Orders     order.Repository
	Blobs      blob.Store

	db    *sql.DB
	mongo *mongo.Client
}

// Open connects to the configured backend. In mongo mode orders live in the
// document store and everything else goes to Postgres when DATABASE_URL is
// set, otherwise to memory.
func Open(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Repositories, error) {
	mode, err := backend.ParseMode(cfg.StoreBackend)
	if err != nil {
		return nil, err
	}
	r := &Repositories{Mode: mode, Blobs: blob.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)}

	switch mode {
	case backend.ModeMemory:
		r.memory()
		r.Blobs = blob.NewMemoryStore(cfg.PublicBaseURL)
	case backend.ModePostgres:
		if err := r.postgres(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
	case backend.ModeMongo:
		if cfg.DatabaseURL != "" {
			if err := r.postgres(ctx, cfg.DatabaseURL); err != nil {
				return nil, err
			}
		} else {
			r.memory()
		}
		client, err := backend.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			r.Close(ctx)
			return nil, err
		}
		r.mongo = client
		r.Orders = order.NewMongoRepository(client.Database(cfg.MongoDatabase).Collection(order.MongoCollection))
	case backend.ModeOffline:
		r.offline()
	}

	log.WithField("backend", mode).Info("storage ready")
	return r, nil
}

func (r *Repositories) memory() {
	r.Users = user.NewInMemoryRepository(nil)
	r.Products = product.NewInMemoryRepository(nil)
	r.Categories = category.NewInMemoryRepository(nil)
	r.Banners = banner.NewInMemoryRepository(nil)
	r.Addresses = address.NewInMemoryRepository(nil)
	r.Orders = order.NewInMemoryRepository(nil)
}

func (r *Repositories) postgres(ctx context.Context, url string) error {
	db, err := backend.OpenPostgres(ctx, url)
	if err != nil {
		return err
	}
	if err := backend.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return errors.Wrap(err, "ensure schema")
	}
	r.db = db
	r.Users = user.NewPostgresRepository(db)
	r.Products = product.NewPostgresRepository(db)
	r.Categories = category.NewPostgresRepository(db)
	r.Banners = banner.NewPostgresRepository(db)
	r.Addresses = address.NewPostgresRepository(db)
	r.Orders = order.NewPostgresRepository(db)
	return nil
}

// offline serves empty reads and fails every write with backend.ErrUnavailable.
// Categories and banners have no writes outside seeding, so empty memory
// stores stand in for them.
func (r *Repositories) offline() {
	r.Users = user.OfflineRepository{}
	r.Products = product.OfflineRepository{}
	r.Categories = category.NewInMemoryRepository(nil)
	r.Banners = banner.NewInMemoryRepository(nil)
	r.Addresses = address.OfflineRepository{}
	r.Orders = order.OfflineRepository{}
	r.Blobs = blob.OfflineStore{}
}

// Seedable reports whether startup seeding makes sense for this mode.
func (r *Repositories) Seedable() bool {
	return r.Mode != backend.ModeOffline
}

// Close releases the connections opened by Open.
func (r *Repositories) Close(ctx context.Context) error {
	var first error
	if r.mongo != nil {
		if err := r.mongo.Disconnect(ctx); err != nil {
			first = errors.Wrap(err, "disconnect mongodb")
		}
		r.mongo = nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "close postgres")
		}
		r.db = nil
	}
	return first
}
