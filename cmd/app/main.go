package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/styliqo-backend/internal/address"
	"github.com/wichananm65/styliqo-backend/internal/admin"
	"github.com/wichananm65/styliqo-backend/internal/auth"
	"github.com/wichananm65/styliqo-backend/internal/banner"
	"github.com/wichananm65/styliqo-backend/internal/blob"
	"github.com/wichananm65/styliqo-backend/internal/cart"
	"github.com/wichananm65/styliqo-backend/internal/category"
	"github.com/wichananm65/styliqo-backend/internal/checkout"
	"github.com/wichananm65/styliqo-backend/internal/config"
	"github.com/wichananm65/styliqo-backend/internal/events"
	"github.com/wichananm65/styliqo-backend/internal/infrastructure/storage"
	"github.com/wichananm65/styliqo-backend/internal/logging"
	"github.com/wichananm65/styliqo-backend/internal/order"
	"github.com/wichananm65/styliqo-backend/internal/product"
	"github.com/wichananm65/styliqo-backend/internal/realtime"
	"github.com/wichananm65/styliqo-backend/internal/recommended"
	"github.com/wichananm65/styliqo-backend/internal/session"
	"github.com/wichananm65/styliqo-backend/internal/user"
	"github.com/wichananm65/styliqo-backend/internal/wishlist"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	defer repos.Close(context.Background())

	publisher := newPublisher(cfg, log)
	defer publisher.Close()

	userService := user.NewService(repos.Users, cfg.AdminEmail)
	productService := product.NewService(repos.Products, repos.Blobs, log, cfg.BackendTimeout)
	categoryService := category.NewService(repos.Categories, log)
	bannerService := banner.NewService(repos.Banners, log)
	addressService := address.NewService(repos.Addresses, log, cfg.BackendTimeout)
	orderService := order.NewService(repos.Orders, publisher, log, cfg.BackendTimeout)

	if cfg.SeedCatalog && repos.Seedable() {
		seed(ctx, log, productService, categoryService, bannerService)
	}

	provider, err := newProvider(ctx, cfg, userService)
	if err != nil {
		log.WithError(err).Fatal("failed to set up auth provider")
	}
	tokens := auth.NewTokens(cfg.JWTSecret, auth.DefaultTokenTTL)

	manager := session.NewManager(provider, log)
	checkoutService := checkout.NewService(addressService, orderService, manager, checkout.NewUPIVerifier(cfg.UPIVerifyDelay), log)
	manager.OnClose(checkoutService.Reset)
	defer manager.CloseAll()

	console := admin.NewConsole(orderService, log)
	console.Start()
	defer console.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	setupCORS(app)
	app.Use(logging.RequestLogger(log))

	sessionHandler := session.NewHandler(provider, tokens, manager, userService, log)
	sessionHandler.RegisterPublicRoutes(app)
	banner.NewHandler(bannerService).RegisterPublicRoutes(app)
	category.NewHandler(categoryService).RegisterPublicRoutes(app)
	recommended.NewHandler(recommended.NewService(productService, log)).RegisterPublicRoutes(app)

	// register product public routes after specific endpoints to avoid route param collision
	productHandler := product.NewHandler(productService)
	productHandler.RegisterPublicRoutes(app)

	serveUploads(app, cfg, repos.Blobs)

	app.Use(tokens.Middleware())

	sessionHandler.RegisterProtectedRoutes(app)
	user.NewHandler(userService).RegisterProtectedRoutes(app)
	cart.NewHandler(manager, productService).RegisterProtectedRoutes(app)
	wishlist.NewHandler(manager, productService).RegisterProtectedRoutes(app)
	address.NewHandler(addressService).RegisterProtectedRoutes(app)
	order.NewHandler(orderService).RegisterProtectedRoutes(app)
	checkout.NewHandler(checkoutService).RegisterProtectedRoutes(app)

	adminRoutes := app.Group("/api/v1/admin", auth.RequireAdmin())
	productHandler.RegisterAdminRoutes(adminRoutes)
	admin.NewHandler(
		console,
		orderService,
		admin.NewCleaner(productService, log),
		admin.NewDirectory(userService, orderService, cfg.AdminEmail),
		log,
	).RegisterAdminRoutes(adminRoutes)

	rt := &http.Server{
		Addr: cfg.RealtimeAddr,
		Handler: realtime.NewRouter(
			realtime.Route{Path: "/ws/products", Handler: realtime.Handler(log, anyone, func(_ string, onData func([]product.Product), onErr func(error)) realtime.Unsubscribe {
				return productService.Subscribe(onData, onErr)
			})},
			realtime.Route{Path: "/ws/orders", Handler: realtime.Handler(log, adminOnly(tokens), func(_ string, onData func([]order.Order), onErr func(error)) realtime.Unsubscribe {
				return orderService.SubscribeAll(onData, onErr)
			})},
			realtime.Route{Path: "/ws/orders/mine", Handler: realtime.Handler(log, signedIn(tokens), orderService.SubscribeUser)},
			realtime.Route{Path: "/ws/addresses", Handler: realtime.Handler(log, signedIn(tokens), addressService.Subscribe)},
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)
	go func() {
		log.WithField("addr", cfg.Addr).Info("http server listening")
		errc <- app.Listen(cfg.Addr)
	}()
	go func() {
		log.WithField("addr", cfg.RealtimeAddr).Info("realtime server listening")
		if err := rt.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errc:
		log.WithError(err).Error("server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rt.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("realtime shutdown")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func newPublisher(cfg config.Config, log logrus.FieldLogger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NewLogPublisher(log)
	}
	return events.NewKafkaPublisher(cfg.KafkaBrokers)
}

func newProvider(ctx context.Context, cfg config.Config, users *user.Service) (auth.Provider, error) {
	switch cfg.AuthProvider {
	case "firebase":
		return auth.NewFirebaseProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON, cfg.FirebaseAPIKey, cfg.AdminEmail)
	case "offline":
		return auth.NewOfflineProvider(cfg.AdminEmail), nil
	default:
		return user.NewLocalProvider(users), nil
	}
}

func seed(ctx context.Context, log logrus.FieldLogger, products *product.Service, categories *category.Service, banners *banner.Service) {
	if n, err := products.Seed(ctx, product.SeedCatalog(time.Now())); err != nil {
		log.WithError(err).Warn("catalog seed failed")
	} else if n > 0 {
		log.WithField("products", n).Info("catalog seeded")
	}
	if err := categories.SeedDefaults(ctx); err != nil {
		log.WithError(err).Warn("category seed failed")
	}
	if err := banners.SeedDefaults(ctx); err != nil {
		log.WithError(err).Warn("banner seed failed")
	}
}

// serveUploads makes uploaded images public. Memory uploads are served from
// the store itself.
func serveUploads(app *fiber.App, cfg config.Config, blobs blob.Store) {
	mem, ok := blobs.(*blob.MemoryStore)
	if !ok {
		app.Static(cfg.PublicBaseURL, cfg.UploadDir)
		return
	}
	app.Get(cfg.PublicBaseURL+"/*", func(c *fiber.Ctx) error {
		data, found := mem.Get(c.Path())
		if !found {
			return c.Status(fiber.StatusNotFound).SendString("not found")
		}
		c.Set(fiber.HeaderContentType, http.DetectContentType(data))
		return c.Send(data)
	})
}

func anyone(r *http.Request) (string, error) { return "", nil }

func signedIn(tokens *auth.Tokens) realtime.Authorizer {
	return func(r *http.Request) (string, error) {
		id, err := tokens.FromRequest(r)
		if err != nil {
			return "", err
		}
		return id.UID, nil
	}
}

func adminOnly(tokens *auth.Tokens) realtime.Authorizer {
	return func(r *http.Request) (string, error) {
		id, err := tokens.FromRequest(r)
		if err != nil {
			return "", err
		}
		if !id.IsAdmin() {
			return "", realtime.ErrForbidden
		}
		return id.UID, nil
	}
}
