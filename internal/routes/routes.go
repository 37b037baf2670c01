package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/trades-market/trades_market/internal/auth"
	"github.com/trades-market/trades_market/internal/config"
	"github.com/trades-market/trades_market/internal/identity"
	"github.com/trades-market/trades_market/internal/middleware"
	"github.com/trades-market/trades_market/internal/notification"
	"github.com/trades-market/trades_market/internal/provider"
	"github.com/trades-market/trades_market/internal/request"
	"github.com/trades-market/trades_market/internal/review"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. A nil DB selects
// in-memory repositories; a nil Cache disables rate limiting and
// idempotency. Both are only allowed in development.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New())
	if d.Cfg.IsDev() {
		// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	app.Use(middleware.Audit(d.Logger))

	// Health and diagnostics
	RegisterHealthRoutes(app, d)

	// Repositories fall back to memory stores when Postgres is absent.
	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	var providerRepo provider.Repository
	if d.DB != nil {
		providerRepo = provider.NewPostgresRepository(d.DB)
	} else {
		providerRepo = provider.NewMemoryRepository()
	}
	var requestRepo request.Repository
	if d.DB != nil {
		requestRepo = request.NewPostgresRepository(d.DB)
	} else {
		requestRepo = request.NewMemoryRepository()
	}
	var reviewRepo review.Repository
	if d.DB != nil {
		reviewRepo = review.NewPostgresRepository(d.DB)
	} else {
		reviewRepo = review.NewMemoryRepository()
	}

	// Services and handlers
	users := identity.NewService(userRepo)
	tokens := auth.NewTokens(d.Cfg.SecretKey)
	notifier := notification.NewLoggerNotifier(d.Logger)
	providers := provider.NewService(providerRepo)
	requests := request.NewService(requestRepo, notifier)
	reviews := review.NewService(reviewRepo, providers)

	providerHandler := provider.NewHandler(providers)
	requestHandler := request.NewHandler(requests)
	reviewHandler := review.NewHandler(reviews)

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMinute)
	RegisterAuthRoutes(app, users, tokens, rateLimiter, d.Logger)
	app.Get("/trades", listTrades)
	app.Get("/providers", providerHandler.List)
	app.Get("/providers/:id", providerHandler.Get)
	app.Get("/providers/:id/reviews", reviewHandler.ListByProvider)

	// Protected routes
	protected := app.Group("", middleware.Authenticated(tokens))
	RegisterAuthMeRoute(protected)

	idem := passThrough
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	protected.Post("/providers", middleware.RequireRole(identity.RoleProvider), idem, providerHandler.Create)
	protected.Get("/requests", middleware.RequireRole(identity.RoleProvider), requestHandler.List)
	protected.Post("/requests", middleware.RequireRole(identity.RoleRequester), idem, requestHandler.Create)
	protected.Post("/reviews", middleware.RequireRole(identity.RoleRequester), idem, reviewHandler.Create)

	return nil
}

func listTrades(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"trades": provider.KnownTrades})
}

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}
