package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trades-market/trades_market/internal/infra"
)

// RegisterHealthRoutes adds the root banner, liveness and database
// diagnostics endpoints.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Trades Marketplace API is running"})
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		redisStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				dbStatus = err.Error()
			}
		}
		if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
			}
		}
		status := http.StatusOK
		if dbStatus != "ok" || redisStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"postgres": dbStatus, "redis": redisStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Verbose connectivity report for quick deployment checks.
	app.Get("/test", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"backend":           "running",
			"database":          "not available",
			"database_url":      "not set",
			"connection_status": "not connected",
			"tables":            []string{},
		}

		if d.Cfg.DatabaseURL != "" {
			response["database_url"] = "set"
		}
		if d.DB == nil {
			return c.JSON(response)
		}

		response["database"] = "available"
		response["connection_status"] = "connected"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		tables, err := infra.ListTables(ctx, d.DB, 10)
		if err != nil {
			response["database"] = "connected but erroring: " + err.Error()
			return c.JSON(response)
		}

		response["database"] = "connected and working"
		response["tables"] = tables
		return c.JSON(response)
	})
}
