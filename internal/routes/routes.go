package routes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/healthflow/internal/handlers"
	"github.com/yourorg/healthflow/internal/live"
	"github.com/yourorg/healthflow/internal/middleware"
	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/session"
)

func Register(app *fiber.App, db *sql.DB, sessions *session.Store, hub *live.Hub) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, sessions)
	healthHandler := handlers.NewHealthHandler(db)
	recordsHandler := handlers.NewRecordsHandler(db, hub)
	summaryHandler := handlers.NewSummaryHandler(db)

	// Liveness probe (sin rate limiting, sin sesión)
	app.Get("/api/healthz", healthHandler.Health)

	api := app.Group("/api", middleware.RateLimiter())

	// ============================================================================
	// AUTENTICACIÓN
	// ============================================================================
	auth := api.Group("/auth")
	// Credential endpoints get the strict limiter; status is polled by
	// clients and stays unthrottled.
	auth.Post("/register", middleware.StrictRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.StrictRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/status", authHandler.Status)

	// ============================================================================
	// PROTECTED API (session cookie required)
	// ============================================================================
	requireSession := middleware.RequireSession(sessions)

	user := api.Group("/user", requireSession)
	user.Get("/profile", authHandler.Profile)

	health := api.Group("/health", requireSession)
	// /summary must be registered before the /:kind routes
	health.Get("/summary", summaryHandler.GetSummary)
	health.Get("/:kind", recordsHandler.List)
	health.Post("/:kind", recordsHandler.Create)
	health.Delete("/:kind/:id", recordsHandler.Delete)

	// 404 for any unmatched API route
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "API endpoint not found"})
	})

	// ============================================================================
	// LIVE DASHBOARD WEBSOCKET
	// ============================================================================
	// Record events (created/deleted) pushed to the caller's open dashboards
	app.Use("/ws/live", requireSession, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/live", websocket.New(func(conn *websocket.Conn) {
		hub.HandleConn(conn)
	}))
}
