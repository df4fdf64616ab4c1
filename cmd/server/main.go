package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	appdb "github.com/yourorg/healthflow/internal/db"
	"github.com/yourorg/healthflow/internal/live"
	"github.com/yourorg/healthflow/internal/routes"
	"github.com/yourorg/healthflow/internal/session"
)

func sessionTTL() time.Duration {
	ttl := os.Getenv("SESSION_TTL")
	if ttl == "" {
		return session.DefaultTTL
	}
	dur, err := time.ParseDuration(ttl)
	if err != nil || dur <= 0 {
		log.Printf("invalid SESSION_TTL=%q, using default %s", ttl, session.DefaultTTL)
		return session.DefaultTTL
	}
	return dur
}

func main() {
	_ = godotenv.Load()

	app := fiber.New()
	app.Use(logger.New())

	sessions := session.NewStore(sessionTTL(), 10*time.Minute)
	hub := live.NewHub()

	// ============================================================================
	// DB CONNECTION
	// ============================================================================
	db, err := appdb.Connect()
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	for {
		if err := appdb.EnsureSchema(db); err != nil {
			log.Printf("ensure schema error: %v (retrying in 5s)", err)
			time.Sleep(5 * time.Second)
			continue
		}
		break
	}
	log.Println("✅ Connected to MySQL database")

	if seed := strings.TrimSpace(os.Getenv("SEED_TEST_USER")); strings.EqualFold(seed, "true") || seed == "1" {
		if err := appdb.SeedTestUser(db); err != nil {
			log.Printf("⚠️  Test user seed error: %v", err)
		}
	}

	routes.Register(app, db, sessions, hub)

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Termination signal received, shutting down...")

		sessions.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Server shutdown error: %v", err)
		}
		if err := db.Close(); err != nil {
			log.Printf("⚠️  DB close error: %v", err)
		}

		log.Println("✅ Server stopped cleanly")
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("✨ ============================================== ✨")
	log.Println("🏥          HEALTHFLOW TRACKER BACKEND           🏥")
	log.Println("✨ ============================================== ✨")
	log.Printf("🚀 Server listening on :%s", port)
	log.Println("📍 Endpoints:")
	log.Println("   POST   /api/auth/register          - Create account")
	log.Println("   POST   /api/auth/login             - Login (session cookie)")
	log.Println("   POST   /api/auth/logout            - Logout")
	log.Println("   GET    /api/auth/status            - Session probe")
	log.Println("   GET    /api/user/profile           - Profile")
	log.Println("   GET    /api/health/summary         - Today's dashboard rollup")
	log.Println("   G/P/D  /api/health/{workouts|nutrition|metrics|medications}")
	log.Println("   GET    /ws/live                    - Live dashboard events")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
