package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/healthflow/internal/live"
	"github.com/yourorg/healthflow/internal/middleware"
	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/session"
)

// newTestApp wires the HTTP surface against a mocked database. The rate
// limiter stays out so repeated requests within one test don't trip it.
func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *session.Store, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	sessions := session.NewStore(session.DefaultTTL, time.Hour)
	hub := live.NewHub()

	authHandler := NewAuthHandler(db, sessions)
	recordsHandler := NewRecordsHandler(db, hub)
	summaryHandler := NewSummaryHandler(db)

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/status", authHandler.Status)

	requireSession := middleware.RequireSession(sessions)

	user := api.Group("/user", requireSession)
	user.Get("/profile", authHandler.Profile)

	health := api.Group("/health", requireSession)
	health.Get("/summary", summaryHandler.GetSummary)
	health.Get("/:kind", recordsHandler.List)
	health.Post("/:kind", recordsHandler.Create)
	health.Delete("/:kind/:id", recordsHandler.Delete)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "API endpoint not found"})
	})

	cleanup := func() {
		sessions.Stop()
		db.Close()
	}
	return app, mock, sessions, cleanup
}

// doJSON fires a request at the test app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path, body, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	// List endpoints return JSON arrays; only object bodies decode into the
	// map, and callers that care about array contents read raw themselves.
	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if obj, ok := value.(map[string]interface{}); ok {
			decoded = obj
		}
	}
	return resp, decoded
}

// sessionCookie returns a valid token without going through /login.
func sessionCookie(t *testing.T, sessions *session.Store, userID int64, username string) string {
	t.Helper()
	token, _ := sessions.Create(userID, username)
	return token
}

func responseCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	return nil
}
