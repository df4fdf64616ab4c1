package handlers

import (
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/session"
)

// bcryptCost matches what the seeded test account was hashed with.
const bcryptCost = 12

// minPasswordLen is the registration minimum.
const minPasswordLen = 6

// AuthHandler owns credential handling and the session lifecycle.
type AuthHandler struct {
	db       *sql.DB
	sessions *session.Store
}

func NewAuthHandler(db *sql.DB, sessions *session.Store) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Gender = strings.TrimSpace(req.Gender)

	if req.Username == "" || req.Password == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Username, password, and email are required"})
	}
	if len(req.Password) < minPasswordLen {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Password must be at least 6 characters long"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to secure password"})
	}

	result, err := h.db.Exec(
		`INSERT INTO users (username, password_hash, email, age, gender) VALUES (?, ?, ?, ?, ?)`,
		req.Username, string(hash), req.Email, req.Age, nullableString(req.Gender),
	)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Username already exists"})
		}
		log.Printf("❌ Registration insert error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Database error"})
	}

	userID, _ := result.LastInsertId()
	token, sess := h.sessions.Create(userID, req.Username)
	setSessionCookie(c, token, sess.ExpiresAt)

	log.Printf("✅ User registered: id=%d, username=%s", userID, req.Username)

	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{
		Message: "Account created successfully!",
		User:    models.UserDTO{ID: userID, Username: req.Username},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Username and password are required"})
	}

	var (
		userID       int64
		username     string
		passwordHash string
	)
	err := h.db.QueryRow(
		`SELECT id, username, password_hash FROM users WHERE username = ?`,
		req.Username,
	).Scan(&userID, &username, &passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same response as a wrong password; no username enumeration
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid username or password"})
		}
		log.Printf("❌ Login query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Database error"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid username or password"})
	}

	token, sess := h.sessions.Create(userID, username)
	setSessionCookie(c, token, sess.ExpiresAt)

	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusOK).JSON(models.AuthResponse{
		Message: "Login successful!",
		User:    models.UserDTO{ID: userID, Username: username},
	})
}

// Logout handles POST /api/auth/logout. Destroying an already-absent
// session is fine, so calling it twice succeeds both times.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		h.sessions.Destroy(token)
	}
	clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "Logout successful"})
}

// Status handles GET /api/auth/status. It never fails; clients use it to
// decide whether to redirect to the login page.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	if token == "" {
		return c.Status(fiber.StatusOK).JSON(models.StatusResponse{Authenticated: false})
	}
	sess, ok := h.sessions.Get(token)
	if !ok {
		return c.Status(fiber.StatusOK).JSON(models.StatusResponse{Authenticated: false})
	}
	return c.Status(fiber.StatusOK).JSON(models.StatusResponse{
		Authenticated: true,
		User:          &models.UserDTO{ID: sess.UserID, Username: sess.Username},
	})
}

// Profile handles GET /api/user/profile. The password hash is never
// selected.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(int64)

	var (
		profile models.ProfileResponse
		age     sql.NullInt64
		gender  sql.NullString
	)
	err := h.db.QueryRow(
		`SELECT username, email, age, gender FROM users WHERE id = ?`,
		userID,
	).Scan(&profile.Username, &profile.Email, &age, &gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "User not found"})
		}
		log.Printf("❌ Profile query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Database error"})
	}
	if age.Valid {
		profile.Age = &age.Int64
	}
	if gender.Valid {
		profile.Gender = &gender.String
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
