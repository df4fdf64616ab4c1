package handlers

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/healthflow/internal/models"
)

// SummaryHandler computes the "today" dashboard rollup.
type SummaryHandler struct {
	db *sql.DB
}

func NewSummaryHandler(db *sql.DB) *SummaryHandler {
	return &SummaryHandler{db: db}
}

// GetSummary handles GET /api/health/summary. The three sub-aggregates are
// independent queries; if any one fails the whole request fails rather
// than reporting partial zeros.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(int64)
	today := time.Now().Format("2006-01-02")

	var summary models.SummaryResponse

	err := h.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(calories_burned), 0)
		FROM workouts WHERE user_id = ? AND date = ?
	`, userID, today).Scan(&summary.WorkoutsToday.Count, &summary.WorkoutsToday.Calories)
	if err != nil {
		log.Printf("❌ Summary workouts error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load summary"})
	}

	err = h.db.QueryRow(`
		SELECT COALESCE(SUM(calories), 0)
		FROM nutrition WHERE user_id = ? AND date = ?
	`, userID, today).Scan(&summary.NutritionToday.Calories)
	if err != nil {
		log.Printf("❌ Summary nutrition error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load summary"})
	}

	// Active medications are not date-scoped
	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM medications WHERE user_id = ? AND is_active = 1
	`, userID).Scan(&summary.ActiveMedications)
	if err != nil {
		log.Printf("❌ Summary medications error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load summary"})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
