package handlers

import (
	"database/sql"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/healthflow/internal/live"
	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/records"
	"github.com/yourorg/healthflow/internal/validation"
)

// RecordsHandler serves the four record kinds through one set of
// endpoints; the kind registry decides validation and ordering.
type RecordsHandler struct {
	store *records.Store
	hub   *live.Hub
}

func NewRecordsHandler(db *sql.DB, hub *live.Hub) *RecordsHandler {
	return &RecordsHandler{store: records.NewStore(db), hub: hub}
}

// List handles GET /api/health/:kind.
func (h *RecordsHandler) List(c *fiber.Ctx) error {
	kind := records.Lookup(c.Params("kind"))
	if kind == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "API endpoint not found"})
	}
	userID, _ := c.Locals("userID").(int64)

	items, err := h.store.List(userID, kind, c.QueryInt("limit", records.MaxListLimit))
	if err != nil {
		log.Printf("❌ %s fetch error: %v", kind.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to fetch records"})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// Create handles POST /api/health/:kind.
func (h *RecordsHandler) Create(c *fiber.Ctx) error {
	kind := records.Lookup(c.Params("kind"))
	if kind == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "API endpoint not found"})
	}
	userID, _ := c.Locals("userID").(int64)

	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}

	id, err := h.store.Insert(userID, kind, body)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: verr.Message})
		}
		log.Printf("❌ %s save error: %v", kind.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: kind.SaveFailMessage})
	}

	h.hub.NotifyRecord(userID, "created", kind.Name, id)

	return c.Status(fiber.StatusCreated).JSON(models.RecordCreatedResponse{
		ID:      id,
		Message: kind.CreatedMessage,
	})
}

// Delete handles DELETE /api/health/:kind/:id. Absent and non-owned ids
// get the same success response so record ids cannot be probed.
func (h *RecordsHandler) Delete(c *fiber.Ctx) error {
	kind := records.Lookup(c.Params("kind"))
	if kind == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "API endpoint not found"})
	}
	userID, _ := c.Locals("userID").(int64)

	recordID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid record id"})
	}

	rows, err := h.store.Delete(userID, kind, int64(recordID))
	if err != nil {
		log.Printf("❌ %s delete error: %v", kind.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete record"})
	}
	if rows > 0 {
		h.hub.NotifyRecord(userID, "deleted", kind.Name, int64(recordID))
	}

	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: kind.DeletedMessage})
}
