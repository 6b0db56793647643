package handlers

import (
	"log"

	"simak/internal/apperrors"
	"simak/internal/middleware"
	"simak/internal/models"
	"simak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles HTTP requests for student records. Read routes are
// open to every authenticated role; mutating routes are gated behind
// AdminOnly.
type StudentHandler struct {
	service  *services.StudentService
	validate *validator.Validate
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the student routes with the Fiber app. The fixed
// paths (stats, search, sort) must come before the :id parameter routes.
func (h *StudentHandler) RegisterRoutes(router fiber.Router) {
	studentRoutes := router.Group("/students")
	studentRoutes.Get("/", h.HandleList)
	studentRoutes.Get("/stats", h.HandleStats)
	studentRoutes.Get("/search", h.HandleSearch)
	studentRoutes.Post("/sort", middleware.AdminOnly(), h.HandleSort)
	studentRoutes.Post("/", middleware.AdminOnly(), h.HandleCreate)
	studentRoutes.Get("/:id", h.HandleGetByID)
	studentRoutes.Put("/:id", middleware.AdminOnly(), h.HandleUpdate)
	studentRoutes.Delete("/:id", middleware.AdminOnly(), h.HandleDelete)
}

// StudentPayload is the request body for create and update.
type StudentPayload struct {
	Name       string `json:"name" validate:"required"`
	ID         string `json:"id" validate:"required"`
	Major      string `json:"major" validate:"required"`
	Hobby      string `json:"hobby" validate:"required"`
	Aspiration string `json:"aspiration" validate:"required"`
}

// statusForError maps the core error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindFileOperation:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// HandleList returns the ordered snapshot of all records.
func (h *StudentHandler) HandleList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"total":    h.service.Count(),
		"students": h.service.All(),
	})
}

// HandleStats returns the major distribution and top aspirations.
func (h *StudentHandler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleGetByID returns a single record by its exact id.
func (h *StudentHandler) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	student, ok := h.service.FindByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Student not found",
		})
	}
	return c.JSON(student)
}

// HandleSearch runs one of the three lookup strategies. The method query
// parameter selects linear (name), sequential (hobby) or binary (id).
func (h *StudentHandler) HandleSearch(c *fiber.Ctx) error {
	method := c.Query("method", services.SearchLinear)
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Search keyword is required",
		})
	}

	results, err := h.service.Search(method, query)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Search failed",
			"error":   err.Error(),
		})
	}
	if results == nil {
		results = []models.Student{}
	}
	return c.JSON(fiber.Map{
		"total":    len(results),
		"students": results,
	})
}

// HandleCreate adds a new record.
func (h *StudentHandler) HandleCreate(c *fiber.Ctx) error {
	var payload StudentPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	student, err := h.service.Add(payload.Name, payload.ID, payload.Major, payload.Hobby, payload.Aspiration)
	if err != nil {
		log.Printf("Error creating student: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not create student",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

// HandleUpdate replaces all fields of the record matching the path id. The
// body may carry a new id as long as it is not taken by another record.
func (h *StudentHandler) HandleUpdate(c *fiber.Ctx) error {
	oldID := c.Params("id")

	var payload StudentPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	student, err := h.service.Edit(oldID, payload.Name, payload.ID, payload.Major, payload.Hobby, payload.Aspiration)
	if err != nil {
		log.Printf("Error updating student %s: %v", oldID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update student",
			"error":   err.Error(),
		})
	}

	return c.JSON(student)
}

// HandleDelete removes the record matching the path id.
func (h *StudentHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(id); err != nil {
		log.Printf("Error deleting student %s: %v", id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete student",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Student deleted successfully",
	})
}

// SortRequest selects the reordering algorithm.
type SortRequest struct {
	Method string `json:"method" validate:"required,oneof=bubble selection merge"`
}

// HandleSort reorders the store with the selected algorithm and reports the
// elapsed time in milliseconds.
func (h *StudentHandler) HandleSort(c *fiber.Ctx) error {
	var req SortRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Method must be one of: bubble, selection, merge",
		})
	}

	elapsed, err := h.service.Sort(req.Method)
	if err != nil {
		log.Printf("Error sorting students: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not sort students",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Sort completed",
		"method":     req.Method,
		"elapsed_ms": elapsed,
	})
}
