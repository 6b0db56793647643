package handlers

import (
	"fmt"
	"log"

	"simak/internal/models"
	"simak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler exports the record list as CSV, XLSX or PDF, either as a
// direct download or as an email attachment.
type ReportHandler struct {
	students *services.StudentService
	reports  *services.ReportService
	mail     *services.MailService
	validate *validator.Validate
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(students *services.StudentService, reports *services.ReportService, mail *services.MailService) *ReportHandler {
	return &ReportHandler{
		students: students,
		reports:  reports,
		mail:     mail,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/export", h.HandleExport)
	reportRoutes.Post("/email", h.HandleEmail)
}

// HandleExport renders the full snapshot in the requested format and
// returns it as a file download.
func (h *ReportHandler) HandleExport(c *fiber.Ctx) error {
	format := c.Query("format", services.FormatCSV)

	report, err := h.reports.Render(h.students.All(), format)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not render report",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, report.Filename))
	return c.Send(report.Data)
}

// EmailRequest is the request body for mailing a report.
type EmailRequest struct {
	To             string `json:"to" validate:"required,email"`
	Format         string `json:"format" validate:"required,oneof=csv xlsx pdf"`
	SenderEmail    string `json:"sender_email"`
	SenderPassword string `json:"sender_password"`
}

// HandleEmail renders the snapshot and mails it to the recipient. Admins
// send with the configured credentials; users must supply their own sender
// email and app password.
func (h *ReportHandler) HandleEmail(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid recipient and a format (csv, xlsx, pdf) are required",
		})
	}

	if h.students.Count() == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "There is no student data to send",
		})
	}

	report, err := h.reports.Render(h.students.All(), req.Format)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not render report",
			"error":   err.Error(),
		})
	}

	// The configured sender belongs to the admin account; other roles
	// must hand in their own credentials.
	senderEmail, senderPassword := "", ""
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		senderEmail, senderPassword = req.SenderEmail, req.SenderPassword
		if senderEmail == "" || senderPassword == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Sender email and app password are required for non-admin users",
			})
		}
	}

	if err := h.mail.SendReport(req.To, req.Format, report, senderEmail, senderPassword); err != nil {
		log.Printf("Error sending report to %s: %v", req.To, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not send report",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Report (%s) sent to %s", req.Format, req.To),
	})
}
