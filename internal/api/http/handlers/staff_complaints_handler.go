package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/api/dto"
	"github.com/municipal-services/complaint-service/internal/auth"
	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/service"
	apperrors "github.com/municipal-services/complaint-service/pkg/util"
)

// StaffComplaintsHandler manages employee and administrator complaint
// endpoints.
type StaffComplaintsHandler struct {
	service *service.ComplaintService
	metrics *observability.Metrics
}

// NewStaffComplaintsHandler constructs handler.
func NewStaffComplaintsHandler(complaintService *service.ComplaintService, metrics *observability.Metrics) *StaffComplaintsHandler {
	return &StaffComplaintsHandler{service: complaintService, metrics: metrics}
}

// ListForOffice GET /complaints/office.
func (h *StaffComplaintsHandler) ListForOffice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return apperrors.NewUnauthorized("employee required")
	}

	outcome, err := h.service.ListForOffice(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	if complaints, ok := outcome.Data.([]domain.Complaint); ok {
		outcome.Data = dto.NewComplaintResponses(complaints)
	}
	return respond(c, h.metrics, "list_for_office", outcome, http.StatusOK)
}

// Attend PUT /complaints/:id/attend.
func (h *StaffComplaintsHandler) Attend(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Employee == nil {
		return apperrors.NewUnauthorized("employee required")
	}
	var req dto.AttendComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	update := domain.ComplaintUpdate{Status: &status}
	outcome, err := h.service.Attend(c.UserContext(), c.Params("id"), principal.ID, update)
	if err != nil {
		return err
	}
	if complaint, ok := outcome.Data.(*domain.Complaint); ok {
		outcome.Data = dto.NewComplaintResponse(complaint)
	}
	return respond(c, h.metrics, "attend", outcome, http.StatusOK)
}

// ListAll GET /complaints.
func (h *StaffComplaintsHandler) ListAll(c *fiber.Ctx) error {
	complaints, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(service.Outcome{
		Success: true,
		Code:    service.CodeOK,
		Message: "complaints",
		Data:    dto.NewComplaintResponses(complaints),
	})
}

// Get GET /complaints/:id.
func (h *StaffComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.service.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if complaint == nil {
		return respond(c, h.metrics, "get", service.Outcome{
			Success: false,
			Code:    service.CodeNotFound,
			Message: "complaint not found",
		}, http.StatusOK)
	}
	return c.JSON(service.Outcome{
		Success: true,
		Code:    service.CodeOK,
		Message: "complaint",
		Data:    dto.NewComplaintResponse(complaint),
	})
}

// Modify PATCH /complaints/:id.
func (h *StaffComplaintsHandler) Modify(c *fiber.Ctx) error {
	var req dto.ModifyComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := domain.ComplaintUpdate{
		Subject:     req.Subject,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		OfficeType:  req.OfficeType,
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
		}
		update.Status = &status
	}

	outcome, err := h.service.Modify(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	if complaint, ok := outcome.Data.(*domain.Complaint); ok {
		outcome.Data = dto.NewComplaintResponse(complaint)
	}
	return respond(c, h.metrics, "modify", outcome, http.StatusOK)
}

// ListOffices GET /offices.
func (h *StaffComplaintsHandler) ListOffices(c *fiber.Ctx) error {
	outcome, err := h.service.ListOffices(c.UserContext())
	if err != nil {
		return err
	}
	if offices, ok := outcome.Data.([]domain.Office); ok {
		outcome.Data = dto.NewOfficeResponses(offices)
	}
	return respond(c, h.metrics, "list_offices", outcome, http.StatusOK)
}
