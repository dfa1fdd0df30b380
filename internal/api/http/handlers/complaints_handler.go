package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/api/dto"
	"github.com/municipal-services/complaint-service/internal/auth"
	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/service"
	apperrors "github.com/municipal-services/complaint-service/pkg/util"
)

// ComplaintsHandler manages customer-facing complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
	metrics *observability.Metrics
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, metrics *observability.Metrics) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService, metrics: metrics}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("subject and description required", nil)
	}
	if req.CategoryID <= 0 {
		return apperrors.NewValidationError("category_id required", nil)
	}

	outcome, err := h.service.Create(c.UserContext(), principal.ID, service.ComplaintCreateInput{
		CategoryID:  req.CategoryID,
		Subject:     req.Subject,
		Description: req.Description,
		OfficeType:  req.OfficeType,
	})
	if err != nil {
		return err
	}
	if complaint, ok := outcome.Data.(*domain.Complaint); ok {
		outcome.Data = dto.NewComplaintResponse(complaint)
	}
	return respond(c, h.metrics, "create", outcome, http.StatusCreated)
}

// Query GET /complaints/mine.
func (h *ComplaintsHandler) Query(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewUnauthorized("customer required")
	}

	outcome, err := h.service.Query(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	if complaints, ok := outcome.Data.([]domain.Complaint); ok {
		outcome.Data = dto.NewComplaintResponses(complaints)
	}
	return respond(c, h.metrics, "query", outcome, http.StatusOK)
}

// Cancel PATCH /complaints/:id/cancel.
func (h *ComplaintsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewUnauthorized("customer required")
	}

	outcome, err := h.service.Cancel(c.UserContext(), c.Params("id"), principal.ID)
	if err != nil {
		return err
	}
	return respond(c, h.metrics, "cancel", outcome, http.StatusOK)
}
