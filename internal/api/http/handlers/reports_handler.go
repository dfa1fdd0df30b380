package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/service"
)

// ReportsHandler exposes administrator reporting endpoints.
type ReportsHandler struct {
	service *service.ReportService
	metrics *observability.Metrics
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService, metrics *observability.Metrics) *ReportsHandler {
	return &ReportsHandler{service: reportService, metrics: metrics}
}

// Generate GET /reports/:format. PDF artifacts stream inline from memory;
// CSV artifacts download as a file attachment.
func (h *ReportsHandler) Generate(c *fiber.Ctx) error {
	format := c.Params("format", service.FormatPDF)

	outcome, err := h.service.Generate(c.UserContext(), format)
	if err != nil {
		return err
	}
	h.metrics.RecordOutcome("report", outcome.Code)
	if !outcome.Success {
		return c.Status(statusForCode(outcome.Code)).JSON(outcome)
	}

	artifact, ok := outcome.Data.(service.ReportArtifact)
	if !ok {
		return c.JSON(outcome)
	}
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, artifact.Disposition)
	if artifact.FilePath != "" {
		return c.SendFile(artifact.FilePath)
	}
	return c.Status(http.StatusOK).Send(artifact.Buffer)
}

// Statistics GET /reports/statistics.
func (h *ReportsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.service.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	h.metrics.RecordOutcome("statistics", service.CodeOK)
	return c.JSON(service.Outcome{
		Success: true,
		Code:    service.CodeOK,
		Message: "complaint statistics",
		Data:    stats,
	})
}
