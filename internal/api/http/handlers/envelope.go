package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/service"
)

// statusForCode maps rejection codes from the operation envelope onto HTTP
// statuses. Unknown codes fall back to 400.
func statusForCode(code string) int {
	switch code {
	case service.CodeNotFound, service.CodeNoResults, service.CodeNoData,
		service.CodeNoOffice, service.CodeOfficeNotFound:
		return http.StatusNotFound
	case service.CodeAlreadyCancelled, service.CodeTransitionNotAllowed,
		service.CodePersistenceRejected:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respond writes the operation envelope as JSON.
func respond(c *fiber.Ctx, metrics *observability.Metrics, operation string, outcome service.Outcome, successStatus int) error {
	metrics.RecordOutcome(operation, outcome.Code)
	if outcome.Success {
		return c.Status(successStatus).JSON(outcome)
	}
	return c.Status(statusForCode(outcome.Code)).JSON(outcome)
}
