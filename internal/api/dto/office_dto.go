package dto

import (
	"time"

	"github.com/municipal-services/complaint-service/internal/domain"
)

// OfficeResponse response shape for an office.
type OfficeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID int       `json:"category_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewOfficeResponses maps an office list.
func NewOfficeResponses(offices []domain.Office) []OfficeResponse {
	items := make([]OfficeResponse, 0, len(offices))
	for _, office := range offices {
		items = append(items, OfficeResponse{
			ID:         office.ID,
			Name:       office.Name,
			CategoryID: office.CategoryID,
			Active:     office.Active,
			CreatedAt:  office.CreatedAt,
			UpdatedAt:  office.UpdatedAt,
		})
	}
	return items
}
