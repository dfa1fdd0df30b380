package dto

import (
	"time"

	"github.com/municipal-services/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	CategoryID  int    `json:"category_id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	OfficeType  string `json:"office_type"`
}

// ModifyComplaintRequest is the administrative edit payload. Omitted fields
// are left untouched; status is accepted by name.
type ModifyComplaintRequest struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	CategoryID  *int    `json:"category_id"`
	OfficeType  *string `json:"office_type"`
	Status      *string `json:"status"`
}

// AttendComplaintRequest is the employee resolution payload.
type AttendComplaintRequest struct {
	Status string `json:"status"`
}

// ComplaintResponse response shape for a single complaint.
type ComplaintResponse struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	CategoryID  int       `json:"category_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	OfficeType  string    `json:"office_type"`
	Status      string    `json:"status"`
	CancelledBy *string   `json:"cancelled_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		CreatorID:   complaint.CreatorID,
		CategoryID:  complaint.CategoryID,
		Subject:     complaint.Subject,
		Description: complaint.Description,
		OfficeType:  complaint.OfficeType,
		Status:      complaint.Status.String(),
		CancelledBy: complaint.CancelledBy,
		CreatedAt:   complaint.CreatedAt,
		UpdatedAt:   complaint.UpdatedAt,
	}
}

// NewComplaintResponses maps a complaint list.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}
