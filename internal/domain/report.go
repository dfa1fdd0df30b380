package domain

import "time"

// ReportRow is a read-only projection of a complaint plus customer identity
// fields, recomputed per report request.
type ReportRow struct {
	ComplaintID   string
	Subject       string
	Status        Status
	OfficeType    string
	CustomerName  string
	CustomerEmail string
	CreatedAt     time.Time
}

// Statistics is the pre-computed aggregate record produced by the store.
type Statistics struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Handled   int64 `json:"handled"`
	Cancelled int64 `json:"cancelled"`
}

// NotificationPayload is the ephemeral value object handed to the mail
// gateway on a status change. Never persisted.
type NotificationPayload struct {
	CustomerName  string
	CustomerEmail string
	ComplaintID   string
	Status        Status
}
