package domain

import "time"

// Office is the organizational unit complaints are routed to. Each office
// handles exactly one complaint category.
type Office struct {
	ID         string
	Name       string
	CategoryID int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
