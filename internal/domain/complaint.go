package domain

import (
	"fmt"
	"time"
)

// Status enumerates complaint lifecycle states. Values match the numeric
// codes stored in the complaints table.
type Status int

const (
	StatusPending   Status = 1
	StatusHandled   Status = 2
	StatusCancelled Status = 3
)

// Valid reports whether the status is one of the three known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusHandled, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusHandled:
		return "HANDLED"
	case StatusCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// ParseStatus resolves a status name to its code.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "PENDING":
		return StatusPending, nil
	case "HANDLED":
		return StatusHandled, nil
	case "CANCELLED":
		return StatusCancelled, nil
	}
	return 0, fmt.Errorf("unknown complaint status %q", name)
}

// attendTransitions lists the target statuses an attend operation may move a
// complaint to from each current status. Attending never repeats the current
// status; that case is rejected as a no-op before the table is consulted.
var attendTransitions = map[Status][]Status{
	StatusPending:   {StatusHandled, StatusCancelled},
	StatusHandled:   {StatusPending, StatusCancelled},
	StatusCancelled: {StatusPending, StatusHandled},
}

// CanAttend reports whether an attend operation may transition from one
// status to another.
func CanAttend(from, to Status) bool {
	for _, candidate := range attendTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether a customer cancellation is legal from the given
// status. Only pending complaints can be cancelled.
func CanCancel(from Status) bool {
	return from == StatusPending
}

// Complaint is the aggregate for customer-filed complaints. Complaints are
// never deleted; cancellation is a status change.
type Complaint struct {
	ID          string
	CreatorID   string
	CategoryID  int
	Subject     string
	Description string
	OfficeType  string
	Status      Status
	CancelledBy *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComplaintUpdate carries a partial edit. Nil fields are left untouched.
type ComplaintUpdate struct {
	Subject     *string
	Description *string
	CategoryID  *int
	OfficeType  *string
	Status      *Status
}

// Empty reports whether the update would change nothing.
func (u ComplaintUpdate) Empty() bool {
	return u.Subject == nil && u.Description == nil && u.CategoryID == nil &&
		u.OfficeType == nil && u.Status == nil
}
