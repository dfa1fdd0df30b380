package domain

import "time"

// Role differentiates the caller kinds the transport layer authenticates.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

// Customer is an end-user who files complaints.
type Customer struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Employee is a staff account. Employees with no office assignment cannot
// list complaints; administrators are employees with the ADMIN role.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	OfficeID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CustomerContact is the projection resolved immediately before a
// notification is sent, so a stale email address is impossible.
type CustomerContact struct {
	Name   string
	Email  string
	Status Status
}
