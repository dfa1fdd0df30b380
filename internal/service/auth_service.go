package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/municipal-services/complaint-service/internal/auth"
	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/repository"
	apperrors "github.com/municipal-services/complaint-service/pkg/util"
)

// AuthService authenticates customers and employees. Account provisioning is
// an external concern; only login is exposed.
type AuthService struct {
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	tokens    *auth.TokenManager
}

// LoginResult carries the issued token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      domain.Role
	SubjectID string
	Name      string
}

// NewAuthService constructs the service.
func NewAuthService(customers repository.CustomerRepository, employees repository.EmployeeRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{customers: customers, employees: employees, tokens: tokens}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// CustomerLogin authenticates a customer account.
func (s *AuthService) CustomerLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(customer.ID, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      domain.RoleCustomer,
		SubjectID: customer.ID,
		Name:      customer.Name,
	}, nil
}

// EmployeeLogin authenticates an employee or administrator account.
func (s *AuthService) EmployeeLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      employee.Role,
		SubjectID: employee.ID,
		Name:      employee.Name,
	}, nil
}
