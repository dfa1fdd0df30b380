package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/municipal-services/complaint-service/internal/domain"
	"github.com/municipal-services/complaint-service/internal/repository"
	apperrors "github.com/municipal-services/complaint-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: a pre-validated identity
// plus role. The lifecycle never checks permissions itself.
type Principal struct {
	ID       string
	Role     domain.Role
	Customer *domain.Customer
	Employee *domain.Employee
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, customers repository.CustomerRepository, employees repository.EmployeeRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, customers: customers, employees: employees}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{ID: claims.SubjectID, Role: claims.Role}

	switch claims.Role {
	case domain.RoleCustomer:
		customer, err := m.customers.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("customer not found")
			}
			return apperrors.MapError(err)
		}
		principal.Customer = customer
	case domain.RoleEmployee, domain.RoleAdmin:
		employee, err := m.employees.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("employee not found")
			}
			return apperrors.MapError(err)
		}
		principal.Employee = employee
	default:
		return apperrors.NewUnauthorized("unknown role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
