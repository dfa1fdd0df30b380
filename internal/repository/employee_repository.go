package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/municipal-services/complaint-service/internal/domain"
)

// EmployeeRepository handles persistence for employee accounts.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, email, password_hash, role, office_id, created_at, updated_at`

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.fetch(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id=$1", id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.fetch(ctx, "SELECT "+employeeColumns+" FROM employees WHERE email=$1", email)
}

func (r *employeeRepository) fetch(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Role,
		&employee.OfficeID,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}
