package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/municipal-services/complaint-service/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = pgx.ErrNoRows

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	FindAll(ctx context.Context) ([]domain.Complaint, error)
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	FindByCreator(ctx context.Context, creatorID string) ([]domain.Complaint, error)
	FindByOfficeCategory(ctx context.Context, categoryID int) ([]domain.Complaint, error)
	Insert(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, id string, update domain.ComplaintUpdate) (int64, error)
	Cancel(ctx context.Context, id, requesterID string) (int64, error)
	FindCustomerContact(ctx context.Context, id string) (*domain.CustomerContact, error)
	ReportRowsForPDF(ctx context.Context) ([]domain.ReportRow, error)
	ReportRowsForCSV(ctx context.Context) ([]domain.ReportRow, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, creator_id, category_id, subject, description, office_type, status, cancelled_by, created_at, updated_at`

func (r *complaintRepository) Insert(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (creator_id, category_id, subject, description, office_type, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.CreatorID,
		complaint.CategoryID,
		complaint.Subject,
		complaint.Description,
		complaint.OfficeType,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

// Update applies a partial edit and returns the affected row count. Status is
// written as-is; transition rules live in the service layer.
func (r *complaintRepository) Update(ctx context.Context, id string, update domain.ComplaintUpdate) (int64, error) {
	sets := []string{}
	args := []any{}

	if update.Subject != nil {
		args = append(args, *update.Subject)
		sets = append(sets, fmt.Sprintf("subject=$%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		sets = append(sets, fmt.Sprintf("description=$%d", len(args)))
	}
	if update.CategoryID != nil {
		args = append(args, *update.CategoryID)
		sets = append(sets, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if update.OfficeType != nil {
		args = append(args, *update.OfficeType)
		sets = append(sets, fmt.Sprintf("office_type=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(sets) == 0 {
		return 0, errors.New("empty complaint update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE complaints SET %s, updated_at=NOW() WHERE id=$%d",
		strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// Cancel flips a complaint to CANCELLED only when it is still pending. The
// status guard makes the read-validate-write sequence atomic at the store.
func (r *complaintRepository) Cancel(ctx context.Context, id, requesterID string) (int64, error) {
	const query = `
        UPDATE complaints SET status=$1, cancelled_by=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4`
	cmd, err := r.pool.Exec(ctx, query, domain.StatusCancelled, requesterID, id, domain.StatusPending)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *complaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints WHERE id=$1", complaintColumns)
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.CreatorID,
		&complaint.CategoryID,
		&complaint.Subject,
		&complaint.Description,
		&complaint.OfficeType,
		&complaint.Status,
		&complaint.CancelledBy,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) FindAll(ctx context.Context) ([]domain.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints ORDER BY created_at DESC", complaintColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) FindByCreator(ctx context.Context, creatorID string) ([]domain.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints WHERE creator_id=$1 ORDER BY created_at DESC", complaintColumns)
	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) FindByOfficeCategory(ctx context.Context, categoryID int) ([]domain.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints WHERE category_id=$1 ORDER BY created_at DESC", complaintColumns)
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// FindCustomerContact resolves the creator's current contact details together
// with the complaint's current status.
func (r *complaintRepository) FindCustomerContact(ctx context.Context, id string) (*domain.CustomerContact, error) {
	const query = `
        SELECT cu.name, cu.email, co.status
        FROM complaints co
        JOIN customers cu ON cu.id = co.creator_id
        WHERE co.id=$1`
	var contact domain.CustomerContact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.Name,
		&contact.Email,
		&contact.Status,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

const reportRowQuery = `
        SELECT co.id, co.subject, co.status, co.office_type, cu.name, cu.email, co.created_at
        FROM complaints co
        JOIN customers cu ON cu.id = co.creator_id
        ORDER BY co.created_at`

func (r *complaintRepository) ReportRowsForPDF(ctx context.Context) ([]domain.ReportRow, error) {
	return r.reportRows(ctx)
}

func (r *complaintRepository) ReportRowsForCSV(ctx context.Context) ([]domain.ReportRow, error) {
	return r.reportRows(ctx)
}

func (r *complaintRepository) reportRows(ctx context.Context) ([]domain.ReportRow, error) {
	rows, err := r.pool.Query(ctx, reportRowQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportRow
	for rows.Next() {
		var row domain.ReportRow
		if err := rows.Scan(
			&row.ComplaintID,
			&row.Subject,
			&row.Status,
			&row.OfficeType,
			&row.CustomerName,
			&row.CustomerEmail,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Statistics invokes the pre-computed aggregation function in the store.
func (r *complaintRepository) Statistics(ctx context.Context) (*domain.Statistics, error) {
	const query = `SELECT total, pending, handled, cancelled FROM complaint_statistics()`
	var stats domain.Statistics
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Handled,
		&stats.Cancelled,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.CreatorID,
			&complaint.CategoryID,
			&complaint.Subject,
			&complaint.Description,
			&complaint.OfficeType,
			&complaint.Status,
			&complaint.CancelledBy,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
