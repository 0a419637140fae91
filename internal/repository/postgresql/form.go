package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type formRepositoryImpl struct {
	db *database.DB
}

func NewFormRepository(db *database.DB) form.FormRepository {
	return &formRepositoryImpl{db: db}
}

const submissionSelect = `
	SELECT id, company_id, employee_id, kind, bpm_instance_id, status, payload, submitted_at, updated_at
	FROM form_submissions
`

// Create implements form.FormRepository.
func (r *formRepositoryImpl) Create(ctx context.Context, s form.Submission) (form.Submission, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO form_submissions (
			id, company_id, employee_id, kind, bpm_instance_id, status, payload,
			submitted_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			NOW(), NOW()
		) RETURNING submitted_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.EmployeeID, s.Kind, s.BPMInstanceID, s.Status, []byte(s.Payload),
	).Scan(&s.SubmittedAt, &s.UpdatedAt)
	if err != nil {
		return form.Submission{}, fmt.Errorf("failed to insert form submission: %w", err)
	}

	return s, nil
}

// GetByID implements form.FormRepository.
func (r *formRepositoryImpl) GetByID(ctx context.Context, companyID, employeeID, id string) (form.Submission, error) {
	q := GetQuerier(ctx, r.db)
	query := submissionSelect + ` WHERE id = $1 AND company_id = $2 AND employee_id = $3`
	return scanSubmission(q.QueryRow(ctx, query, id, companyID, employeeID))
}

// GetByInstanceID implements form.FormRepository.
func (r *formRepositoryImpl) GetByInstanceID(ctx context.Context, instanceID string) (form.Submission, error) {
	q := GetQuerier(ctx, r.db)
	query := submissionSelect + ` WHERE bpm_instance_id = $1`
	return scanSubmission(q.QueryRow(ctx, query, instanceID))
}

// List implements form.FormRepository.
func (r *formRepositoryImpl) List(ctx context.Context, companyID, employeeID string, filter form.ListFilter) ([]form.Submission, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "employee_id = $2"}
	args := []interface{}{companyID, employeeID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM form_submissions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count form submissions: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := submissionSelect + where + fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query form submissions: %w", err)
	}
	submissions, err := collectSubmissions(rows)
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// ListPending implements form.FormRepository.
func (r *formRepositoryImpl) ListPending(ctx context.Context, limit int) ([]form.Submission, error) {
	q := GetQuerier(ctx, r.db)
	query := submissionSelect + ` WHERE status = $1 ORDER BY synced_at ASC NULLS FIRST, submitted_at ASC LIMIT $2`

	rows, err := q.Query(ctx, query, form.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending submissions: %w", err)
	}
	return collectSubmissions(rows)
}

// MarkSynced implements form.FormRepository.
func (r *formRepositoryImpl) MarkSynced(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `UPDATE form_submissions SET synced_at = NOW() WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to mark forms synced: %w", err)
	}
	return nil
}

// LockStatus implements form.FormRepository.
func (r *formRepositoryImpl) LockStatus(ctx context.Context, id string) (form.Status, error) {
	q := GetQuerier(ctx, r.db)

	var status form.Status
	err := q.QueryRow(ctx, `SELECT status FROM form_submissions WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", form.ErrFormNotFound
		}
		return "", fmt.Errorf("failed to lock form submission: %w", err)
	}
	return status, nil
}

// UpdateStatus implements form.FormRepository.
func (r *formRepositoryImpl) UpdateStatus(ctx context.Context, id string, status form.Status) error {
	q := GetQuerier(ctx, r.db)
	query := `UPDATE form_submissions SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update form status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return form.ErrFormNotFound
	}
	return nil
}

func scanSubmission(row pgx.Row) (form.Submission, error) {
	var s form.Submission
	var payload []byte
	err := row.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.Kind, &s.BPMInstanceID, &s.Status, &payload, &s.SubmittedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return form.Submission{}, form.ErrFormNotFound
		}
		return form.Submission{}, fmt.Errorf("failed to scan form submission: %w", err)
	}
	s.Payload = payload
	return s, nil
}

func collectSubmissions(rows pgx.Rows) ([]form.Submission, error) {
	defer rows.Close()

	submissions := []form.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate form submissions: %w", err)
	}
	return submissions, nil
}
