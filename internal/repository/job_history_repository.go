package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// JobHistoryRepository handles all database operations for JobHistory
type JobHistoryRepository struct {
	db *sql.DB
}

// NewJobHistoryRepository creates a new instance of JobHistoryRepository
func NewJobHistoryRepository(db *sql.DB) *JobHistoryRepository {
	return &JobHistoryRepository{db: db}
}

// Create inserts a new job history and assigns its identifier
func (r *JobHistoryRepository) Create(ctx context.Context, h *domain.JobHistory) error {
	if !h.IsNew() {
		return fmt.Errorf("job history %d already persisted: %w", *h.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("job_history", "start_date", "end_date", "language", "job_id", "department_id", "employee_id").
		Values(nullable(h.StartDate), nullable(h.EndDate), string(h.Language),
			nullable(jobID(h.Job())), nullable(departmentID(h.Department())), nullable(employeeID(h.Employee()))).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create job history: %w", err)
	}
	h.AssignID(id)
	return nil
}

// GetByID retrieves a job history with shallow job, department and employee
func (r *JobHistoryRepository) GetByID(ctx context.Context, id int64) (*domain.JobHistory, error) {
	query, args := selectJobHistories().Where("h.id = ?", id).Build()

	h, owner, err := scanJobHistory(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("job history", id, err)
	}
	attachHistoryOwner(h, owner)
	return h, nil
}

// Update writes the history columns and every reference it holds
func (r *JobHistoryRepository) Update(ctx context.Context, h *domain.JobHistory) error {
	id, err := requireID("job history", h.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("job_history").
		Set("start_date", nullable(h.StartDate)).
		Set("end_date", nullable(h.EndDate)).
		Set("language", string(h.Language)).
		Set("job_id", nullable(jobID(h.Job()))).
		Set("department_id", nullable(departmentID(h.Department()))).
		Set("employee_id", nullable(employeeID(h.Employee()))).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job history %d: %w", id, err)
	}
	return expectAffected(res, "job history", id)
}

// Delete removes a job history
func (r *JobHistoryRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("job_history").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete job history %d: %w", id, err)
	}
	return expectAffected(res, "job history", id)
}

// List retrieves all job histories
func (r *JobHistoryRepository) List(ctx context.Context) ([]*domain.JobHistory, error) {
	query, args := selectJobHistories().OrderBy("h.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job histories: %w", err)
	}
	defer rows.Close()

	var histories []*domain.JobHistory
	for rows.Next() {
		h, owner, err := scanJobHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job history: %w", err)
		}
		attachHistoryOwner(h, owner)
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return histories, nil
}

func selectJobHistories() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select("h.id", "h.start_date", "h.end_date", "h.language",
			"j.id", "j.job_title", "d.id", "d.department_name", "h.employee_id").
		From("job_history h").
		Join("LEFT", "job j", "j.id = h.job_id").
		Join("LEFT", "department d", "d.id = h.department_id")
}

func scanJobHistory(row rowScanner) (*domain.JobHistory, *int64, error) {
	var (
		h                        domain.JobHistory
		id                       int64
		start, end               sql.NullTime
		language                 sql.NullString
		jobRef, departmentRef    sql.NullInt64
		jobTitle, departmentName sql.NullString
		owner                    sql.NullInt64
	)
	if err := row.Scan(&id, &start, &end, &language,
		&jobRef, &jobTitle, &departmentRef, &departmentName, &owner); err != nil {
		return nil, nil, err
	}
	h.AssignID(id)
	h.StartDate = timePtr(start)
	h.EndDate = timePtr(end)
	h.Language = domain.Language(language.String)
	if jobRef.Valid {
		h.SetJob(&domain.Job{ID: domain.NewID(jobRef.Int64), JobTitle: jobTitle.String})
	}
	if departmentRef.Valid {
		h.SetDepartment(&domain.Department{ID: domain.NewID(departmentRef.Int64), DepartmentName: departmentName.String})
	}
	return &h, int64Ptr(owner), nil
}

func attachHistoryOwner(h *domain.JobHistory, owner *int64) {
	if owner != nil {
		(&domain.Employee{ID: owner}).SetJobHistory(h)
	}
}
