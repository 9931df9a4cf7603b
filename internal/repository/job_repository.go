package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// JobRepository handles all database operations for Job
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new instance of JobRepository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job with its task links and assigns its identifier
func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	if !j.IsNew() {
		return fmt.Errorf("job %d already persisted: %w", *j.ID, domain.ErrConflict)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder.NewSQLBuilder().
			Insert("job", "job_title", "min_salary", "max_salary", "employee_id").
			Values(j.JobTitle, nullable(j.MinSalary), nullable(j.MaxSalary), nullable(employeeID(j.Employee()))).
			Returning("id").
			Build()

		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		if err := syncTasks(ctx, tx, id, j); err != nil {
			return err
		}
		j.AssignID(id)
		return nil
	})
}

// GetByID retrieves a job with its tasks; its employee is a shallow reference
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query, args := selectJobs().Where("j.id = ?", id).Build()

	j, owner, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("job", id, err)
	}
	attachJobOwner(j, owner)
	if err := attachJobTasks(ctx, r.db, []*domain.Job{j}); err != nil {
		return nil, err
	}
	return j, nil
}

// Update writes the job columns, its employee reference and its task links
func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	id, err := requireID("job", j.ID)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder.NewSQLBuilder().Update("job").
			Set("job_title", j.JobTitle).
			Set("min_salary", nullable(j.MinSalary)).
			Set("max_salary", nullable(j.MaxSalary)).
			Set("employee_id", nullable(employeeID(j.Employee()))).
			Where("id = ?", id).
			Build()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update job %d: %w", id, err)
		}
		if err := expectAffected(res, "job", id); err != nil {
			return err
		}
		return syncTasks(ctx, tx, id, j)
	})
}

// Delete removes a job
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("job").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete job %d: %w", id, err)
	}
	return expectAffected(res, "job", id)
}

// List retrieves all jobs
func (r *JobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	query, args := selectJobs().OrderBy("j.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, owner, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		attachJobOwner(j, owner)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	if err := attachJobTasks(ctx, r.db, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func selectJobs() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select("j.id", "j.job_title", "j.min_salary", "j.max_salary", "j.employee_id").
		From("job j")
}

func scanJob(row rowScanner) (*domain.Job, *int64, error) {
	var (
		j                 domain.Job
		id                int64
		minSalary, maxSal sql.NullInt64
		owner             sql.NullInt64
	)
	if err := row.Scan(&id, &j.JobTitle, &minSalary, &maxSal, &owner); err != nil {
		return nil, nil, err
	}
	j.AssignID(id)
	j.MinSalary = int64Ptr(minSalary)
	j.MaxSalary = int64Ptr(maxSal)
	return &j, int64Ptr(owner), nil
}

func attachJobOwner(j *domain.Job, owner *int64) {
	if owner != nil {
		(&domain.Employee{ID: owner}).AddJob(j)
	}
}

// syncTasks replaces the job_task rows of job id with j's current tasks.
func syncTasks(ctx context.Context, tx dbtx, id int64, j *domain.Job) error {
	stmts := []*builder.SQLBuilder{
		builder.NewSQLBuilder().Delete("job_task").Where("job_id = ?", id),
	}
	for _, t := range j.Tasks() {
		tid, err := requireID("task", t.ID)
		if err != nil {
			return err
		}
		stmts = append(stmts, builder.NewSQLBuilder().Insert("job_task", "job_id", "task_id").Values(id, tid))
	}

	for _, b := range stmts {
		query, args := b.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to sync tasks of job %d: %w", id, err)
		}
	}
	return nil
}

// attachJobTasks loads the tasks of jobs in one query. A task shared by
// several jobs is loaded once and linked to each of them.
func attachJobTasks(ctx context.Context, db dbtx, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Job, len(jobs))
	ids := make([]interface{}, 0, len(jobs))
	for _, j := range jobs {
		byID[*j.ID] = j
		ids = append(ids, *j.ID)
	}

	query, args := builder.NewSQLBuilder().
		Select("jt.job_id", "t.id", "t.title", "t.description").
		From("job_task jt").
		Join("INNER", "task t", "t.id = jt.task_id").
		WhereIn("jt.job_id", ids...).
		OrderBy("t.id ASC").
		Build()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load job tasks: %w", err)
	}
	defer rows.Close()

	tasks := make(map[int64]*domain.Task)
	for rows.Next() {
		var jid, tid int64
		var title, description string
		if err := rows.Scan(&jid, &tid, &title, &description); err != nil {
			return fmt.Errorf("failed to scan job task: %w", err)
		}
		t, ok := tasks[tid]
		if !ok {
			t = &domain.Task{ID: domain.NewID(tid), Title: title, Description: description}
			tasks[tid] = t
		}
		byID[jid].AddTask(t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}
