package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// TaskRepository handles all database operations for Task. The job_task
// links are written by JobRepository; tasks are loaded with shallow
// references to the jobs that include them.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if !t.IsNew() {
		return fmt.Errorf("task %d already persisted: %w", *t.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("task", "title", "description").
		Values(t.Title, t.Description).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	t.AssignID(id)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query, args := selectTasks().Where("t.id = ?", id).Build()

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("task", id, err)
	}
	if err := attachTaskJobs(ctx, r.db, []*domain.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	id, err := requireID("task", t.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("task").
		Set("title", t.Title).
		Set("description", t.Description).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return expectAffected(res, "task", id)
}

// Delete removes a task together with its job links
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("task").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return expectAffected(res, "task", id)
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	query, args := selectTasks().OrderBy("t.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	if err := attachTaskJobs(ctx, r.db, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func selectTasks() *builder.SQLBuilder {
	return builder.NewSQLBuilder().Select("t.id", "t.title", "t.description").From("task t")
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t  domain.Task
		id int64
	)
	if err := row.Scan(&id, &t.Title, &t.Description); err != nil {
		return nil, err
	}
	t.AssignID(id)
	return &t, nil
}

// attachTaskJobs links each task to shallow jobs read from job_task.
func attachTaskJobs(ctx context.Context, db dbtx, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Task, len(tasks))
	ids := make([]interface{}, 0, len(tasks))
	for _, t := range tasks {
		byID[*t.ID] = t
		ids = append(ids, *t.ID)
	}

	query, args := builder.NewSQLBuilder().
		Select("jt.task_id", "j.id", "j.job_title").
		From("job_task jt").
		Join("INNER", "job j", "j.id = jt.job_id").
		WhereIn("jt.task_id", ids...).
		OrderBy("j.id ASC").
		Build()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load task jobs: %w", err)
	}
	defer rows.Close()

	jobs := make(map[int64]*domain.Job)
	for rows.Next() {
		var taskID, jid int64
		var title string
		if err := rows.Scan(&taskID, &jid, &title); err != nil {
			return fmt.Errorf("failed to scan task job: %w", err)
		}
		j, ok := jobs[jid]
		if !ok {
			j = &domain.Job{ID: domain.NewID(jid), JobTitle: title}
			jobs[jid] = j
		}
		j.AddTask(byID[taskID])
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}
