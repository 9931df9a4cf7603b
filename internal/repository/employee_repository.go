package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

var employeeColumns = []string{
	"e.id", "e.first_name", "e.last_name", "e.email", "e.phone_number",
	"e.hire_date", "e.salary", "e.commission_pct",
	"m.id", "m.first_name", "m.last_name",
	"d.id", "d.department_name",
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	if !e.IsNew() {
		return fmt.Errorf("employee %d already persisted: %w", *e.ID, domain.ErrConflict)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder.NewSQLBuilder().
			Insert("employee", "first_name", "last_name", "email", "phone_number",
				"hire_date", "salary", "commission_pct", "manager_id", "department_id").
			Values(e.FirstName, e.LastName, e.Email, e.PhoneNumber,
				nullable(e.HireDate), nullable(e.Salary), nullable(e.CommissionPct),
				nullable(employeeID(e.Manager())), nullable(departmentID(e.Department()))).
			Returning("id").
			Build()

		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		if err := syncOwned(ctx, tx, id, e); err != nil {
			return err
		}
		e.AssignID(id)
		return nil
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query, args := selectEmployees().Where("e.id = ?", id).Build()

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("employee", id, err)
	}
	if err := attachOwned(ctx, r.db, []*domain.Employee{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	id, err := requireID("employee", e.ID)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := builder.NewSQLBuilder().Update("employee").
			Set("first_name", e.FirstName).
			Set("last_name", e.LastName).
			Set("email", e.Email).
			Set("phone_number", e.PhoneNumber).
			Set("hire_date", nullable(e.HireDate)).
			Set("salary", nullable(e.Salary)).
			Set("commission_pct", nullable(e.CommissionPct)).
			Set("manager_id", nullable(employeeID(e.Manager()))).
			Set("department_id", nullable(departmentID(e.Department()))).
			Where("id = ?", id).
			Build()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update employee %d: %w", id, err)
		}
		if err := expectAffected(res, "employee", id); err != nil {
			return err
		}
		return syncOwned(ctx, tx, id, e)
	})
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("employee").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return expectAffected(res, "employee", id)
}

func (r *employeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error) {
	b := selectEmployees().OrderBy("e.id ASC")
	if filter.DepartmentID != nil {
		b.Where("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.ManagerID != nil {
		b.Where("e.manager_id = ?", *filter.ManagerID)
	}
	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if err := attachOwned(ctx, r.db, employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func selectEmployees() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select(employeeColumns...).
		From("employee e").
		Join("LEFT", "employee m", "m.id = e.manager_id").
		Join("LEFT", "department d", "d.id = e.department_id")
}

// scanEmployee reads one employee row. The manager and department come back
// as shallow references carrying only their own columns.
func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var (
		e                         domain.Employee
		id                        int64
		hireDate                  sql.NullTime
		salary, commission        sql.NullInt64
		managerID, departmentID   sql.NullInt64
		managerFirst, managerLast sql.NullString
		departmentName            sql.NullString
	)
	if err := row.Scan(&id, &e.FirstName, &e.LastName, &e.Email, &e.PhoneNumber,
		&hireDate, &salary, &commission,
		&managerID, &managerFirst, &managerLast,
		&departmentID, &departmentName); err != nil {
		return nil, err
	}

	e.AssignID(id)
	e.HireDate = timePtr(hireDate)
	e.Salary = int64Ptr(salary)
	e.CommissionPct = int64Ptr(commission)
	if managerID.Valid {
		e.SetManager(&domain.Employee{
			ID:        domain.NewID(managerID.Int64),
			FirstName: managerFirst.String,
			LastName:  managerLast.String,
		})
	}
	if departmentID.Valid {
		e.SetDepartment(&domain.Department{
			ID:             domain.NewID(departmentID.Int64),
			DepartmentName: departmentName.String,
		})
	}
	return &e, nil
}

// attachOwned loads the jobs (with their tasks) and job histories of
// employees and links them through the owning-side mutators.
func attachOwned(ctx context.Context, db dbtx, employees []*domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Employee, len(employees))
	ids := make([]interface{}, 0, len(employees))
	for _, e := range employees {
		byID[*e.ID] = e
		ids = append(ids, *e.ID)
	}

	query, args := selectJobs().WhereIn("j.employee_id", ids...).OrderBy("j.id ASC").Build()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	jobs := make(map[int64][]*domain.Job)
	var loaded []*domain.Job
	for rows.Next() {
		job, owner, err := scanJob(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan job: %w", err)
		}
		jobs[*owner] = append(jobs[*owner], job)
		loaded = append(loaded, job)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	if err := attachJobTasks(ctx, db, loaded); err != nil {
		return err
	}

	query, args = selectJobHistories().WhereIn("h.employee_id", ids...).Build()
	rows, err = db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load job histories: %w", err)
	}
	defer rows.Close()
	histories := make(map[int64]*domain.JobHistory)
	for rows.Next() {
		h, owner, err := scanJobHistory(rows)
		if err != nil {
			return fmt.Errorf("failed to scan job history: %w", err)
		}
		histories[*owner] = h
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	for id, e := range byID {
		e.SetJobs(jobs[id])
		e.SetJobHistory(histories[id])
	}
	return nil
}

// syncOwned writes the foreign keys held by e's jobs and job history: rows
// that left the association are cleared, rows that joined point at id.
func syncOwned(ctx context.Context, tx dbtx, id int64, e *domain.Employee) error {
	jobIDs := make([]interface{}, 0, len(e.Jobs()))
	for _, job := range e.Jobs() {
		jid, err := requireID("job", job.ID)
		if err != nil {
			return err
		}
		jobIDs = append(jobIDs, jid)
	}

	stmts := []*builder.SQLBuilder{
		builder.NewSQLBuilder().Update("job").Set("employee_id", nil).
			Where("employee_id = ?", id).WhereNotIn("id", jobIDs...),
	}
	if len(jobIDs) > 0 {
		stmts = append(stmts, builder.NewSQLBuilder().Update("job").Set("employee_id", id).
			WhereIn("id", jobIDs...))
	}

	detach := builder.NewSQLBuilder().Update("job_history").Set("employee_id", nil).Where("employee_id = ?", id)
	if h := e.JobHistory(); h != nil {
		hid, err := requireID("job history", h.ID)
		if err != nil {
			return err
		}
		detach.Where("id <> ?", hid)
		stmts = append(stmts, detach,
			builder.NewSQLBuilder().Update("job_history").Set("employee_id", id).Where("id = ?", hid))
	} else {
		stmts = append(stmts, detach)
	}

	for _, b := range stmts {
		query, args := b.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to sync associations of employee %d: %w", id, err)
		}
	}
	return nil
}
