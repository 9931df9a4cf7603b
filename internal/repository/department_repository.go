package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// DepartmentRepository handles all database operations for Department
type DepartmentRepository struct {
	db *sql.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db *sql.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create inserts a new department and assigns its identifier
func (r *DepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	if !d.IsNew() {
		return fmt.Errorf("department %d already persisted: %w", *d.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("department", "department_name", "location_id").
		Values(d.DepartmentName, nullable(locationID(d.Location()))).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	d.AssignID(id)
	return nil
}

// GetByID retrieves a department; its location is a shallow reference
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	query, args := selectDepartments().Where("d.id = ?", id).Build()

	d, err := scanDepartment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("department", id, err)
	}
	return d, nil
}

// Update writes the department name and its location reference
func (r *DepartmentRepository) Update(ctx context.Context, d *domain.Department) error {
	id, err := requireID("department", d.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("department").
		Set("department_name", d.DepartmentName).
		Set("location_id", nullable(locationID(d.Location()))).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update department %d: %w", id, err)
	}
	return expectAffected(res, "department", id)
}

// Delete removes a department; referencing rows fall back to NULL
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("department").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete department %d: %w", id, err)
	}
	return expectAffected(res, "department", id)
}

// List retrieves all departments
func (r *DepartmentRepository) List(ctx context.Context) ([]*domain.Department, error) {
	query, args := selectDepartments().OrderBy("d.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return departments, nil
}

func selectDepartments() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select("d.id", "d.department_name", "l.id", "l.city").
		From("department d").
		Join("LEFT", "location l", "l.id = d.location_id")
}

func scanDepartment(row rowScanner) (*domain.Department, error) {
	var (
		d           domain.Department
		id          int64
		locationRef sql.NullInt64
		city        sql.NullString
	)
	if err := row.Scan(&id, &d.DepartmentName, &locationRef, &city); err != nil {
		return nil, err
	}
	d.AssignID(id)
	if locationRef.Valid {
		d.SetLocation(&domain.Location{ID: domain.NewID(locationRef.Int64), City: city.String})
	}
	return &d, nil
}
