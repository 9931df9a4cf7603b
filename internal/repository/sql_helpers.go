package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/locvowork/practiceapp/internal/domain"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func notFound(kind string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %d: %w", kind, id, err)
}

func expectAffected(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

func requireID(kind string, id *int64) (int64, error) {
	if id == nil {
		return 0, fmt.Errorf("%s is not persisted: %w", kind, domain.ErrValidation)
	}
	return *id, nil
}

// nullable converts an optional value into a driver argument.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return domain.NewID(v.Int64)
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func employeeID(e *domain.Employee) *int64 {
	if e == nil {
		return nil
	}
	return e.ID
}

func departmentID(d *domain.Department) *int64 {
	if d == nil {
		return nil
	}
	return d.ID
}

func jobID(j *domain.Job) *int64 {
	if j == nil {
		return nil
	}
	return j.ID
}

func locationID(l *domain.Location) *int64 {
	if l == nil {
		return nil
	}
	return l.ID
}

func countryID(c *domain.Country) *int64 {
	if c == nil {
		return nil
	}
	return c.ID
}

func regionID(r *domain.Region) *int64 {
	if r == nil {
		return nil
	}
	return r.ID
}
