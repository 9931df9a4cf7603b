package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// LocationRepository handles all database operations for Location
type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	if !l.IsNew() {
		return fmt.Errorf("location %d already persisted: %w", *l.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("location", "street_address", "postal_code", "city", "state_province", "country_id").
		Values(l.StreetAddress, l.PostalCode, l.City, l.StateProvince, nullable(countryID(l.Country()))).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	l.AssignID(id)
	return nil
}

// GetByID retrieves a location; its country is a shallow reference
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query, args := selectLocations().Where("l.id = ?", id).Build()

	l, err := scanLocation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("location", id, err)
	}
	return l, nil
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	id, err := requireID("location", l.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("location").
		Set("street_address", l.StreetAddress).
		Set("postal_code", l.PostalCode).
		Set("city", l.City).
		Set("state_province", l.StateProvince).
		Set("country_id", nullable(countryID(l.Country()))).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update location %d: %w", id, err)
	}
	return expectAffected(res, "location", id)
}

// Delete removes a location; departments at it fall back to no location
func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("location").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}
	return expectAffected(res, "location", id)
}

func (r *LocationRepository) List(ctx context.Context) ([]*domain.Location, error) {
	query, args := selectLocations().OrderBy("l.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []*domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return locations, nil
}

func selectLocations() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select("l.id", "l.street_address", "l.postal_code", "l.city", "l.state_province",
			"c.id", "c.country_name").
		From("location l").
		Join("LEFT", "country c", "c.id = l.country_id")
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var (
		l           domain.Location
		id          int64
		countryRef  sql.NullInt64
		countryName sql.NullString
	)
	if err := row.Scan(&id, &l.StreetAddress, &l.PostalCode, &l.City, &l.StateProvince,
		&countryRef, &countryName); err != nil {
		return nil, err
	}
	l.AssignID(id)
	if countryRef.Valid {
		l.SetCountry(&domain.Country{ID: domain.NewID(countryRef.Int64), CountryName: countryName.String})
	}
	return &l, nil
}
