package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// CountryRepository handles all database operations for Country
type CountryRepository struct {
	db *sql.DB
}

func NewCountryRepository(db *sql.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Create(ctx context.Context, c *domain.Country) error {
	if !c.IsNew() {
		return fmt.Errorf("country %d already persisted: %w", *c.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("country", "country_name", "region_id").
		Values(c.CountryName, nullable(regionID(c.Region()))).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create country: %w", err)
	}
	c.AssignID(id)
	return nil
}

// GetByID retrieves a country; its region is a shallow reference
func (r *CountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	query, args := selectCountries().Where("c.id = ?", id).Build()

	c, err := scanCountry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("country", id, err)
	}
	return c, nil
}

func (r *CountryRepository) Update(ctx context.Context, c *domain.Country) error {
	id, err := requireID("country", c.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("country").
		Set("country_name", c.CountryName).
		Set("region_id", nullable(regionID(c.Region()))).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update country %d: %w", id, err)
	}
	return expectAffected(res, "country", id)
}

func (r *CountryRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("country").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete country %d: %w", id, err)
	}
	return expectAffected(res, "country", id)
}

func (r *CountryRepository) List(ctx context.Context) ([]*domain.Country, error) {
	query, args := selectCountries().OrderBy("c.id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return countries, nil
}

func selectCountries() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select("c.id", "c.country_name", "r.id", "r.region_name").
		From("country c").
		Join("LEFT", "region r", "r.id = c.region_id")
}

func scanCountry(row rowScanner) (*domain.Country, error) {
	var (
		c          domain.Country
		id         int64
		regionRef  sql.NullInt64
		regionName sql.NullString
	)
	if err := row.Scan(&id, &c.CountryName, &regionRef, &regionName); err != nil {
		return nil, err
	}
	c.AssignID(id)
	if regionRef.Valid {
		c.SetRegion(&domain.Region{ID: domain.NewID(regionRef.Int64), RegionName: regionName.String})
	}
	return &c, nil
}
