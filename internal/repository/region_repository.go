package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/repository/builder"
)

// RegionRepository handles all database operations for Region
type RegionRepository struct {
	db *sql.DB
}

func NewRegionRepository(db *sql.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) Create(ctx context.Context, region *domain.Region) error {
	if !region.IsNew() {
		return fmt.Errorf("region %d already persisted: %w", *region.ID, domain.ErrConflict)
	}
	query, args := builder.NewSQLBuilder().
		Insert("region", "region_name").
		Values(region.RegionName).
		Returning("id").
		Build()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	region.AssignID(id)
	return nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id int64) (*domain.Region, error) {
	query, args := selectRegions().Where("id = ?", id).Build()

	region, err := scanRegion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound("region", id, err)
	}
	return region, nil
}

func (r *RegionRepository) Update(ctx context.Context, region *domain.Region) error {
	id, err := requireID("region", region.ID)
	if err != nil {
		return err
	}
	query, args := builder.NewSQLBuilder().Update("region").
		Set("region_name", region.RegionName).
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update region %d: %w", id, err)
	}
	return expectAffected(res, "region", id)
}

// Delete removes a region; countries in it fall back to no region
func (r *RegionRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().Delete("region").Where("id = ?", id).Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete region %d: %w", id, err)
	}
	return expectAffected(res, "region", id)
}

func (r *RegionRepository) List(ctx context.Context) ([]*domain.Region, error) {
	query, args := selectRegions().OrderBy("id ASC").Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer rows.Close()

	var regions []*domain.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return regions, nil
}

func selectRegions() *builder.SQLBuilder {
	return builder.NewSQLBuilder().Select("id", "region_name").From("region")
}

func scanRegion(row rowScanner) (*domain.Region, error) {
	var (
		region domain.Region
		id     int64
	)
	if err := row.Scan(&id, &region.RegionName); err != nil {
		return nil, err
	}
	region.AssignID(id)
	return &region, nil
}
