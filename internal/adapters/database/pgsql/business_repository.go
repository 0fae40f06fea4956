package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for business configuration data.
func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

// UpsertBusiness inserts a business or updates its percentage when the name
// already exists; created_at and created_by are preserved on update.
func (r *PgxBusinessRepository) UpsertBusiness(ctx context.Context, business domain.BusinessRecord) error {
	query := `
		INSERT INTO businesses (business_id, name, processing_percentage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			processing_percentage = EXCLUDED.processing_percentage,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		business.BusinessID,
		business.Name,
		business.Percentage,
		business.CreatedAt,
		business.CreatedBy,
		business.LastUpdatedAt,
		business.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert business %s: %w", business.Name, err)
	}
	return nil
}

// FindBusinessByName retrieves a business by its canonical name.
func (r *PgxBusinessRepository) FindBusinessByName(ctx context.Context, name string) (*domain.BusinessRecord, error) {
	query := `
		SELECT business_id, name, processing_percentage, created_at, created_by, last_updated_at, last_updated_by
		FROM businesses
		WHERE name = $1;
	`

	var business domain.BusinessRecord
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&business.BusinessID,
		&business.Name,
		&business.Percentage,
		&business.CreatedAt,
		&business.CreatedBy,
		&business.LastUpdatedAt,
		&business.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business %s: %w", name, err)
	}
	return &business, nil
}

// ListBusinesses retrieves all configured businesses ordered by name.
func (r *PgxBusinessRepository) ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error) {
	query := `
		SELECT business_id, name, processing_percentage, created_at, created_by, last_updated_at, last_updated_by
		FROM businesses
		ORDER BY name;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []domain.BusinessRecord
	for rows.Next() {
		var business domain.BusinessRecord
		if err := rows.Scan(
			&business.BusinessID,
			&business.Name,
			&business.Percentage,
			&business.CreatedAt,
			&business.CreatedBy,
			&business.LastUpdatedAt,
			&business.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating business rows: %w", err)
	}
	return businesses, nil
}

// DeleteBusiness removes a business by name.
func (r *PgxBusinessRepository) DeleteBusiness(ctx context.Context, name string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM businesses WHERE name = $1;`, name)
	if err != nil {
		return fmt.Errorf("failed to delete business %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
