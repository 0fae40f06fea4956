package pgsql

import (
	"context"
	"fmt"

	"github.com/fundline/mca_backend/internal/core/domain"
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new repository for processing history.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// SaveProcessingRecord appends a history row. A re-run for the same business,
// run date and period replaces the previous row, so repeated runs never pile
// up duplicates.
func (r *PgxHistoryRepository) SaveProcessingRecord(ctx context.Context, record domain.ProcessingRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	deleteQuery := `
		DELETE FROM processing_history
		WHERE business_name = $1 AND run_date = $2 AND period_start = $3 AND period_end = $4;
	`
	if _, err := tx.Exec(ctx, deleteQuery, record.BusinessName, record.RunDate, record.PeriodStart, record.PeriodEnd); err != nil {
		return fmt.Errorf("failed to clear previous history for %s: %w", record.BusinessName, err)
	}

	insertQuery := `
		INSERT INTO processing_history
			(record_id, business_name, run_date, income_amount, processing_amount, period_start, period_end, transaction_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		record.RecordID,
		record.BusinessName,
		record.RunDate,
		record.IncomeAmount,
		record.ProcessingAmount,
		record.PeriodStart,
		record.PeriodEnd,
		record.TransactionCount,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save history for %s: %w", record.BusinessName, err)
	}

	return r.Commit(ctx, tx)
}

// ListHistory retrieves processing records, newest run first. An empty
// businessName returns records for all businesses.
func (r *PgxHistoryRepository) ListHistory(ctx context.Context, businessName string) ([]domain.ProcessingRecord, error) {
	query := `
		SELECT record_id, business_name, run_date, income_amount, processing_amount, period_start, period_end, transaction_count, created_at
		FROM processing_history
		WHERE ($1 = '' OR business_name = $1)
		ORDER BY run_date DESC, business_name;
	`

	rows, err := r.Pool.Query(ctx, query, businessName)
	if err != nil {
		return nil, fmt.Errorf("failed to list processing history: %w", err)
	}
	defer rows.Close()

	var records []domain.ProcessingRecord
	for rows.Next() {
		var rec domain.ProcessingRecord
		if err := rows.Scan(
			&rec.RecordID,
			&rec.BusinessName,
			&rec.RunDate,
			&rec.IncomeAmount,
			&rec.ProcessingAmount,
			&rec.PeriodStart,
			&rec.PeriodEnd,
			&rec.TransactionCount,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return records, nil
}
