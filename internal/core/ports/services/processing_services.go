package services

import (
	"context"

	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProcessingSvcFacade is the period aggregation engine: it turns categorized
// transactions, a percentage and a date window into calculation results.
type ProcessingSvcFacade interface {
	// Aggregate computes one business's calculation result over a period.
	// Fails with apperrors.ErrInvalidPeriod when the period is inverted.
	Aggregate(ctx context.Context, txns []domain.Transaction, businessName string, percentage decimal.Decimal, period domain.Period) (*domain.CalculationResult, error)

	// ProcessBatch aggregates every parsed export over the same period,
	// looking up each business's percentage and recording history for
	// successful results when persist is set. Per-business failures are
	// reported in the result, never aborting the rest of the batch.
	ProcessBatch(ctx context.Context, exports []domain.TransactionExport, period domain.Period, persist bool) (*domain.BatchResult, error)
}

// HistorySvcFacade exposes recorded processing history.
type HistorySvcFacade interface {
	// ListHistory retrieves processing records, newest run first; an empty
	// businessName means all businesses.
	ListHistory(ctx context.Context, businessName string) ([]domain.ProcessingRecord, error)
}
