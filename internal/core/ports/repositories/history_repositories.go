package repositories

import (
	"context"

	"github.com/fundline/mca_backend/internal/core/domain"
)

// HistoryReader defines read operations for processing history.
type HistoryReader interface {
	// ListHistory retrieves processing records, newest run first.
	// An empty businessName returns records for all businesses.
	ListHistory(ctx context.Context, businessName string) ([]domain.ProcessingRecord, error)
}

// HistoryWriter defines write operations for processing history.
type HistoryWriter interface {
	// SaveProcessingRecord appends a record, replacing any previous record
	// for the same business, run date and period.
	SaveProcessingRecord(ctx context.Context, record domain.ProcessingRecord) error
}

// HistoryRepositoryFacade combines all history repository interfaces.
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
