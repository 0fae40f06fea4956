package services

import (
	"context"

	"github.com/fundline/mca_backend/internal/core/domain"
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
)

// historyService implements the HistorySvcFacade interface.
type historyService struct {
	BaseService
	historyRepo portsrepo.HistoryReader
}

// NewHistoryService creates a new history service.
func NewHistoryService(repo portsrepo.HistoryReader) portssvc.HistorySvcFacade {
	return &historyService{historyRepo: repo}
}

// Ensure historyService implements the HistorySvcFacade interface
var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// ListHistory retrieves processing records, newest run first.
func (s *historyService) ListHistory(ctx context.Context, businessName string) ([]domain.ProcessingRecord, error) {
	return s.historyRepo.ListHistory(ctx, businessName)
}
