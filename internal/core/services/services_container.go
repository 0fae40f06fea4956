package services

import (
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Business = NewBusinessService(
		repos.BusinessRepo,
		WithPercentageCacheTTL(cfg.PercentageCacheTTL),
	)

	// Processing depends on business for percentage lookups and on the
	// history store for persisting results.
	container.Processing = NewProcessingService(container.Business, repos.HistoryRepo)
	container.History = NewHistoryService(repos.HistoryRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.BusinessSvcFacade   = (*businessService)(nil)
	_ portssvc.ProcessingSvcFacade = (*processingService)(nil)
	_ portssvc.HistorySvcFacade    = (*historyService)(nil)
)
