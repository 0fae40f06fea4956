package repositories

// RepositoryProvider bundles the repositories the service layer depends on.
type RepositoryProvider struct {
	BusinessRepo BusinessRepositoryFacade
	HistoryRepo  HistoryRepositoryFacade
}
