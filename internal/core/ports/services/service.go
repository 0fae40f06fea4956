package services

// ServiceContainer bundles the service facades the handlers depend on.
type ServiceContainer struct {
	Business   BusinessSvcFacade
	Processing ProcessingSvcFacade
	History    HistorySvcFacade
}
