package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	EntryRepo     EntryRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	ReportingRepo ReportingRepository
}
