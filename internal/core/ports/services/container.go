package services

// ServiceContainer bundles the service facades handed to the HTTP layer at
// startup.
type ServiceContainer struct {
	Entry     EntrySvcFacade
	Bulk      BulkSvcFacade
	Account   AccountSvcFacade
	Reporting ReportingSvcFacade
}
