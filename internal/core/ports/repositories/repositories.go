package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo       CurrencyRepositoryFacade
	TaxRateRepo        TaxRateRepositoryFacade
	DailyRateRepo      DailyRateRepositoryFacade
	CustomerRepo       CustomerRepositoryFacade
	SupplierRepo       SupplierRepositoryFacade
	InvoiceRepo        InvoiceRepositoryFacade
	PaymentRepo        PaymentRepositoryFacade
	SalesReturnRepo    SalesReturnRepositoryFacade
	PurchaseRepo       PurchaseRepositoryFacade
	CreditOverrideRepo CreditOverrideRepositoryFacade
}
