package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	taxRateRepo := newPgxTaxRateRepository(dbPool)
	dailyRateRepo := newPgxDailyRateRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	supplierRepo := newPgxSupplierRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	salesReturnRepo := newPgxSalesReturnRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	creditOverrideRepo := newPgxCreditOverrideRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:       currencyRepo,
		TaxRateRepo:        taxRateRepo,
		DailyRateRepo:      dailyRateRepo,
		CustomerRepo:       customerRepo,
		SupplierRepo:       supplierRepo,
		InvoiceRepo:        invoiceRepo,
		PaymentRepo:        paymentRepo,
		SalesReturnRepo:    salesReturnRepo,
		PurchaseRepo:       purchaseRepo,
		CreditOverrideRepo: creditOverrideRepo,
	}
}
