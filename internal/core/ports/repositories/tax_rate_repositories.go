package repositories

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// TaxRateReader defines read operations for tax rate data
type TaxRateReader interface {
	// FindTaxRateByID retrieves a specific tax rate by its identifier.
	FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error)

	// FindDefaultTaxRate retrieves the tax rate currently flagged as default, if any.
	FindDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error)

	// ListTaxRates retrieves tax rates, optionally only active ones.
	ListTaxRates(ctx context.Context, activeOnly bool) ([]domain.TaxRate, error)
}

// TaxRateWriter defines write operations for tax rate data
type TaxRateWriter interface {
	// SaveTaxRate persists a new tax rate.
	SaveTaxRate(ctx context.Context, taxRate domain.TaxRate) error

	// UpdateTaxRate updates a tax rate's mutable fields.
	UpdateTaxRate(ctx context.Context, taxRate domain.TaxRate) error

	// SetDefaultTaxRate clears the default flag on every rate and sets it on the
	// given one, all within one transaction.
	SetDefaultTaxRate(ctx context.Context, taxRateID string, updatedBy string) error
}

// TaxRateRepositoryFacade combines all tax-rate-related repository interfaces
type TaxRateRepositoryFacade interface {
	TaxRateReader
	TaxRateWriter
}

// TaxRateRepositoryWithTx extends TaxRateRepositoryFacade with transaction capabilities
type TaxRateRepositoryWithTx interface {
	TaxRateRepositoryFacade
	TransactionManager
}
