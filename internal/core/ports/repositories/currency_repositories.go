package repositories

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindPrimaryCurrency retrieves the currency currently flagged as primary.
	FindPrimaryCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves available currencies, optionally only active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency updates a currency's mutable fields.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// SetPrimaryCurrency clears the primary flag everywhere and sets it on the
	// given currency, pinning its rate to 1, all within one transaction.
	SetPrimaryCurrency(ctx context.Context, currencyCode string, updatedBy string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
