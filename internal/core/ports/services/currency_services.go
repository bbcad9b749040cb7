package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// GetPrimaryCurrency retrieves the currency currently flagged as primary.
	GetPrimaryCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves available currencies.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)

	// ConvertAmount converts an amount between two registered currencies by
	// pivoting through the primary currency, rounded to the target currency's
	// decimal places.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrency updates a currency's mutable fields.
	UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error)

	// SetPrimaryCurrency atomically moves the primary flag to the given
	// currency and pins its rate to 1.
	SetPrimaryCurrency(ctx context.Context, currencyCode string, updaterUserID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// TaxRateReaderSvc defines read operations for tax rate data
type TaxRateReaderSvc interface {
	// GetTaxRateByID retrieves a specific tax rate.
	GetTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error)

	// GetDefaultTaxRate retrieves the current default tax rate, if any.
	GetDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error)

	// ListTaxRates retrieves tax rates.
	ListTaxRates(ctx context.Context, activeOnly bool) ([]domain.TaxRate, error)
}

// TaxRateWriterSvc defines write operations for tax rate data
type TaxRateWriterSvc interface {
	// CreateTaxRate persists a new tax rate.
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, creatorUserID string) (*domain.TaxRate, error)

	// UpdateTaxRate updates a tax rate's mutable fields.
	UpdateTaxRate(ctx context.Context, taxRateID string, req dto.UpdateTaxRateRequest, updaterUserID string) (*domain.TaxRate, error)

	// SetDefaultTaxRate atomically moves the default flag to the given rate.
	SetDefaultTaxRate(ctx context.Context, taxRateID string, updaterUserID string) error
}

// TaxRateSvcFacade combines all tax-rate-related service interfaces
type TaxRateSvcFacade interface {
	TaxRateReaderSvc
	TaxRateWriterSvc
}
