package domain

import "github.com/shopspring/decimal"

// Currency represents a registered currency. Exactly one active currency is
// primary at any time; its exchange rate is pinned to 1 and every conversion
// pivots through it.
type Currency struct {
	CurrencyCode  string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name          string          `json:"name"`         // Arabic display name
	NameEn        string          `json:"nameEn"`       // English display name
	Symbol        string          `json:"symbol"`       // e.g., "$"
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // Rate relative to the primary currency
	IsPrimary     bool            `json:"isPrimary"`
	IsActive      bool            `json:"isActive"`
	DecimalPlaces int             `json:"decimalPlaces"`
	AuditFields
}

// TaxRate is a configurable tax percentage. At most one active rate carries the
// default flag; flipping it clears the flag on every other rate in the same save.
type TaxRate struct {
	TaxRateID   string          `json:"taxRateID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Code        string          `json:"code"` // Unique short code
	Rate        decimal.Decimal `json:"rate"` // Percentage, e.g. 15.00
	IsActive    bool            `json:"isActive"`
	IsDefault   bool            `json:"isDefault"`
	Description string          `json:"description"`
	AuditFields
}
