package models

import "github.com/shopspring/decimal"

// Currency is the persisted shape of a registered currency.
type Currency struct {
	CurrencyCode  string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name          string          `json:"name"`
	NameEn        string          `json:"nameEn"`
	Symbol        string          `json:"symbol"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	IsPrimary     bool            `json:"isPrimary"`
	IsActive      bool            `json:"isActive"`
	DecimalPlaces int             `json:"decimalPlaces"`
	AuditFields
}

// TaxRate is the persisted shape of a tax rate configuration.
type TaxRate struct {
	TaxRateID   string          `json:"taxRateID"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Rate        decimal.Decimal `json:"rate"`
	IsActive    bool            `json:"isActive"`
	IsDefault   bool            `json:"isDefault"`
	Description string          `json:"description"`
	AuditFields
}
