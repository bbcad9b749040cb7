package models

import "github.com/shopspring/decimal"

// Customer is the persisted customer row. Balances are denominated in
// legacy local units with a USD mirror maintained alongside every adjustment.
type Customer struct {
	CustomerID        string          `json:"customerID"`
	Code              string          `json:"code"` // Unique among non-deleted customers
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	CustomerType      string          `json:"customerType"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	CreditLimit       decimal.Decimal `json:"creditLimit"` // USD
	PaymentTermsDays  int             `json:"paymentTermsDays"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	OpeningBalanceUSD decimal.Decimal `json:"openingBalanceUSD"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	CurrentBalanceUSD decimal.Decimal `json:"currentBalanceUSD"`
	Notes             string          `json:"notes"`
	IsActive          bool            `json:"isActive"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}

// Supplier is the persisted supplier row, same balance conventions as Customer.
type Supplier struct {
	SupplierID        string          `json:"supplierID"`
	Code              string          `json:"code"` // Unique among non-deleted suppliers
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	PaymentTermsDays  int             `json:"paymentTermsDays"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	OpeningBalanceUSD decimal.Decimal `json:"openingBalanceUSD"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	CurrentBalanceUSD decimal.Decimal `json:"currentBalanceUSD"`
	Notes             string          `json:"notes"`
	IsActive          bool            `json:"isActive"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}
