package domain

import "github.com/shopspring/decimal"

// CustomerType classifies a customer for reporting purposes.
type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerCompany    CustomerType = "company"
	CustomerGovernment CustomerType = "government"
)

// Customer is a sales party. The running balance is kept in two mirrors that
// must always represent the same economic amount: current_balance in legacy
// local units (the ledger view) and current_balance_usd in the settlement
// currency. Each balance-affecting document contributes its own delta converted
// through that document's frozen snapshot.
type Customer struct {
	CustomerID        string          `json:"customerID"` // Primary Key (UUID)
	Code              string          `json:"code"`       // Unique among non-deleted customers
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	CustomerType      CustomerType    `json:"customerType"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	CreditLimit       decimal.Decimal `json:"creditLimit"` // USD
	PaymentTermsDays  int             `json:"paymentTermsDays"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`    // Legacy local units
	OpeningBalanceUSD decimal.Decimal `json:"openingBalanceUSD"` // Settlement mirror
	CurrentBalance    decimal.Decimal `json:"currentBalance"`    // Legacy local units
	CurrentBalanceUSD decimal.Decimal `json:"currentBalanceUSD"` // Settlement mirror
	Notes             string          `json:"notes"`
	IsActive          bool            `json:"isActive"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}

// Supplier is a purchase party with the same dual-mirror running balance
// semantics as Customer, from the payable side.
type Supplier struct {
	SupplierID        string          `json:"supplierID"` // Primary Key (UUID)
	Code              string          `json:"code"`       // Unique among non-deleted suppliers
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

// BalanceDelta is the dual-currency effect of one document on a party balance.
// Local is expressed in the party ledger's legacy local units; USD is the
// settlement mirror computed through the document's frozen snapshot.
type BalanceDelta struct {
	Local decimal.Decimal
	USD   decimal.Decimal
}

// Neg returns the opposite delta, used when reversing a document's effect.
func (d BalanceDelta) Neg() BalanceDelta {
	return BalanceDelta{Local: d.Local.Neg(), USD: d.USD.Neg()}
}

// IsZero reports whether the delta has no effect in either mirror.
func (d BalanceDelta) IsZero() bool {
	return d.Local.IsZero() && d.USD.IsZero()
}
