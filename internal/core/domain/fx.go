package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCurrency identifies the currency a document was priced in.
// The wire values are stable and match the persisted representation.
type TransactionCurrency string

const (
	// CurrencyUSD is the settlement currency mirrored onto every monetary total.
	CurrencyUSD TransactionCurrency = "USD"
	// CurrencySYPOld is the legacy local currency regime.
	CurrencySYPOld TransactionCurrency = "SYP_OLD"
	// CurrencySYPNew is the redenominated local currency regime.
	CurrencySYPNew TransactionCurrency = "SYP_NEW"
)

// Valid reports whether the value is one of the supported transaction currencies.
func (c TransactionCurrency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencySYPOld, CurrencySYPNew:
		return true
	}
	return false
}

// DailyExchangeRate is one entry of the append-only-by-date FX ledger: the
// USD→SYP rates that applied on a single calendar date. One row per date.
type DailyExchangeRate struct {
	RateID      string          `json:"rateID"`   // Primary Key (UUID)
	RateDate    time.Time       `json:"rateDate"` // Unique calendar date
	USDToSYPOld decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew decimal.Decimal `json:"usdToSypNew"`
	Notes       string          `json:"notes"`
	AuditFields
}

// FXSnapshot is the rate pair frozen onto a document at creation time. It is
// written exactly once per document and must be reused for every later
// recomputation of that document's settlement mirror; never a refetched rate.
type FXSnapshot struct {
	RateDate    *time.Time       `json:"rateDate"`
	USDToSYPOld *decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew *decimal.Decimal `json:"usdToSypNew"`
}

// IsSet reports whether the snapshot rates have been resolved.
func (s FXSnapshot) IsSet() bool {
	return s.USDToSYPOld != nil || s.USDToSYPNew != nil
}
