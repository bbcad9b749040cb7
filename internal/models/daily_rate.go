package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyExchangeRate is the persisted daily USD/SYP rate row, one per date.
type DailyExchangeRate struct {
	RateID      string          `json:"rateID"`
	RateDate    time.Time       `json:"rateDate"`
	USDToSYPOld decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew decimal.Decimal `json:"usdToSypNew"`
	Notes       string          `json:"notes"`
	AuditFields
}
