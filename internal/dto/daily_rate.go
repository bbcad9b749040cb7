package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateDailyRateRequest defines the data for recording one date's USD/SYP
// rate pair. Either side may be omitted; the missing one is derived through
// the redenomination ratio.
type CreateDailyRateRequest struct {
	RateDate    time.Time        `json:"rateDate" binding:"required"`
	USDToSYPOld *decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew *decimal.Decimal `json:"usdToSypNew"`
	Notes       string           `json:"notes"`
}

// UpdateDailyRateRequest defines the correctable fields of a ledger row.
type UpdateDailyRateRequest struct {
	USDToSYPOld *decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew *decimal.Decimal `json:"usdToSypNew"`
	Notes       *string          `json:"notes"`
}

// DailyRateResponse defines the data returned for a daily rate row.
type DailyRateResponse struct {
	RateID        string          `json:"rateID"`
	RateDate      time.Time       `json:"rateDate"`
	USDToSYPOld   decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew   decimal.Decimal `json:"usdToSypNew"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToDailyRateResponse converts a domain.DailyExchangeRate to DailyRateResponse DTO
func ToDailyRateResponse(r *domain.DailyExchangeRate) DailyRateResponse {
	return DailyRateResponse{
		RateID:        r.RateID,
		RateDate:      r.RateDate,
		USDToSYPOld:   r.USDToSYPOld,
		USDToSYPNew:   r.USDToSYPNew,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		LastUpdatedAt: r.LastUpdatedAt,
		LastUpdatedBy: r.LastUpdatedBy,
	}
}

// ToListDailyRateResponse converts a slice of domain rates to DailyRateResponse DTOs
func ToListDailyRateResponse(rates []domain.DailyExchangeRate) []DailyRateResponse {
	res := make([]DailyRateResponse, len(rates))
	for i, r := range rates {
		res[i] = ToDailyRateResponse(&r)
	}
	return res
}

// FXSnapshotResponse exposes a document's frozen rate pair.
type FXSnapshotResponse struct {
	RateDate    *time.Time       `json:"rateDate"`
	USDToSYPOld *decimal.Decimal `json:"usdToSypOld"`
	USDToSYPNew *decimal.Decimal `json:"usdToSypNew"`
}

// ToFXSnapshotResponse converts a domain.FXSnapshot to its response DTO
func ToFXSnapshotResponse(s domain.FXSnapshot) FXSnapshotResponse {
	return FXSnapshotResponse{
		RateDate:    s.RateDate,
		USDToSYPOld: s.USDToSYPOld,
		USDToSYPNew: s.USDToSYPNew,
	}
}
