package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,uppercase,min=3,max=10"`
	Name          string          `json:"name" binding:"required"`
	NameEn        string          `json:"nameEn"`
	Symbol        string          `json:"symbol" binding:"required"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate" binding:"required"`
	DecimalPlaces *int            `json:"decimalPlaces" binding:"omitempty,min=0,max=8"`
}

// UpdateCurrencyRequest defines the updatable fields of a currency.
type UpdateCurrencyRequest struct {
	Name          *string          `json:"name"`
	NameEn        *string          `json:"nameEn"`
	Symbol        *string          `json:"symbol"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`
	IsActive      *bool            `json:"isActive"`
	DecimalPlaces *int             `json:"decimalPlaces" binding:"omitempty,min=0,max=8"`
}

// ConvertAmountRequest defines the data for an ad-hoc currency conversion.
type ConvertAmountRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,uppercase"`
}

// ConvertAmountResponse carries the result of an ad-hoc conversion.
type ConvertAmountResponse struct {
	Amount           decimal.Decimal `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Converted        decimal.Decimal `json:"converted"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Name          string          `json:"name"`
	NameEn        string          `json:"nameEn"`
	Symbol        string          `json:"symbol"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	IsPrimary     bool            `json:"isPrimary"`
	IsActive      bool            `json:"isActive"`
	DecimalPlaces int             `json:"decimalPlaces"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Name:          curr.Name,
		NameEn:        curr.NameEn,
		Symbol:        curr.Symbol,
		ExchangeRate:  curr.ExchangeRate,
		IsPrimary:     curr.IsPrimary,
		IsActive:      curr.IsActive,
		DecimalPlaces: curr.DecimalPlaces,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
