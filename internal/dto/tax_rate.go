package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateTaxRateRequest defines the data needed to create a new tax rate.
type CreateTaxRateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Code        string          `json:"code" binding:"required,uppercase,max=20"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	IsDefault   bool            `json:"isDefault"`
	Description string          `json:"description"`
}

// UpdateTaxRateRequest defines the updatable fields of a tax rate.
type UpdateTaxRateRequest struct {
	Name        *string          `json:"name"`
	Rate        *decimal.Decimal `json:"rate"`
	IsActive    *bool            `json:"isActive"`
	Description *string          `json:"description"`
}

// TaxRateResponse defines the data returned for a tax rate.
type TaxRateResponse struct {
	TaxRateID     string          `json:"taxRateID"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Rate          decimal.Decimal `json:"rate"`
	IsActive      bool            `json:"isActive"`
	IsDefault     bool            `json:"isDefault"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToTaxRateResponse converts a domain.TaxRate to TaxRateResponse DTO
func ToTaxRateResponse(tr *domain.TaxRate) TaxRateResponse {
	return TaxRateResponse{
		TaxRateID:     tr.TaxRateID,
		Name:          tr.Name,
		Code:          tr.Code,
		Rate:          tr.Rate,
		IsActive:      tr.IsActive,
		IsDefault:     tr.IsDefault,
		Description:   tr.Description,
		CreatedAt:     tr.CreatedAt,
		CreatedBy:     tr.CreatedBy,
		LastUpdatedAt: tr.LastUpdatedAt,
		LastUpdatedBy: tr.LastUpdatedBy,
	}
}

// ToListTaxRateResponse converts a slice of domain.TaxRate to TaxRateResponse DTOs
func ToListTaxRateResponse(rates []domain.TaxRate) []TaxRateResponse {
	res := make([]TaxRateResponse, len(rates))
	for i, tr := range rates {
		res[i] = ToTaxRateResponse(&tr)
	}
	return res
}
