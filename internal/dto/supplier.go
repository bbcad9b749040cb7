package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateSupplierRequest defines the data needed to create a new supplier.
type CreateSupplierRequest struct {
	Code             string           `json:"code" binding:"required,max=20"`
	Name             string           `json:"name" binding:"required"`
	NameEn           string           `json:"nameEn"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	PaymentTermsDays *int             `json:"paymentTermsDays" binding:"omitempty,min=0"`
	OpeningBalance   *decimal.Decimal `json:"openingBalance"`
	Notes            string           `json:"notes"`
}

// UpdateSupplierRequest defines the updatable fields of a supplier.
type UpdateSupplierRequest struct {
	Name             *string `json:"name"`
	NameEn           *string `json:"nameEn"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	PaymentTermsDays *int    `json:"paymentTermsDays" binding:"omitempty,min=0"`
	Notes            *string `json:"notes"`
	IsActive         *bool   `json:"isActive"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID        string          `json:"supplierID"`
	Code              string          `json:"code"`
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
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// ListSuppliersResponse wraps a page of suppliers with the next page token.
type ListSuppliersResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToSupplierResponse converts a domain.Supplier to SupplierResponse DTO
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:        s.SupplierID,
		Code:              s.Code,
		Name:              s.Name,
		NameEn:            s.NameEn,
		Phone:             s.Phone,
		Address:           s.Address,
		PaymentTermsDays:  s.PaymentTermsDays,
		OpeningBalance:    s.OpeningBalance,
		OpeningBalanceUSD: s.OpeningBalanceUSD,
		CurrentBalance:    s.CurrentBalance,
		CurrentBalanceUSD: s.CurrentBalanceUSD,
		Notes:             s.Notes,
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		CreatedBy:         s.CreatedBy,
		LastUpdatedAt:     s.LastUpdatedAt,
		LastUpdatedBy:     s.LastUpdatedBy,
	}
}

// ToListSuppliersResponse converts a page of domain suppliers to the list DTO
func ToListSuppliersResponse(suppliers []domain.Supplier, nextToken *string) ListSuppliersResponse {
	res := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		res[i] = ToSupplierResponse(&s)
	}
	return ListSuppliersResponse{Suppliers: res, NextToken: nextToken}
}
