package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Code             string           `json:"code" binding:"required,max=20"`
	Name             string           `json:"name" binding:"required"`
	NameEn           string           `json:"nameEn"`
	CustomerType     string           `json:"customerType" binding:"omitempty,oneof=individual company government"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
	PaymentTermsDays *int             `json:"paymentTermsDays" binding:"omitempty,min=0"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent"`
	OpeningBalance   *decimal.Decimal `json:"openingBalance"`
	Notes            string           `json:"notes"`
}

// UpdateCustomerRequest defines the updatable fields of a customer.
type UpdateCustomerRequest struct {
	Name             *string          `json:"name"`
	NameEn           *string          `json:"nameEn"`
	CustomerType     *string          `json:"customerType" binding:"omitempty,oneof=individual company government"`
	Phone            *string          `json:"phone"`
	Address          *string          `json:"address"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
	PaymentTermsDays *int             `json:"paymentTermsDays" binding:"omitempty,min=0"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent"`
	Notes            *string          `json:"notes"`
	IsActive         *bool            `json:"isActive"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID        string          `json:"customerID"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	NameEn            string          `json:"nameEn"`
	CustomerType      string          `json:"customerType"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	CreditLimit       decimal.Decimal `json:"creditLimit"`
	PaymentTermsDays  int             `json:"paymentTermsDays"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
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

// ListCustomersResponse wraps a page of customers with the next page token.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:        c.CustomerID,
		Code:              c.Code,
		Name:              c.Name,
		NameEn:            c.NameEn,
		CustomerType:      string(c.CustomerType),
		Phone:             c.Phone,
		Address:           c.Address,
		CreditLimit:       c.CreditLimit,
		PaymentTermsDays:  c.PaymentTermsDays,
		DiscountPercent:   c.DiscountPercent,
		OpeningBalance:    c.OpeningBalance,
		OpeningBalanceUSD: c.OpeningBalanceUSD,
		CurrentBalance:    c.CurrentBalance,
		CurrentBalanceUSD: c.CurrentBalanceUSD,
		Notes:             c.Notes,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		CreatedBy:         c.CreatedBy,
		LastUpdatedAt:     c.LastUpdatedAt,
		LastUpdatedBy:     c.LastUpdatedBy,
	}
}

// ToListCustomersResponse converts a page of domain customers to the list DTO
func ToListCustomersResponse(customers []domain.Customer, nextToken *string) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: res, NextToken: nextToken}
}
