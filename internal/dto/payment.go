package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// PaymentAllocationRequest pins part of a payment to one invoice explicitly.
type PaymentAllocationRequest struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// CreatePaymentRequest defines the data needed to record a customer payment.
// When Allocations is empty the amount is spread FIFO across the customer's
// outstanding invoices. InvoiceID keeps the legacy single-invoice mode working.
type CreatePaymentRequest struct {
	CustomerID          string                     `json:"customerID" binding:"required"`
	InvoiceID           *string                    `json:"invoiceID"`
	Amount              decimal.Decimal            `json:"amount" binding:"required"`
	TransactionCurrency string                     `json:"transactionCurrency" binding:"omitempty,oneof=USD SYP_OLD SYP_NEW"`
	PaymentDate         time.Time                  `json:"paymentDate" binding:"required"`
	FxRateDate          *time.Time                 `json:"fxRateDate"`
	PaymentMethod       string                     `json:"paymentMethod" binding:"required,oneof=cash card bank check"`
	Reference           string                     `json:"reference"`
	Notes               string                     `json:"notes"`
	Allocations         []PaymentAllocationRequest `json:"allocations" binding:"omitempty,dive"`
}

// PaymentAllocationResponse defines the data returned for one allocation.
type PaymentAllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	InvoiceID    string          `json:"invoiceID"`
	Amount       decimal.Decimal `json:"amount"`
	AmountUSD    decimal.Decimal `json:"amountUSD"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID           string                      `json:"paymentID"`
	PaymentNumber       string                      `json:"paymentNumber"`
	CustomerID          string                      `json:"customerID"`
	InvoiceID           *string                     `json:"invoiceID,omitempty"`
	PaymentDate         time.Time                   `json:"paymentDate"`
	TransactionCurrency string                      `json:"transactionCurrency"`
	Snapshot            FXSnapshotResponse          `json:"snapshot"`
	Amount              decimal.Decimal             `json:"amount"`
	AmountUSD           decimal.Decimal             `json:"amountUSD"`
	PaymentMethod       string                      `json:"paymentMethod"`
	Reference           string                      `json:"reference"`
	Notes               string                      `json:"notes"`
	Allocations         []PaymentAllocationResponse `json:"allocations,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	CreatedBy           string                      `json:"createdBy"`
}

// ListPaymentsResponse wraps a page of payments with the next page token.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentAllocationResponse converts a domain.PaymentAllocation to its DTO
func ToPaymentAllocationResponse(a *domain.PaymentAllocation) PaymentAllocationResponse {
	return PaymentAllocationResponse{
		AllocationID: a.AllocationID,
		InvoiceID:    a.InvoiceID,
		Amount:       a.Amount,
		AmountUSD:    a.AmountUSD,
	}
}

// ToPaymentResponse converts a domain.Payment and its allocations to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment, allocations []domain.PaymentAllocation) PaymentResponse {
	allocs := make([]PaymentAllocationResponse, len(allocations))
	for i := range allocations {
		allocs[i] = ToPaymentAllocationResponse(&allocations[i])
	}
	return PaymentResponse{
		PaymentID:           p.PaymentID,
		PaymentNumber:       p.PaymentNumber,
		CustomerID:          p.CustomerID,
		InvoiceID:           p.InvoiceID,
		PaymentDate:         p.PaymentDate,
		TransactionCurrency: string(p.TransactionCurrency),
		Snapshot:            ToFXSnapshotResponse(p.Snapshot),
		Amount:              p.Amount,
		AmountUSD:           p.AmountUSD,
		PaymentMethod:       string(p.PaymentMethod),
		Reference:           p.Reference,
		Notes:               p.Notes,
		Allocations:         allocs,
		CreatedAt:           p.CreatedAt,
		CreatedBy:           p.CreatedBy,
	}
}

// ToListPaymentsResponse converts a page of domain payments to the list DTO
func ToListPaymentsResponse(payments []domain.Payment, nextToken *string) ListPaymentsResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i], nil)
	}
	return ListPaymentsResponse{Payments: res, NextToken: nextToken}
}
