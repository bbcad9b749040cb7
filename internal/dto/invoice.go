package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreateInvoiceItemRequest defines one invoice line in a create request.
type CreateInvoiceItemRequest struct {
	ProductID       string           `json:"productID"`
	ProductName     string           `json:"productName" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal  `json:"unitPrice" binding:"required"`
	CostPrice       *decimal.Decimal `json:"costPrice"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	TaxRate         *decimal.Decimal `json:"taxRate"`
	Notes           string           `json:"notes"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
// The FX snapshot is resolved from fxRateDate (defaulting to the invoice
// date) and frozen onto the invoice.
type CreateInvoiceRequest struct {
	CustomerID          string                     `json:"customerID" binding:"required"`
	InvoiceType         string                     `json:"invoiceType" binding:"required,oneof=cash credit"`
	TransactionCurrency string                     `json:"transactionCurrency" binding:"omitempty,oneof=USD SYP_OLD SYP_NEW"`
	InvoiceDate         time.Time                  `json:"invoiceDate" binding:"required"`
	DueDate             *time.Time                 `json:"dueDate"`
	FxRateDate          *time.Time                 `json:"fxRateDate"`
	DiscountPercent     *decimal.Decimal           `json:"discountPercent"`
	Notes               string                     `json:"notes"`
	InternalNotes       string                     `json:"internalNotes"`
	Items               []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces a draft invoice's lines and header fields.
// The frozen snapshot is kept; only the amounts are recomputed.
type UpdateInvoiceRequest struct {
	DueDate         *time.Time                 `json:"dueDate"`
	DiscountPercent *decimal.Decimal           `json:"discountPercent"`
	Notes           *string                    `json:"notes"`
	InternalNotes   *string                    `json:"internalNotes"`
	Items           []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreditOverrideRequest authorizes confirming a credit invoice past the
// customer's credit limit.
type CreditOverrideRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceItemResponse defines the data returned for one invoice line.
type InvoiceItemResponse struct {
	ItemID          string          `json:"itemID"`
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID           string                `json:"invoiceID"`
	InvoiceNumber       string                `json:"invoiceNumber"`
	InvoiceType         string                `json:"invoiceType"`
	CustomerID          string                `json:"customerID"`
	InvoiceDate         time.Time             `json:"invoiceDate"`
	DueDate             *time.Time            `json:"dueDate"`
	Status              string                `json:"status"`
	TransactionCurrency string                `json:"transactionCurrency"`
	Snapshot            FXSnapshotResponse    `json:"snapshot"`
	Subtotal            decimal.Decimal       `json:"subtotal"`
	DiscountPercent     decimal.Decimal       `json:"discountPercent"`
	DiscountAmount      decimal.Decimal       `json:"discountAmount"`
	TaxAmount           decimal.Decimal       `json:"taxAmount"`
	TotalAmount         decimal.Decimal       `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal       `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal       `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal       `json:"paidAmountUSD"`
	RemainingAmount     decimal.Decimal       `json:"remainingAmount"`
	RemainingAmountUSD  decimal.Decimal       `json:"remainingAmountUSD"`
	Notes               string                `json:"notes"`
	Items               []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	CreatedBy           string                `json:"createdBy"`
}

// ListInvoicesResponse wraps a page of invoices with the next page token.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to its response DTO,
// deriving the line amounts.
func ToInvoiceItemResponse(it *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:          it.ItemID,
		ProductID:       it.ProductID,
		ProductName:     it.ProductName,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		DiscountPercent: it.DiscountPercent,
		TaxRate:         it.TaxRate,
		Subtotal:        it.Subtotal(),
		DiscountAmount:  it.DiscountAmount(),
		TaxAmount:       it.TaxAmount(),
		Total:           it.Total(),
		Notes:           it.Notes,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i := range inv.Items {
		items[i] = ToInvoiceItemResponse(&inv.Items[i])
	}
	return InvoiceResponse{
		InvoiceID:           inv.InvoiceID,
		InvoiceNumber:       inv.InvoiceNumber,
		InvoiceType:         string(inv.InvoiceType),
		CustomerID:          inv.CustomerID,
		InvoiceDate:         inv.InvoiceDate,
		DueDate:             inv.DueDate,
		Status:              string(inv.Status),
		TransactionCurrency: string(inv.TransactionCurrency),
		Snapshot:            ToFXSnapshotResponse(inv.Snapshot),
		Subtotal:            inv.Subtotal,
		DiscountPercent:     inv.DiscountPercent,
		DiscountAmount:      inv.DiscountAmount,
		TaxAmount:           inv.TaxAmount,
		TotalAmount:         inv.TotalAmount,
		TotalAmountUSD:      inv.TotalAmountUSD,
		PaidAmount:          inv.PaidAmount,
		PaidAmountUSD:       inv.PaidAmountUSD,
		RemainingAmount:     inv.RemainingAmount(),
		RemainingAmountUSD:  inv.RemainingAmountUSD(),
		Notes:               inv.Notes,
		Items:               items,
		CreatedAt:           inv.CreatedAt,
		CreatedBy:           inv.CreatedBy,
	}
}

// ToListInvoicesResponse converts a page of domain invoices to the list DTO
func ToListInvoicesResponse(invoices []domain.Invoice, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
