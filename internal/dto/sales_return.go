package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// SalesReturnItemRequest returns a quantity of one invoice line.
type SalesReturnItemRequest struct {
	InvoiceItemID string          `json:"invoiceItemID" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reason        string          `json:"reason"`
}

// CreateSalesReturnRequest defines the data needed to book a sales return
// against a confirmed invoice. Pricing and snapshot come from the invoice.
type CreateSalesReturnRequest struct {
	InvoiceID  string                   `json:"invoiceID" binding:"required"`
	ReturnDate time.Time                `json:"returnDate" binding:"required"`
	Reason     string                   `json:"reason"`
	Notes      string                   `json:"notes"`
	Items      []SalesReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesReturnItemResponse defines the data returned for one return line.
type SalesReturnItemResponse struct {
	ReturnItemID    string          `json:"returnItemID"`
	InvoiceItemID   string          `json:"invoiceItemID"`
	ProductID       string          `json:"productID"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	Reason          string          `json:"reason"`
}

// SalesReturnResponse defines the data returned for a sales return.
type SalesReturnResponse struct {
	ReturnID            string                    `json:"returnID"`
	ReturnNumber        string                    `json:"returnNumber"`
	InvoiceID           string                    `json:"invoiceID"`
	ReturnDate          time.Time                 `json:"returnDate"`
	TransactionCurrency string                    `json:"transactionCurrency"`
	Snapshot            FXSnapshotResponse        `json:"snapshot"`
	TotalAmount         decimal.Decimal           `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal           `json:"totalAmountUSD"`
	Reason              string                    `json:"reason"`
	Notes               string                    `json:"notes"`
	Items               []SalesReturnItemResponse `json:"items,omitempty"`
	CreatedAt           time.Time                 `json:"createdAt"`
	CreatedBy           string                    `json:"createdBy"`
}

// ToSalesReturnItemResponse converts a domain.SalesReturnItem to its DTO
func ToSalesReturnItemResponse(it *domain.SalesReturnItem) SalesReturnItemResponse {
	return SalesReturnItemResponse{
		ReturnItemID:    it.ReturnItemID,
		InvoiceItemID:   it.InvoiceItemID,
		ProductID:       it.ProductID,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		DiscountPercent: it.DiscountPercent,
		TaxRate:         it.TaxRate,
		LineTotal:       it.LineTotal(),
		Reason:          it.Reason,
	}
}

// ToSalesReturnResponse converts a domain.SalesReturn to SalesReturnResponse DTO
func ToSalesReturnResponse(ret *domain.SalesReturn) SalesReturnResponse {
	items := make([]SalesReturnItemResponse, len(ret.Items))
	for i := range ret.Items {
		items[i] = ToSalesReturnItemResponse(&ret.Items[i])
	}
	return SalesReturnResponse{
		ReturnID:            ret.ReturnID,
		ReturnNumber:        ret.ReturnNumber,
		InvoiceID:           ret.InvoiceID,
		ReturnDate:          ret.ReturnDate,
		TransactionCurrency: string(ret.TransactionCurrency),
		Snapshot:            ToFXSnapshotResponse(ret.Snapshot),
		TotalAmount:         ret.TotalAmount,
		TotalAmountUSD:      ret.TotalAmountUSD,
		Reason:              ret.Reason,
		Notes:               ret.Notes,
		Items:               items,
		CreatedAt:           ret.CreatedAt,
		CreatedBy:           ret.CreatedBy,
	}
}
