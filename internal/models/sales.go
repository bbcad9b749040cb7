package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the persisted invoice row. The FX snapshot columns are written
// when the invoice is first saved and never touched by later recomputation.
type Invoice struct {
	InvoiceID           string           `json:"invoiceID"`
	InvoiceNumber       string           `json:"invoiceNumber"`
	InvoiceType         string           `json:"invoiceType"`
	CustomerID          string           `json:"customerID"`
	InvoiceDate         time.Time        `json:"invoiceDate"`
	DueDate             *time.Time       `json:"dueDate"`
	Status              string           `json:"status"`
	TransactionCurrency string           `json:"transactionCurrency"`
	FxRateDate          *time.Time       `json:"fxRateDate"`
	UsdToSypOldSnapshot *decimal.Decimal `json:"usdToSypOldSnapshot"`
	UsdToSypNewSnapshot *decimal.Decimal `json:"usdToSypNewSnapshot"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	DiscountPercent     decimal.Decimal  `json:"discountPercent"`
	DiscountAmount      decimal.Decimal  `json:"discountAmount"`
	TaxAmount           decimal.Decimal  `json:"taxAmount"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal  `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal  `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal  `json:"paidAmountUSD"`
	Notes               string           `json:"notes"`
	InternalNotes       string           `json:"internalNotes"`
	AuditFields
}

type InvoiceItem struct {
	ItemID          string          `json:"itemID"`
	InvoiceID       string          `json:"invoiceID"`
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Notes           string          `json:"notes"`
	AuditFields
}

// Payment carries its own FX snapshot, independent of the invoices it settles.
type Payment struct {
	PaymentID           string           `json:"paymentID"`
	PaymentNumber       string           `json:"paymentNumber"`
	CustomerID          string           `json:"customerID"`
	InvoiceID           *string          `json:"invoiceID"` // legacy single-invoice mode
	PaymentDate         time.Time        `json:"paymentDate"`
	TransactionCurrency string           `json:"transactionCurrency"`
	FxRateDate          *time.Time       `json:"fxRateDate"`
	UsdToSypOldSnapshot *decimal.Decimal `json:"usdToSypOldSnapshot"`
	UsdToSypNewSnapshot *decimal.Decimal `json:"usdToSypNewSnapshot"`
	Amount              decimal.Decimal  `json:"amount"`
	AmountUSD           decimal.Decimal  `json:"amountUSD"`
	PaymentMethod       string           `json:"paymentMethod"`
	Reference           string           `json:"reference"`
	Notes               string           `json:"notes"`
	AuditFields
}

type PaymentAllocation struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	InvoiceID    string          `json:"invoiceID"`
	Amount       decimal.Decimal `json:"amount"`
	AmountUSD    decimal.Decimal `json:"amountUSD"`
	AuditFields
}

// SalesReturn copies the snapshot of the invoice it reverses.
type SalesReturn struct {
	ReturnID            string           `json:"returnID"`
	ReturnNumber        string           `json:"returnNumber"`
	InvoiceID           string           `json:"invoiceID"`
	ReturnDate          time.Time        `json:"returnDate"`
	TransactionCurrency string           `json:"transactionCurrency"`
	FxRateDate          *time.Time       `json:"fxRateDate"`
	UsdToSypOldSnapshot *decimal.Decimal `json:"usdToSypOldSnapshot"`
	UsdToSypNewSnapshot *decimal.Decimal `json:"usdToSypNewSnapshot"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal  `json:"totalAmountUSD"`
	Reason              string           `json:"reason"`
	Notes               string           `json:"notes"`
	AuditFields
}

type SalesReturnItem struct {
	ReturnItemID    string          `json:"returnItemID"`
	ReturnID        string          `json:"returnID"`
	InvoiceItemID   string          `json:"invoiceItemID"`
	ProductID       string          `json:"productID"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Reason          string          `json:"reason"`
	AuditFields
}

type CreditLimitOverride struct {
	OverrideID     string          `json:"overrideID"`
	CustomerID     string          `json:"customerID"`
	InvoiceID      string          `json:"invoiceID"`
	OverrideAmount decimal.Decimal `json:"overrideAmount"` // USD past the limit
	Reason         string          `json:"reason"`
	AuditFields
}
