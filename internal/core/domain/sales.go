package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes cash sales from credit sales.
type InvoiceType string

const (
	InvoiceCash   InvoiceType = "cash"
	InvoiceCredit InvoiceType = "credit"
)

// InvoiceStatus is the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceConfirmed InvoiceStatus = "CONFIRMED"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// PaymentMethod identifies how money changed hands.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "cash"
	MethodCard  PaymentMethod = "card"
	MethodBank  PaymentMethod = "bank"
	MethodCheck PaymentMethod = "check"
)

// Invoice is a sales invoice. The FX snapshot is resolved when the invoice is
// first saved and every later recomputation of TotalAmountUSD/PaidAmountUSD
// goes through that same frozen pair.
type Invoice struct {
	InvoiceID           string              `json:"invoiceID"` // Primary Key (UUID)
	InvoiceNumber       string              `json:"invoiceNumber"`
	InvoiceType         InvoiceType         `json:"invoiceType"`
	CustomerID          string              `json:"customerID"`
	InvoiceDate         time.Time           `json:"invoiceDate"`
	DueDate             *time.Time          `json:"dueDate"`
	Status              InvoiceStatus       `json:"status"`
	TransactionCurrency TransactionCurrency `json:"transactionCurrency"`
	Snapshot            FXSnapshot          `json:"snapshot"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	DiscountPercent     decimal.Decimal     `json:"discountPercent"`
	DiscountAmount      decimal.Decimal     `json:"discountAmount"`
	TaxAmount           decimal.Decimal     `json:"taxAmount"`
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal     `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal     `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal     `json:"paidAmountUSD"`
	Notes               string              `json:"notes"`
	InternalNotes       string              `json:"internalNotes"`
	Items               []InvoiceItem       `json:"items,omitempty"`
	AuditFields
}

// RemainingAmount is the unpaid part in the transaction currency.
func (i *Invoice) RemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// RemainingAmountUSD is the unpaid part in the settlement currency.
func (i *Invoice) RemainingAmountUSD() decimal.Decimal {
	return i.TotalAmountUSD.Sub(i.PaidAmountUSD)
}

// InvoiceItem is one invoice line. All monetary figures are derived from the
// stored quantity/price/percent fields in a fixed order so nothing can drift:
// subtotal, then discount, then tax on the discounted base.
type InvoiceItem struct {
	ItemID          string          `json:"itemID"` // Primary Key (UUID)
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

// Subtotal is quantity x unit price.
func (it *InvoiceItem) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// DiscountAmount is the line discount taken off the subtotal.
func (it *InvoiceItem) DiscountAmount() decimal.Decimal {
	return it.Subtotal().Mul(it.DiscountPercent).Div(decimal.NewFromInt(100))
}

// TaxableAmount is the subtotal net of the line discount.
func (it *InvoiceItem) TaxableAmount() decimal.Decimal {
	return it.Subtotal().Sub(it.DiscountAmount())
}

// TaxAmount applies the line tax rate to the discounted base.
func (it *InvoiceItem) TaxAmount() decimal.Decimal {
	return it.TaxableAmount().Mul(it.TaxRate).Div(decimal.NewFromInt(100))
}

// Total is the taxable amount plus tax.
func (it *InvoiceItem) Total() decimal.Decimal {
	return it.TaxableAmount().Add(it.TaxAmount())
}

// Profit is (unit price - cost price) x quantity.
func (it *InvoiceItem) Profit() decimal.Decimal {
	return it.UnitPrice.Sub(it.CostPrice).Mul(it.Quantity)
}

// Payment is money received from a customer. It carries its own FX snapshot so
// its balance effect is convertible at the rate of the day it was taken.
type Payment struct {
	PaymentID           string              `json:"paymentID"` // Primary Key (UUID)
	PaymentNumber       string              `json:"paymentNumber"`
	CustomerID          string              `json:"customerID"`
	InvoiceID           *string             `json:"invoiceID"` // Legacy single-invoice mode
	PaymentDate         time.Time           `json:"paymentDate"`
	TransactionCurrency TransactionCurrency `json:"transactionCurrency"`
	Snapshot            FXSnapshot          `json:"snapshot"`
	Amount              decimal.Decimal     `json:"amount"`
	AmountUSD           decimal.Decimal     `json:"amountUSD"`
	PaymentMethod       PaymentMethod       `json:"paymentMethod"`
	Reference           string              `json:"reference"`
	Notes               string              `json:"notes"`
	AuditFields
}

// PaymentAllocation applies part of a payment to one invoice. Amount is in the
// invoice's transaction currency, AmountUSD in the settlement currency; both are
// computed through the invoice's frozen snapshot.
type PaymentAllocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	PaymentID    string          `json:"paymentID"`
	InvoiceID    string          `json:"invoiceID"`
	Amount       decimal.Decimal `json:"amount"`
	AmountUSD    decimal.Decimal `json:"amountUSD"`
	AuditFields
}

// InvoicePaymentUpdate carries the recomputed paid figures and status for one
// invoice touched by a payment, allocation, or reversal.
type InvoicePaymentUpdate struct {
	PaidAmount    decimal.Decimal
	PaidAmountUSD decimal.Decimal
	Status        InvoiceStatus
}

// SalesReturn reverses part of a confirmed invoice. Its snapshot is copied from
// the original invoice so the settlement mirror of the returned value matches
// the rate the invoice was priced at.
type SalesReturn struct {
	ReturnID            string              `json:"returnID"` // Primary Key (UUID)
	ReturnNumber        string              `json:"returnNumber"`
	InvoiceID           string              `json:"invoiceID"`
	ReturnDate          time.Time           `json:"returnDate"`
	TransactionCurrency TransactionCurrency `json:"transactionCurrency"`
	Snapshot            FXSnapshot          `json:"snapshot"`
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal     `json:"totalAmountUSD"`
	Reason              string              `json:"reason"`
	Notes               string              `json:"notes"`
	Items               []SalesReturnItem   `json:"items,omitempty"`
	AuditFields
}

// SalesReturnItem returns a quantity of one invoice line at the original
// pricing. Discount and tax rates are copied from the invoice item so the
// returned value is proportional to what was charged.
type SalesReturnItem struct {
	ReturnItemID    string          `json:"returnItemID"` // Primary Key (UUID)
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

// LineTotal values the returned quantity with the original discount and tax.
func (it *SalesReturnItem) LineTotal() decimal.Decimal {
	subtotal := it.Quantity.Mul(it.UnitPrice)
	discount := subtotal.Mul(it.DiscountPercent).Div(decimal.NewFromInt(100))
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(it.TaxRate).Div(decimal.NewFromInt(100))
	return taxable.Add(tax)
}

// CreditLimitOverride records an authorized breach of a customer credit limit.
type CreditLimitOverride struct {
	OverrideID     string          `json:"overrideID"` // Primary Key (UUID)
	CustomerID     string          `json:"customerID"`
	InvoiceID      string          `json:"invoiceID"`
	OverrideAmount decimal.Decimal `json:"overrideAmount"` // USD past the limit
	Reason         string          `json:"reason"`
	AuditFields
}
