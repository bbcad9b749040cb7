package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseApproved  PurchaseOrderStatus = "APPROVED"
	PurchasePartial   PurchaseOrderStatus = "PARTIAL"
	PurchaseReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder is an order to a supplier. Purchases default to USD and the FX
// snapshot is mandatory at creation: receiving goods later books the supplier
// balance through it, not through the rate of the receiving day.
type PurchaseOrder struct {
	OrderID             string              `json:"orderID"` // Primary Key (UUID)
	OrderNumber         string              `json:"orderNumber"`
	SupplierID          string              `json:"supplierID"`
	OrderDate           time.Time           `json:"orderDate"`
	ExpectedDate        *time.Time          `json:"expectedDate"`
	Status              PurchaseOrderStatus `json:"status"`
	TransactionCurrency TransactionCurrency `json:"transactionCurrency"`
	Snapshot            FXSnapshot          `json:"snapshot"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	DiscountAmount      decimal.Decimal     `json:"discountAmount"`
	TaxAmount           decimal.Decimal     `json:"taxAmount"` // Always zero, kept for the ledger shape
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal     `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal     `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal     `json:"paidAmountUSD"`
	Reference           string              `json:"reference"`
	Notes               string              `json:"notes"`
	Items               []PurchaseOrderItem `json:"items,omitempty"`
	AuditFields
}

// RemainingAmountUSD is the unpaid part in the settlement currency.
func (po *PurchaseOrder) RemainingAmountUSD() decimal.Decimal {
	return po.TotalAmountUSD.Sub(po.PaidAmountUSD)
}

// PurchaseOrderItem is one purchase line. Purchase tax is disabled as a
// business rule: the rate is stored but always forced to zero, so a line's
// total is its discounted subtotal.
type PurchaseOrderItem struct {
	ItemID           string          `json:"itemID"` // Primary Key (UUID)
	OrderID          string          `json:"orderID"`
	ProductID        string          `json:"productID"`
	ProductName      string          `json:"productName"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"receivedQuantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	TaxRate          decimal.Decimal `json:"taxRate"` // Forced to zero on save
	Notes            string          `json:"notes"`
	AuditFields
}

// Subtotal is quantity x unit price.
func (it *PurchaseOrderItem) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// DiscountAmount is the line discount taken off the subtotal.
func (it *PurchaseOrderItem) DiscountAmount() decimal.Decimal {
	return it.Subtotal().Mul(it.DiscountPercent).Div(decimal.NewFromInt(100))
}

// Total is the discounted subtotal; purchase lines carry no tax.
func (it *PurchaseOrderItem) Total() decimal.Decimal {
	return it.Subtotal().Sub(it.DiscountAmount())
}

// RemainingQuantity is the ordered quantity not yet received.
func (it *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	return it.Quantity.Sub(it.ReceivedQuantity)
}

// SupplierPayment is money paid to a supplier, with its own FX snapshot.
type SupplierPayment struct {
	PaymentID           string              `json:"paymentID"` // Primary Key (UUID)
	PaymentNumber       string              `json:"paymentNumber"`
	SupplierID          string              `json:"supplierID"`
	OrderID             *string             `json:"orderID"` // Optional link to one purchase order
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
