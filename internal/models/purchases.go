package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the persisted purchase order row. Purchases default to
// USD and always carry a frozen FX snapshot.
type PurchaseOrder struct {
	OrderID             string           `json:"orderID"`
	OrderNumber         string           `json:"orderNumber"`
	SupplierID          string           `json:"supplierID"`
	OrderDate           time.Time        `json:"orderDate"`
	ExpectedDate        *time.Time       `json:"expectedDate"`
	Status              string           `json:"status"`
	TransactionCurrency string           `json:"transactionCurrency"`
	FxRateDate          *time.Time       `json:"fxRateDate"`
	UsdToSypOldSnapshot *decimal.Decimal `json:"usdToSypOldSnapshot"`
	UsdToSypNewSnapshot *decimal.Decimal `json:"usdToSypNewSnapshot"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	DiscountAmount      decimal.Decimal  `json:"discountAmount"`
	TaxAmount           decimal.Decimal  `json:"taxAmount"` // always zero
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal  `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal  `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal  `json:"paidAmountUSD"`
	Reference           string           `json:"reference"`
	Notes               string           `json:"notes"`
	AuditFields
}

type PurchaseOrderItem struct {
	ItemID           string          `json:"itemID"`
	OrderID          string          `json:"orderID"`
	ProductID        string          `json:"productID"`
	ProductName      string          `json:"productName"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"receivedQuantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	TaxRate          decimal.Decimal `json:"taxRate"` // forced to zero on save
	Notes            string          `json:"notes"`
	AuditFields
}

// SupplierPayment carries its own FX snapshot like customer payments.
type SupplierPayment struct {
	PaymentID           string           `json:"paymentID"`
	PaymentNumber       string           `json:"paymentNumber"`
	SupplierID          string           `json:"supplierID"`
	OrderID             *string          `json:"orderID"`
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
