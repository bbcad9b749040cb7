package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreatePurchaseOrderItemRequest defines one purchase line in a create request.
type CreatePurchaseOrderItemRequest struct {
	ProductID       string           `json:"productID"`
	ProductName     string           `json:"productName" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal  `json:"unitPrice" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	Notes           string           `json:"notes"`
}

// CreatePurchaseOrderRequest defines the data needed to create a draft
// purchase order. The currency defaults to USD and the FX snapshot is frozen
// at creation.
type CreatePurchaseOrderRequest struct {
	SupplierID          string                           `json:"supplierID" binding:"required"`
	TransactionCurrency *string                          `json:"transactionCurrency" binding:"omitempty,oneof=USD SYP_OLD SYP_NEW"`
	OrderDate           time.Time                        `json:"orderDate" binding:"required"`
	ExpectedDate        *time.Time                       `json:"expectedDate"`
	FxRateDate          *time.Time                       `json:"fxRateDate"`
	DiscountAmount      *decimal.Decimal                 `json:"discountAmount"`
	Reference           string                           `json:"reference"`
	Notes               string                           `json:"notes"`
	Items               []CreatePurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveOrderItemRequest books a received quantity for one order line.
type ReceiveOrderItemRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceiveOrderRequest books received quantities against an approved order.
type ReceiveOrderRequest struct {
	Items []ReceiveOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSupplierPaymentRequest defines the data needed to record money paid
// to a supplier, optionally against one order.
type CreateSupplierPaymentRequest struct {
	SupplierID          string          `json:"supplierID" binding:"required"`
	OrderID             *string         `json:"orderID"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	TransactionCurrency string          `json:"transactionCurrency" binding:"required,oneof=USD SYP_OLD SYP_NEW"`
	PaymentDate         time.Time       `json:"paymentDate" binding:"required"`
	FxRateDate          *time.Time      `json:"fxRateDate"`
	PaymentMethod       string          `json:"paymentMethod" binding:"required,oneof=cash card bank check"`
	Reference           string          `json:"reference"`
	Notes               string          `json:"notes"`
}

// PurchaseOrderItemResponse defines the data returned for one purchase line.
type PurchaseOrderItemResponse struct {
	ItemID            string          `json:"itemID"`
	ProductID         string          `json:"productID"`
	ProductName       string          `json:"productName"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReceivedQuantity  decimal.Decimal `json:"receivedQuantity"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	Total             decimal.Decimal `json:"total"`
	Notes             string          `json:"notes"`
}

// PurchaseOrderResponse defines the data returned for a purchase order.
type PurchaseOrderResponse struct {
	OrderID             string                      `json:"orderID"`
	OrderNumber         string                      `json:"orderNumber"`
	SupplierID          string                      `json:"supplierID"`
	OrderDate           time.Time                   `json:"orderDate"`
	ExpectedDate        *time.Time                  `json:"expectedDate"`
	Status              string                      `json:"status"`
	TransactionCurrency string                      `json:"transactionCurrency"`
	Snapshot            FXSnapshotResponse          `json:"snapshot"`
	Subtotal            decimal.Decimal             `json:"subtotal"`
	DiscountAmount      decimal.Decimal             `json:"discountAmount"`
	TaxAmount           decimal.Decimal             `json:"taxAmount"`
	TotalAmount         decimal.Decimal             `json:"totalAmount"`
	TotalAmountUSD      decimal.Decimal             `json:"totalAmountUSD"`
	PaidAmount          decimal.Decimal             `json:"paidAmount"`
	PaidAmountUSD       decimal.Decimal             `json:"paidAmountUSD"`
	Reference           string                      `json:"reference"`
	Notes               string                      `json:"notes"`
	Items               []PurchaseOrderItemResponse `json:"items,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	CreatedBy           string                      `json:"createdBy"`
}

// ListPurchaseOrdersResponse wraps a page of orders with the next page token.
type ListPurchaseOrdersResponse struct {
	Orders    []PurchaseOrderResponse `json:"orders"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// SupplierPaymentResponse defines the data returned for a supplier payment.
type SupplierPaymentResponse struct {
	PaymentID           string             `json:"paymentID"`
	PaymentNumber       string             `json:"paymentNumber"`
	SupplierID          string             `json:"supplierID"`
	OrderID             *string            `json:"orderID,omitempty"`
	PaymentDate         time.Time          `json:"paymentDate"`
	TransactionCurrency string             `json:"transactionCurrency"`
	Snapshot            FXSnapshotResponse `json:"snapshot"`
	Amount              decimal.Decimal    `json:"amount"`
	AmountUSD           decimal.Decimal    `json:"amountUSD"`
	PaymentMethod       string             `json:"paymentMethod"`
	Reference           string             `json:"reference"`
	Notes               string             `json:"notes"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
}

// ToPurchaseOrderItemResponse converts a domain.PurchaseOrderItem to its DTO
func ToPurchaseOrderItemResponse(it *domain.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ItemID:            it.ItemID,
		ProductID:         it.ProductID,
		ProductName:       it.ProductName,
		Quantity:          it.Quantity,
		ReceivedQuantity:  it.ReceivedQuantity,
		RemainingQuantity: it.RemainingQuantity(),
		UnitPrice:         it.UnitPrice,
		DiscountPercent:   it.DiscountPercent,
		Total:             it.Total(),
		Notes:             it.Notes,
	}
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder to PurchaseOrderResponse DTO
func ToPurchaseOrderResponse(po *domain.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i := range po.Items {
		items[i] = ToPurchaseOrderItemResponse(&po.Items[i])
	}
	return PurchaseOrderResponse{
		OrderID:             po.OrderID,
		OrderNumber:         po.OrderNumber,
		SupplierID:          po.SupplierID,
		OrderDate:           po.OrderDate,
		ExpectedDate:        po.ExpectedDate,
		Status:              string(po.Status),
		TransactionCurrency: string(po.TransactionCurrency),
		Snapshot:            ToFXSnapshotResponse(po.Snapshot),
		Subtotal:            po.Subtotal,
		DiscountAmount:      po.DiscountAmount,
		TaxAmount:           po.TaxAmount,
		TotalAmount:         po.TotalAmount,
		TotalAmountUSD:      po.TotalAmountUSD,
		PaidAmount:          po.PaidAmount,
		PaidAmountUSD:       po.PaidAmountUSD,
		Reference:           po.Reference,
		Notes:               po.Notes,
		Items:               items,
		CreatedAt:           po.CreatedAt,
		CreatedBy:           po.CreatedBy,
	}
}

// ToListPurchaseOrdersResponse converts a page of domain orders to the list DTO
func ToListPurchaseOrdersResponse(orders []domain.PurchaseOrder, nextToken *string) ListPurchaseOrdersResponse {
	res := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		res[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return ListPurchaseOrdersResponse{Orders: res, NextToken: nextToken}
}

// ToSupplierPaymentResponse converts a domain.SupplierPayment to its DTO
func ToSupplierPaymentResponse(p *domain.SupplierPayment) SupplierPaymentResponse {
	return SupplierPaymentResponse{
		PaymentID:           p.PaymentID,
		PaymentNumber:       p.PaymentNumber,
		SupplierID:          p.SupplierID,
		OrderID:             p.OrderID,
		PaymentDate:         p.PaymentDate,
		TransactionCurrency: string(p.TransactionCurrency),
		Snapshot:            ToFXSnapshotResponse(p.Snapshot),
		Amount:              p.Amount,
		AmountUSD:           p.AmountUSD,
		PaymentMethod:       string(p.PaymentMethod),
		Reference:           p.Reference,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
		CreatedBy:           p.CreatedBy,
	}
}
