package services

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// PurchaseReaderSvc defines read operations for purchase documents
type PurchaseReaderSvc interface {
	// GetOrderByID retrieves a purchase order with its lines.
	GetOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)

	// ListOrdersBySupplier retrieves a paginated list of a supplier's orders.
	ListOrdersBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)
}

// PurchaseWriterSvc defines write operations for purchase documents
type PurchaseWriterSvc interface {
	// CreatePurchaseOrder persists a draft order, freezing its FX snapshot.
	// Purchase lines carry no tax regardless of the requested rates.
	CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, error)

	// ApproveOrder moves a draft order to APPROVED.
	ApproveOrder(ctx context.Context, orderID string, updaterUserID string) (*domain.PurchaseOrder, error)

	// ReceiveOrder books received quantities and, on the transition into a
	// received state, the supplier balance effect through the order's frozen
	// snapshot.
	ReceiveOrder(ctx context.Context, orderID string, req dto.ReceiveOrderRequest, updaterUserID string) (*domain.PurchaseOrder, error)

	// CancelOrder cancels an order and reverses any booked balance effect.
	CancelOrder(ctx context.Context, orderID string, updaterUserID string) error

	// MakeSupplierPayment records money paid to a supplier, optionally against
	// one order.
	MakeSupplierPayment(ctx context.Context, req dto.CreateSupplierPaymentRequest, creatorUserID string) (*domain.SupplierPayment, error)
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
