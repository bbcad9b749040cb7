package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// PurchaseOrderReader defines read operations for purchase order data
type PurchaseOrderReader interface {
	// FindOrderByID retrieves a purchase order by its unique identifier.
	FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)

	// FindOrderItems retrieves the lines of one purchase order.
	FindOrderItems(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error)

	// ListOrdersBySupplier retrieves a paginated list of a supplier's orders
	// using token-based pagination, newest first.
	ListOrdersBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)

	// ListOrdersByDateRange retrieves a supplier's orders within a date range,
	// oldest first, for statement assembly.
	ListOrdersByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.PurchaseOrder, error)

	// FindLastOrderNumber retrieves the highest order number issued so far.
	FindLastOrderNumber(ctx context.Context) (string, error)
}

// PurchaseOrderWriter defines write operations for purchase order data
type PurchaseOrderWriter interface {
	// SaveOrderWithItems persists a purchase order and its lines within one transaction.
	SaveOrderWithItems(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error

	// UpdateOrderStatus flips the order status.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.PurchaseOrderStatus, updatedBy string) error

	// ReceiveOrderItems books received quantities per line, flips the order
	// status, and applies the supplier balance delta, all within one transaction.
	ReceiveOrderItems(ctx context.Context, orderID string, received map[string]decimal.Decimal, status domain.PurchaseOrderStatus, supplierID string, delta domain.BalanceDelta, updatedBy string) error

	// CancelOrder marks the order cancelled and reverses any booked supplier
	// balance effect within one transaction.
	CancelOrder(ctx context.Context, orderID string, supplierID string, delta domain.BalanceDelta, updatedBy string) error

	// UpdateOrderPayment writes recomputed paid figures for one order.
	UpdateOrderPayment(ctx context.Context, orderID string, paidAmount, paidAmountUSD decimal.Decimal, updatedBy string) error
}

// SupplierPaymentReader defines read operations for supplier payment data
type SupplierPaymentReader interface {
	// FindSupplierPaymentByID retrieves a supplier payment by its identifier.
	FindSupplierPaymentByID(ctx context.Context, paymentID string) (*domain.SupplierPayment, error)

	// ListSupplierPaymentsByDateRange retrieves a supplier's payments within a
	// date range, oldest first, for statement assembly.
	ListSupplierPaymentsByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.SupplierPayment, error)

	// FindLastSupplierPaymentNumber retrieves the highest supplier payment
	// number issued so far.
	FindLastSupplierPaymentNumber(ctx context.Context) (string, error)
}

// SupplierPaymentWriter defines write operations for supplier payment data
type SupplierPaymentWriter interface {
	// SaveSupplierPayment persists a supplier payment, optionally updating the
	// linked order's paid figures, and applies the supplier balance delta, all
	// within one transaction.
	SaveSupplierPayment(ctx context.Context, payment domain.SupplierPayment, orderPaid *decimal.Decimal, orderPaidUSD *decimal.Decimal, delta domain.BalanceDelta) error
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces
type PurchaseRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
	SupplierPaymentReader
	SupplierPaymentWriter
}

// PurchaseRepositoryWithTx extends PurchaseRepositoryFacade with transaction capabilities
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
