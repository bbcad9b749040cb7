package repositories

import (
	"context"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// PaymentReader defines read operations for customer payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindAllocationsByPaymentID retrieves the allocations of one payment.
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)

	// ListPaymentsByCustomer retrieves a paginated list of a customer's
	// payments using token-based pagination, newest first.
	ListPaymentsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// ListPaymentsByDateRange retrieves a customer's payments within a date
	// range, oldest first, for statement assembly.
	ListPaymentsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Payment, error)

	// FindLastPaymentNumber retrieves the highest payment number issued so far.
	FindLastPaymentNumber(ctx context.Context) (string, error)
}

// PaymentWriter defines write operations for customer payment data
type PaymentWriter interface {
	// SavePaymentWithAllocations persists a payment, its allocations, the
	// recomputed paid figures of every touched invoice, and the customer
	// balance delta, all within one transaction.
	SavePaymentWithAllocations(ctx context.Context, payment domain.Payment, allocations []domain.PaymentAllocation, invoiceUpdates map[string]domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
