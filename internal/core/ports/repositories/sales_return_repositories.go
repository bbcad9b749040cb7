package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// SalesReturnReader defines read operations for sales return data
type SalesReturnReader interface {
	// FindReturnByID retrieves a sales return by its unique identifier.
	FindReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error)

	// FindReturnItems retrieves the lines of one sales return.
	FindReturnItems(ctx context.Context, returnID string) ([]domain.SalesReturnItem, error)

	// ListReturnsByInvoice retrieves every return booked against one invoice.
	ListReturnsByInvoice(ctx context.Context, invoiceID string) ([]domain.SalesReturn, error)

	// ListReturnsByDateRange retrieves a customer's returns within a date
	// range, oldest first, for statement assembly.
	ListReturnsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.SalesReturn, error)

	// SumReturnedQuantity reports the quantity already returned per invoice
	// item for one invoice, keyed by invoice item ID.
	SumReturnedQuantity(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error)

	// FindLastReturnNumber retrieves the highest return number issued so far.
	FindLastReturnNumber(ctx context.Context) (string, error)
}

// SalesReturnWriter defines write operations for sales return data
type SalesReturnWriter interface {
	// SaveReturnWithItems persists a return and its lines, writes the invoice's
	// recomputed paid figures and status, and applies the customer balance
	// delta, all within one transaction.
	SaveReturnWithItems(ctx context.Context, ret domain.SalesReturn, items []domain.SalesReturnItem, customerID string, invoiceUpdate domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error
}

// SalesReturnRepositoryFacade combines all sales-return repository interfaces
type SalesReturnRepositoryFacade interface {
	SalesReturnReader
	SalesReturnWriter
}

// SalesReturnRepositoryWithTx extends SalesReturnRepositoryFacade with transaction capabilities
type SalesReturnRepositoryWithTx interface {
	SalesReturnRepositoryFacade
	TransactionManager
}
