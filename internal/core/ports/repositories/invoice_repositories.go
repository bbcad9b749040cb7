package repositories

import (
	"context"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceItems retrieves the lines of one invoice.
	FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)

	// ListInvoicesByCustomer retrieves a paginated list of a customer's
	// invoices using token-based pagination, newest first.
	ListInvoicesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// ListOutstandingInvoices retrieves a customer's confirmed or partially
	// paid invoices ordered oldest first, for payment allocation.
	ListOutstandingInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error)

	// ListInvoicesByDateRange retrieves a customer's invoices within a date
	// range, oldest first, for statement assembly.
	ListInvoicesByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Invoice, error)

	// FindLastInvoiceNumber retrieves the highest invoice number issued so far.
	FindLastInvoiceNumber(ctx context.Context) (string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoiceWithItems persists an invoice and its lines within one transaction.
	SaveInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// UpdateInvoiceWithItems replaces a draft invoice's fields and lines within
	// one transaction.
	UpdateInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// ConfirmInvoice flips the invoice status and applies the customer balance
	// delta within one transaction.
	ConfirmInvoice(ctx context.Context, invoiceID string, status domain.InvoiceStatus, customerID string, delta domain.BalanceDelta, updatedBy string) error

	// CancelInvoice marks the invoice cancelled and reverses its customer
	// balance effect within one transaction.
	CancelInvoice(ctx context.Context, invoiceID string, customerID string, delta domain.BalanceDelta, updatedBy string) error

	// UpdateInvoicePayment writes recomputed paid figures and status for one invoice.
	UpdateInvoicePayment(ctx context.Context, invoiceID string, update domain.InvoicePaymentUpdate, updatedBy string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
