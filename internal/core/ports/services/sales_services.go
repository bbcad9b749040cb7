package services

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// SalesReaderSvc defines read operations for sales documents
type SalesReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its lines.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByCustomer retrieves a paginated list of a customer's invoices.
	ListInvoicesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// GetPaymentByID retrieves a payment with its allocations.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentAllocation, error)

	// ListPaymentsByCustomer retrieves a paginated list of a customer's payments.
	ListPaymentsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// GetSalesReturnByID retrieves a sales return with its lines.
	GetSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error)
}

// SalesWriterSvc defines write operations for sales documents
type SalesWriterSvc interface {
	// CreateInvoice persists a draft invoice, freezing its FX snapshot and
	// deriving all totals from the lines.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice replaces a draft invoice's lines and recomputes its totals
	// through the frozen snapshot.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, updaterUserID string) (*domain.Invoice, error)

	// ConfirmInvoice moves a draft invoice into the receivable ledger,
	// booking its customer balance effect. Credit invoices are checked
	// against the customer's credit limit first.
	ConfirmInvoice(ctx context.Context, invoiceID string, override *dto.CreditOverrideRequest, updaterUserID string) (*domain.Invoice, error)

	// CancelInvoice cancels an invoice and reverses any booked balance effect.
	CancelInvoice(ctx context.Context, invoiceID string, updaterUserID string) error

	// ReceivePayment records a customer payment and allocates it across
	// invoices, FIFO by default or explicitly when allocations are supplied.
	ReceivePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// CreateSalesReturn books a partial or full return against a confirmed
	// invoice at the invoice's original pricing and snapshot.
	CreateSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, creatorUserID string) (*domain.SalesReturn, error)

	// ReconcileInvoiceStatuses resweeps a customer's invoices, snapping
	// fully-paid ones to PAID through each invoice's own frozen snapshot.
	// The sweep is idempotent.
	ReconcileInvoiceStatuses(ctx context.Context, customerID string, updaterUserID string) (int, error)
}

// SalesSvcFacade combines all sales-related service interfaces
type SalesSvcFacade interface {
	SalesReaderSvc
	SalesWriterSvc
}
