package services

import (
	"context"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a customer by its identifier.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of non-deleted customers.
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)

	// GetCustomerStatement assembles a customer account statement over an
	// optional date range, recomputing the opening balance from every
	// transaction before the range start.
	GetCustomerStatement(ctx context.Context, customerID string, from, to *time.Time) (*domain.Statement, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer updates a customer's mutable fields.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error)

	// DeleteCustomer soft-deletes a customer, freeing its code for reuse.
	DeleteCustomer(ctx context.Context, customerID string, deleterUserID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}

// SupplierReaderSvc defines read operations for supplier data
type SupplierReaderSvc interface {
	// GetSupplierByID retrieves a supplier by its identifier.
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves a paginated list of non-deleted suppliers.
	ListSuppliers(ctx context.Context, limit int, nextToken *string) ([]domain.Supplier, *string, error)

	// GetSupplierStatement assembles a supplier account statement over an
	// optional date range.
	GetSupplierStatement(ctx context.Context, supplierID string, from, to *time.Time) (*domain.Statement, error)
}

// SupplierWriterSvc defines write operations for supplier data
type SupplierWriterSvc interface {
	// CreateSupplier persists a new supplier.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)

	// UpdateSupplier updates a supplier's mutable fields.
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, updaterUserID string) (*domain.Supplier, error)

	// DeleteSupplier soft-deletes a supplier, freeing its code for reuse.
	DeleteSupplier(ctx context.Context, supplierID string, deleterUserID string) error
}

// SupplierSvcFacade combines all supplier-related service interfaces
type SupplierSvcFacade interface {
	SupplierReaderSvc
	SupplierWriterSvc
}
