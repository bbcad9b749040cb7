package repositories

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// SupplierReader defines read operations for supplier data
type SupplierReader interface {
	// FindSupplierByID retrieves a supplier by its unique identifier.
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// FindSupplierByCode retrieves a non-deleted supplier by its code.
	FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error)

	// ListSuppliers retrieves a paginated list of non-deleted suppliers using
	// token-based pagination.
	ListSuppliers(ctx context.Context, limit int, nextToken *string) ([]domain.Supplier, *string, error)
}

// SupplierWriter defines write operations for supplier data
type SupplierWriter interface {
	// SaveSupplier persists a new supplier. A duplicate code among non-deleted
	// suppliers surfaces as apperrors.ErrDuplicate.
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error

	// UpdateSupplier updates a supplier's mutable fields.
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error

	// SoftDeleteSupplier marks a supplier deleted, freeing its code for reuse.
	SoftDeleteSupplier(ctx context.Context, supplierID string, deletedBy string) error

	// AdjustSupplierBalance applies a dual-currency delta to the supplier's
	// running balance mirrors.
	AdjustSupplierBalance(ctx context.Context, supplierID string, delta domain.BalanceDelta, updatedBy string) error
}

// SupplierRepositoryFacade combines all supplier-related repository interfaces
type SupplierRepositoryFacade interface {
	SupplierReader
	SupplierWriter
}

// SupplierRepositoryWithTx extends SupplierRepositoryFacade with transaction capabilities
type SupplierRepositoryWithTx interface {
	SupplierRepositoryFacade
	TransactionManager
}
