package repositories

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByCode retrieves a non-deleted customer by its code.
	FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of non-deleted customers using
	// token-based pagination. It returns the customers, a token for the next
	// page, and an error.
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer. A duplicate code among non-deleted
	// customers surfaces as apperrors.ErrDuplicate.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates a customer's mutable fields.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// SoftDeleteCustomer marks a customer deleted, freeing its code for reuse.
	SoftDeleteCustomer(ctx context.Context, customerID string, deletedBy string) error

	// AdjustCustomerBalance applies a dual-currency delta to the customer's
	// running balance mirrors.
	AdjustCustomerBalance(ctx context.Context, customerID string, delta domain.BalanceDelta, updatedBy string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}

// CustomerRepositoryWithTx extends CustomerRepositoryFacade with transaction capabilities
type CustomerRepositoryWithTx interface {
	CustomerRepositoryFacade
	TransactionManager
}
