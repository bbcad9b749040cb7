package repositories

import (
	"context"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// CreditOverrideReader defines read operations for credit limit overrides
type CreditOverrideReader interface {
	// ListOverridesByCustomer retrieves the overrides recorded for a customer,
	// newest first.
	ListOverridesByCustomer(ctx context.Context, customerID string) ([]domain.CreditLimitOverride, error)
}

// CreditOverrideWriter defines write operations for credit limit overrides
type CreditOverrideWriter interface {
	// SaveOverride persists an authorized credit limit breach.
	SaveOverride(ctx context.Context, override domain.CreditLimitOverride) error
}

// CreditOverrideRepositoryFacade combines the credit override repository interfaces
type CreditOverrideRepositoryFacade interface {
	CreditOverrideReader
	CreditOverrideWriter
}
