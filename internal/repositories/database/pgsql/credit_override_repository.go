package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
)

type PgxCreditOverrideRepository struct {
	BaseRepository
}

// newPgxCreditOverrideRepository creates a new repository for credit limit overrides.
func newPgxCreditOverrideRepository(pool *pgxpool.Pool) portsrepo.CreditOverrideRepositoryFacade {
	return &PgxCreditOverrideRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CreditOverrideRepositoryFacade = (*PgxCreditOverrideRepository)(nil)

const creditOverrideColumns = `override_id, customer_id, invoice_id, override_amount, reason, created_at, created_by, last_updated_at, last_updated_by`

func scanCreditOverride(row pgx.Row) (models.CreditLimitOverride, error) {
	var m models.CreditLimitOverride
	err := row.Scan(
		&m.OverrideID,
		&m.CustomerID,
		&m.InvoiceID,
		&m.OverrideAmount,
		&m.Reason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOverride persists an authorized credit limit breach.
func (r *PgxCreditOverrideRepository) SaveOverride(ctx context.Context, override domain.CreditLimitOverride) error {
	m := mapping.ToModelCreditLimitOverride(override)
	query := `
		INSERT INTO credit_limit_overrides (` + creditOverrideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OverrideID,
		m.CustomerID,
		m.InvoiceID,
		m.OverrideAmount,
		m.Reason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert credit override for customer "+m.CustomerID)
	}
	return nil
}

// ListOverridesByCustomer retrieves a customer's overrides, newest first.
func (r *PgxCreditOverrideRepository) ListOverridesByCustomer(ctx context.Context, customerID string) ([]domain.CreditLimitOverride, error) {
	query := `SELECT ` + creditOverrideColumns + ` FROM credit_limit_overrides WHERE customer_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit overrides for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CreditLimitOverride, error) {
		return scanCreditOverride(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan credit overrides for customer %s: %w", customerID, err)
	}

	ds := make([]domain.CreditLimitOverride, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainCreditLimitOverride(m)
	}
	return ds, nil
}
