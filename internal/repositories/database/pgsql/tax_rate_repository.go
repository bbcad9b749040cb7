package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
)

type PgxTaxRateRepository struct {
	BaseRepository
}

// newPgxTaxRateRepository creates a new repository for tax rate configuration.
func newPgxTaxRateRepository(pool *pgxpool.Pool) portsrepo.TaxRateRepositoryWithTx {
	return &PgxTaxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaxRateRepositoryWithTx = (*PgxTaxRateRepository)(nil)

const taxRateColumns = `tax_rate_id, name, code, rate, is_active, is_default, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxRate(row pgx.Row) (models.TaxRate, error) {
	var m models.TaxRate
	err := row.Scan(
		&m.TaxRateID,
		&m.Name,
		&m.Code,
		&m.Rate,
		&m.IsActive,
		&m.IsDefault,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTaxRate inserts a new tax rate.
func (r *PgxTaxRateRepository) SaveTaxRate(ctx context.Context, taxRate domain.TaxRate) error {
	m := mapping.ToModelTaxRate(taxRate)
	query := `
		INSERT INTO tax_rates (` + taxRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaxRateID,
		m.Name,
		m.Code,
		m.Rate,
		m.IsActive,
		m.IsDefault,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save tax rate "+m.Code)
	}
	return nil
}

// UpdateTaxRate updates a tax rate's mutable fields. The default flag is only
// moved through SetDefaultTaxRate.
func (r *PgxTaxRateRepository) UpdateTaxRate(ctx context.Context, taxRate domain.TaxRate) error {
	m := mapping.ToModelTaxRate(taxRate)
	query := `
		UPDATE tax_rates
		SET name = $2, code = $3, rate = $4, is_active = $5, description = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE tax_rate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TaxRateID,
		m.Name,
		m.Code,
		m.Rate,
		m.IsActive,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax rate %s: %w", m.TaxRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTaxRateByID retrieves a tax rate by its identifier.
func (r *PgxTaxRateRepository) FindTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE tax_rate_id = $1;`
	m, err := scanTaxRate(r.Pool.QueryRow(ctx, query, taxRateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax rate %s: %w", taxRateID, err)
	}
	d := mapping.ToDomainTaxRate(m)
	return &d, nil
}

// FindDefaultTaxRate retrieves the tax rate flagged as default, if any.
func (r *PgxTaxRateRepository) FindDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE is_default LIMIT 1;`
	m, err := scanTaxRate(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default tax rate: %w", err)
	}
	d := mapping.ToDomainTaxRate(m)
	return &d, nil
}

// ListTaxRates retrieves tax rates, optionally only active ones.
func (r *PgxTaxRateRepository) ListTaxRates(ctx context.Context, activeOnly bool) ([]domain.TaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TaxRate, error) {
		return scanTaxRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax rates: %w", err)
	}
	return mapping.ToDomainTaxRateSlice(ms), nil
}

// SetDefaultTaxRate clears the default flag on every rate and sets it on the
// given one, in one transaction.
func (r *PgxTaxRateRepository) SetDefaultTaxRate(ctx context.Context, taxRateID string, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `UPDATE tax_rates SET is_default = FALSE, last_updated_at = now(), last_updated_by = $1 WHERE is_default;`, updatedBy); err != nil {
		return fmt.Errorf("failed to clear default tax rate flag: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE tax_rates SET is_default = TRUE, last_updated_at = now(), last_updated_by = $2 WHERE tax_rate_id = $1;`, taxRateID, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set default tax rate %s: %w", taxRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
