package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
	"github.com/mizan-erp/mizan_backend/internal/utils/pagination"
)

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepositoryWithTx {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SupplierRepositoryWithTx = (*PgxSupplierRepository)(nil)

const supplierColumns = `supplier_id, code, name, name_en, phone, address, payment_terms_days, opening_balance, opening_balance_usd, current_balance, current_balance_usd, notes, is_active, is_deleted, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplier(row pgx.Row) (models.Supplier, error) {
	var m models.Supplier
	err := row.Scan(
		&m.SupplierID,
		&m.Code,
		&m.Name,
		&m.NameEn,
		&m.Phone,
		&m.Address,
		&m.PaymentTermsDays,
		&m.OpeningBalance,
		&m.OpeningBalanceUSD,
		&m.CurrentBalance,
		&m.CurrentBalanceUSD,
		&m.Notes,
		&m.IsActive,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSupplier inserts a new supplier.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Code,
		m.Name,
		m.NameEn,
		m.Phone,
		m.Address,
		m.PaymentTermsDays,
		m.OpeningBalance,
		m.OpeningBalanceUSD,
		m.CurrentBalance,
		m.CurrentBalanceUSD,
		m.Notes,
		m.IsActive,
		m.IsDeleted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save supplier "+m.Code)
	}
	return nil
}

// UpdateSupplier updates a supplier's mutable fields.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		UPDATE suppliers
		SET name = $2, name_en = $3, phone = $4, address = $5, payment_terms_days = $6,
		    notes = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE supplier_id = $1 AND NOT is_deleted;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SupplierID,
		m.Name,
		m.NameEn,
		m.Phone,
		m.Address,
		m.PaymentTermsDays,
		m.Notes,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier %s: %w", m.SupplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteSupplier marks a supplier deleted, freeing its code for reuse.
func (r *PgxSupplierRepository) SoftDeleteSupplier(ctx context.Context, supplierID string, deletedBy string) error {
	query := `
		UPDATE suppliers
		SET is_deleted = TRUE, is_active = FALSE, last_updated_at = now(), last_updated_by = $2
		WHERE supplier_id = $1 AND NOT is_deleted;
	`
	tag, err := r.Pool.Exec(ctx, query, supplierID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustSupplierBalance applies a dual-currency delta to both balance mirrors.
func (r *PgxSupplierRepository) AdjustSupplierBalance(ctx context.Context, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	return adjustSupplierBalanceTx(ctx, r.Pool, supplierID, delta, updatedBy)
}

func adjustSupplierBalanceTx(ctx context.Context, db executor, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	query := `
		UPDATE suppliers
		SET current_balance = current_balance + $2,
		    current_balance_usd = current_balance_usd + $3,
		    last_updated_at = now(), last_updated_by = $4
		WHERE supplier_id = $1 AND NOT is_deleted;
	`
	tag, err := db.Exec(ctx, query, supplierID, delta.Local, delta.USD, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for supplier %s: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindSupplierByID retrieves a supplier by its identifier.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`
	m, err := scanSupplier(r.Pool.QueryRow(ctx, query, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	d := mapping.ToDomainSupplier(m)
	return &d, nil
}

// FindSupplierByCode retrieves a non-deleted supplier by its code.
func (r *PgxSupplierRepository) FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE code = $1 AND NOT is_deleted;`
	m, err := scanSupplier(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by code %s: %w", code, err)
	}
	d := mapping.ToDomainSupplier(m)
	return &d, nil
}

// ListSuppliers retrieves a paginated list of non-deleted suppliers ordered
// by code, using a code-based cursor token.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, limit int, nextToken *string) ([]domain.Supplier, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE NOT is_deleted`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 1 {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, fields[0])
		query += ` AND code > $` + strconv.Itoa(len(args))
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY code LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Supplier, error) {
		return scanSupplier(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan suppliers: %w", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		token := pagination.EncodeMultiFieldToken(ms[limit-1].Code)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainSupplierSlice(ms), nextTokenVal, nil
}
