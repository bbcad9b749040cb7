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

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryWithTx {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryWithTx = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, code, name, name_en, customer_type, phone, address, credit_limit, payment_terms_days, discount_percent, opening_balance, opening_balance_usd, current_balance, current_balance_usd, notes, is_active, is_deleted, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Code,
		&m.Name,
		&m.NameEn,
		&m.CustomerType,
		&m.Phone,
		&m.Address,
		&m.CreditLimit,
		&m.PaymentTermsDays,
		&m.DiscountPercent,
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

// SaveCustomer inserts a new customer. The partial unique index on code
// (among non-deleted rows) turns a reused code into ErrDuplicate.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Code,
		m.Name,
		m.NameEn,
		m.CustomerType,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.PaymentTermsDays,
		m.DiscountPercent,
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
		return mapWriteError(err, "failed to save customer "+m.Code)
	}
	return nil
}

// UpdateCustomer updates a customer's mutable fields. Balances are only
// touched through AdjustCustomerBalance.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $2, name_en = $3, customer_type = $4, phone = $5, address = $6,
		    credit_limit = $7, payment_terms_days = $8, discount_percent = $9,
		    notes = $10, is_active = $11, last_updated_at = $12, last_updated_by = $13
		WHERE customer_id = $1 AND NOT is_deleted;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.NameEn,
		m.CustomerType,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.PaymentTermsDays,
		m.DiscountPercent,
		m.Notes,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteCustomer marks a customer deleted, freeing its code for reuse.
func (r *PgxCustomerRepository) SoftDeleteCustomer(ctx context.Context, customerID string, deletedBy string) error {
	query := `
		UPDATE customers
		SET is_deleted = TRUE, is_active = FALSE, last_updated_at = now(), last_updated_by = $2
		WHERE customer_id = $1 AND NOT is_deleted;
	`
	tag, err := r.Pool.Exec(ctx, query, customerID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustCustomerBalance applies a dual-currency delta to both balance mirrors.
func (r *PgxCustomerRepository) AdjustCustomerBalance(ctx context.Context, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	return adjustCustomerBalanceTx(ctx, r.Pool, customerID, delta, updatedBy)
}

// adjustCustomerBalanceTx updates both customer balance mirrors atomically on
// the given executor, so document repositories can run it inside their own
// transactions.
func adjustCustomerBalanceTx(ctx context.Context, db executor, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	query := `
		UPDATE customers
		SET current_balance = current_balance + $2,
		    current_balance_usd = current_balance_usd + $3,
		    last_updated_at = now(), last_updated_by = $4
		WHERE customer_id = $1 AND NOT is_deleted;
	`
	tag, err := db.Exec(ctx, query, customerID, delta.Local, delta.USD, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCustomerByID retrieves a customer by its identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

// FindCustomerByCode retrieves a non-deleted customer by its code.
func (r *PgxCustomerRepository) FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE code = $1 AND NOT is_deleted;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by code %s: %w", code, err)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}

// ListCustomers retrieves a paginated list of non-deleted customers ordered
// by code, using a code-based cursor token.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + customerColumns + ` FROM customers WHERE NOT is_deleted`
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
		return nil, nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Customer, error) {
		return scanCustomer(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan customers: %w", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		token := pagination.EncodeMultiFieldToken(ms[limit-1].Code)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainCustomerSlice(ms), nextTokenVal, nil
}
