package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
)

type PgxSalesReturnRepository struct {
	BaseRepository
}

// newPgxSalesReturnRepository creates a new repository for sales return data.
func newPgxSalesReturnRepository(pool *pgxpool.Pool) portsrepo.SalesReturnRepositoryWithTx {
	return &PgxSalesReturnRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SalesReturnRepositoryWithTx = (*PgxSalesReturnRepository)(nil)

const salesReturnColumns = `return_id, return_number, invoice_id, return_date, transaction_currency, fx_rate_date, usd_to_syp_old_snapshot, usd_to_syp_new_snapshot, total_amount, total_amount_usd, reason, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSalesReturn(row pgx.Row) (models.SalesReturn, error) {
	var m models.SalesReturn
	err := row.Scan(
		&m.ReturnID,
		&m.ReturnNumber,
		&m.InvoiceID,
		&m.ReturnDate,
		&m.TransactionCurrency,
		&m.FxRateDate,
		&m.UsdToSypOldSnapshot,
		&m.UsdToSypNewSnapshot,
		&m.TotalAmount,
		&m.TotalAmountUSD,
		&m.Reason,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const salesReturnItemColumns = `return_item_id, return_id, invoice_item_id, product_id, quantity, unit_price, discount_percent, tax_rate, reason, created_at, created_by, last_updated_at, last_updated_by`

func scanSalesReturnItem(row pgx.Row) (models.SalesReturnItem, error) {
	var m models.SalesReturnItem
	err := row.Scan(
		&m.ReturnItemID,
		&m.ReturnID,
		&m.InvoiceItemID,
		&m.ProductID,
		&m.Quantity,
		&m.UnitPrice,
		&m.DiscountPercent,
		&m.TaxRate,
		&m.Reason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReturnWithItems persists the return and its lines, writes the invoice's
// recomputed paid figures, and applies the customer balance delta in a single
// transaction.
func (r *PgxSalesReturnRepository) SaveReturnWithItems(ctx context.Context, ret domain.SalesReturn, items []domain.SalesReturnItem, customerID string, invoiceUpdate domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSalesReturn(ret)
	query := `
		INSERT INTO sales_returns (` + salesReturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.ReturnID,
		m.ReturnNumber,
		m.InvoiceID,
		m.ReturnDate,
		m.TransactionCurrency,
		m.FxRateDate,
		m.UsdToSypOldSnapshot,
		m.UsdToSypNewSnapshot,
		m.TotalAmount,
		m.TotalAmountUSD,
		m.Reason,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert sales return "+m.ReturnNumber)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sales_return_items (` + salesReturnItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, item := range items {
		im := mapping.ToModelSalesReturnItem(item)
		batch.Queue(itemQuery,
			im.ReturnItemID,
			im.ReturnID,
			im.InvoiceItemID,
			im.ProductID,
			im.Quantity,
			im.UnitPrice,
			im.DiscountPercent,
			im.TaxRate,
			im.Reason,
			im.CreatedAt,
			im.CreatedBy,
			im.LastUpdatedAt,
			im.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for sales return %s: %w", m.ReturnID, err)
	}

	if err := updateInvoicePaymentTx(ctx, tx, m.InvoiceID, invoiceUpdate, m.CreatedBy); err != nil {
		return err
	}

	if err := adjustCustomerBalanceTx(ctx, tx, customerID, delta, m.CreatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindReturnByID retrieves a sales return by its identifier.
func (r *PgxSalesReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	query := `SELECT ` + salesReturnColumns + ` FROM sales_returns WHERE return_id = $1;`
	m, err := scanSalesReturn(r.Pool.QueryRow(ctx, query, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sales return %s: %w", returnID, err)
	}
	d := mapping.ToDomainSalesReturn(m)
	return &d, nil
}

// FindReturnItems retrieves the lines of one sales return.
func (r *PgxSalesReturnRepository) FindReturnItems(ctx context.Context, returnID string) ([]domain.SalesReturnItem, error) {
	query := `SELECT ` + salesReturnItemColumns + ` FROM sales_return_items WHERE return_id = $1 ORDER BY created_at, return_item_id;`
	rows, err := r.Pool.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sales return %s: %w", returnID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SalesReturnItem, error) {
		return scanSalesReturnItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for sales return %s: %w", returnID, err)
	}
	return mapping.ToDomainSalesReturnItemSlice(ms), nil
}

// ListReturnsByInvoice retrieves every return booked against one invoice.
func (r *PgxSalesReturnRepository) ListReturnsByInvoice(ctx context.Context, invoiceID string) ([]domain.SalesReturn, error) {
	query := `SELECT ` + salesReturnColumns + ` FROM sales_returns WHERE invoice_id = $1 ORDER BY return_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query returns for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SalesReturn, error) {
		return scanSalesReturn(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan returns for invoice %s: %w", invoiceID, err)
	}
	return mapping.ToDomainSalesReturnSlice(ms), nil
}

// ListReturnsByDateRange retrieves a customer's returns within a date range,
// oldest first. Returns hang off invoices, so the customer filter goes
// through the invoices table.
func (r *PgxSalesReturnRepository) ListReturnsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.SalesReturn, error) {
	query := `
		SELECT ` + prefixColumns("sr", salesReturnColumns) + `
		FROM sales_returns sr
		JOIN invoices i ON i.invoice_id = sr.invoice_id
		WHERE i.customer_id = $1`
	args := []interface{}{customerID}
	if from != nil {
		args = append(args, *from)
		query += ` AND sr.return_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND sr.return_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY sr.return_date, sr.created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query returns for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SalesReturn, error) {
		return scanSalesReturn(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan returns for customer %s: %w", customerID, err)
	}
	return mapping.ToDomainSalesReturnSlice(ms), nil
}

// SumReturnedQuantity reports the quantity already returned per invoice item.
func (r *PgxSalesReturnRepository) SumReturnedQuantity(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT sri.invoice_item_id, COALESCE(SUM(sri.quantity), 0)
		FROM sales_return_items sri
		JOIN sales_returns sr ON sr.return_id = sri.return_id
		WHERE sr.invoice_id = $1
		GROUP BY sri.invoice_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query returned quantities for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var itemID string
		var qty decimal.Decimal
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan returned quantity for invoice %s: %w", invoiceID, err)
		}
		sums[itemID] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read returned quantities for invoice %s: %w", invoiceID, err)
	}
	return sums, nil
}

// FindLastReturnNumber retrieves the highest return number issued so far.
func (r *PgxSalesReturnRepository) FindLastReturnNumber(ctx context.Context) (string, error) {
	var last *string
	if err := r.Pool.QueryRow(ctx, `SELECT MAX(return_number) FROM sales_returns;`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to find last return number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}
