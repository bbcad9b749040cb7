package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	"github.com/mizan-erp/mizan_backend/internal/models"
	"github.com/mizan-erp/mizan_backend/internal/utils/mapping"
	"github.com/mizan-erp/mizan_backend/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, invoice_type, customer_id, invoice_date, due_date, status, transaction_currency, fx_rate_date, usd_to_syp_old_snapshot, usd_to_syp_new_snapshot, subtotal, discount_percent, discount_amount, tax_amount, total_amount, total_amount_usd, paid_amount, paid_amount_usd, notes, internal_notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.InvoiceType,
		&m.CustomerID,
		&m.InvoiceDate,
		&m.DueDate,
		&m.Status,
		&m.TransactionCurrency,
		&m.FxRateDate,
		&m.UsdToSypOldSnapshot,
		&m.UsdToSypNewSnapshot,
		&m.Subtotal,
		&m.DiscountPercent,
		&m.DiscountAmount,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.TotalAmountUSD,
		&m.PaidAmount,
		&m.PaidAmountUSD,
		&m.Notes,
		&m.InternalNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const invoiceItemColumns = `item_id, invoice_id, product_id, product_name, quantity, unit_price, cost_price, discount_percent, tax_rate, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoiceItem(row pgx.Row) (models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(
		&m.ItemID,
		&m.InvoiceID,
		&m.ProductID,
		&m.ProductName,
		&m.Quantity,
		&m.UnitPrice,
		&m.CostPrice,
		&m.DiscountPercent,
		&m.TaxRate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueInvoiceItemInserts(batch *pgx.Batch, items []domain.InvoiceItem) {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, item := range items {
		m := mapping.ToModelInvoiceItem(item)
		batch.Queue(query,
			m.ItemID,
			m.InvoiceID,
			m.ProductID,
			m.ProductName,
			m.Quantity,
			m.UnitPrice,
			m.CostPrice,
			m.DiscountPercent,
			m.TaxRate,
			m.Notes,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveInvoiceWithItems persists an invoice and its lines in one transaction.
func (r *PgxInvoiceRepository) SaveInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.InvoiceType,
		m.CustomerID,
		m.InvoiceDate,
		m.DueDate,
		m.Status,
		m.TransactionCurrency,
		m.FxRateDate,
		m.UsdToSypOldSnapshot,
		m.UsdToSypNewSnapshot,
		m.Subtotal,
		m.DiscountPercent,
		m.DiscountAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.TotalAmountUSD,
		m.PaidAmount,
		m.PaidAmountUSD,
		m.Notes,
		m.InternalNotes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert invoice "+m.InvoiceNumber)
	}

	batch := &pgx.Batch{}
	queueInvoiceItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for invoice %s: %w", m.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceWithItems replaces a draft invoice's fields and lines in one
// transaction. The frozen snapshot columns are not part of the update.
func (r *PgxInvoiceRepository) UpdateInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET due_date = $2, subtotal = $3, discount_percent = $4, discount_amount = $5,
		    tax_amount = $6, total_amount = $7, total_amount_usd = $8,
		    notes = $9, internal_notes = $10, last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.DueDate,
		m.Subtotal,
		m.DiscountPercent,
		m.DiscountAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.TotalAmountUSD,
		m.Notes,
		m.InternalNotes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear items for invoice %s: %w", m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	queueInvoiceItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for invoice %s: %w", m.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// ConfirmInvoice flips the invoice status and applies the customer balance
// delta in one transaction.
func (r *PgxInvoiceRepository) ConfirmInvoice(ctx context.Context, invoiceID string, status domain.InvoiceStatus, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`UPDATE invoices SET status = $2, last_updated_at = now(), last_updated_by = $3 WHERE invoice_id = $1;`,
		invoiceID, string(status), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to confirm invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustCustomerBalanceTx(ctx, tx, customerID, delta, updatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelInvoice marks the invoice cancelled and reverses its balance effect
// in one transaction. A zero delta skips the balance write.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, invoiceID string, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`UPDATE invoices SET status = $2, last_updated_at = now(), last_updated_by = $3 WHERE invoice_id = $1;`,
		invoiceID, string(domain.InvoiceCancelled), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if !delta.IsZero() {
		if err := adjustCustomerBalanceTx(ctx, tx, customerID, delta, updatedBy); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoicePayment writes recomputed paid figures and status for one invoice.
func (r *PgxInvoiceRepository) UpdateInvoicePayment(ctx context.Context, invoiceID string, update domain.InvoicePaymentUpdate, updatedBy string) error {
	return updateInvoicePaymentTx(ctx, r.Pool, invoiceID, update, updatedBy)
}

func updateInvoicePaymentTx(ctx context.Context, db executor, invoiceID string, update domain.InvoicePaymentUpdate, updatedBy string) error {
	query := `
		UPDATE invoices
		SET paid_amount = $2, paid_amount_usd = $3, status = $4,
		    last_updated_at = now(), last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := db.Exec(ctx, query, invoiceID, update.PaidAmount, update.PaidAmountUSD, string(update.Status), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update payment figures for invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its identifier.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindInvoiceItems retrieves the lines of one invoice.
func (r *PgxInvoiceRepository) FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, item_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InvoiceItem, error) {
		return scanInvoiceItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for invoice %s: %w", invoiceID, err)
	}
	return mapping.ToDomainInvoiceItemSlice(ms), nil
}

// ListInvoicesByCustomer retrieves a page of a customer's invoices, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1`
	args := []interface{}{customerID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (invoice_date, created_at) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY invoice_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan invoices for customer %s: %w", customerID, err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainInvoiceSlice(ms), nextTokenVal, nil
}

// ListOutstandingInvoices retrieves a customer's confirmed or partially paid
// invoices, oldest first, for payment allocation.
func (r *PgxInvoiceRepository) ListOutstandingInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE customer_id = $1 AND status IN ($2, $3)
		ORDER BY invoice_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, customerID, string(domain.InvoiceConfirmed), string(domain.InvoicePartial))
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding invoices for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan outstanding invoices for customer %s: %w", customerID, err)
	}
	return mapping.ToDomainInvoiceSlice(ms), nil
}

// ListInvoicesByDateRange retrieves a customer's invoices within a date range,
// oldest first.
func (r *PgxInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1`
	args := []interface{}{customerID}
	if from != nil {
		args = append(args, *from)
		query += ` AND invoice_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND invoice_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY invoice_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices for customer %s: %w", customerID, err)
	}
	return mapping.ToDomainInvoiceSlice(ms), nil
}

// FindLastInvoiceNumber retrieves the highest invoice number issued so far.
// Zero-padded sequences make lexicographic MAX correct.
func (r *PgxInvoiceRepository) FindLastInvoiceNumber(ctx context.Context) (string, error) {
	var last *string
	if err := r.Pool.QueryRow(ctx, `SELECT MAX(invoice_number) FROM invoices;`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to find last invoice number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}
