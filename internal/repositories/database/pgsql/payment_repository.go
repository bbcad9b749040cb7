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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for customer payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, payment_number, customer_id, invoice_id, payment_date, transaction_currency, fx_rate_date, usd_to_syp_old_snapshot, usd_to_syp_new_snapshot, amount, amount_usd, payment_method, reference, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.PaymentNumber,
		&m.CustomerID,
		&m.InvoiceID,
		&m.PaymentDate,
		&m.TransactionCurrency,
		&m.FxRateDate,
		&m.UsdToSypOldSnapshot,
		&m.UsdToSypNewSnapshot,
		&m.Amount,
		&m.AmountUSD,
		&m.PaymentMethod,
		&m.Reference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const paymentAllocationColumns = `allocation_id, payment_id, invoice_id, amount, amount_usd, created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentAllocation(row pgx.Row) (models.PaymentAllocation, error) {
	var m models.PaymentAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.PaymentID,
		&m.InvoiceID,
		&m.Amount,
		&m.AmountUSD,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePaymentWithAllocations persists the payment, its allocations, the
// recomputed paid figures of every touched invoice, and the customer balance
// delta in a single transaction.
func (r *PgxPaymentRepository) SavePaymentWithAllocations(ctx context.Context, payment domain.Payment, allocations []domain.PaymentAllocation, invoiceUpdates map[string]domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.PaymentNumber,
		m.CustomerID,
		m.InvoiceID,
		m.PaymentDate,
		m.TransactionCurrency,
		m.FxRateDate,
		m.UsdToSypOldSnapshot,
		m.UsdToSypNewSnapshot,
		m.Amount,
		m.AmountUSD,
		m.PaymentMethod,
		m.Reference,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert payment "+m.PaymentNumber)
	}

	batch := &pgx.Batch{}
	allocQuery := `
		INSERT INTO payment_allocations (` + paymentAllocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, alloc := range allocations {
		am := mapping.ToModelPaymentAllocation(alloc)
		batch.Queue(allocQuery,
			am.AllocationID,
			am.PaymentID,
			am.InvoiceID,
			am.Amount,
			am.AmountUSD,
			am.CreatedAt,
			am.CreatedBy,
			am.LastUpdatedAt,
			am.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert allocations for payment %s: %w", m.PaymentID, err)
	}

	for invoiceID, update := range invoiceUpdates {
		if err := updateInvoicePaymentTx(ctx, tx, invoiceID, update, m.CreatedBy); err != nil {
			return err
		}
	}

	if err := adjustCustomerBalanceTx(ctx, tx, m.CustomerID, delta, m.CreatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindPaymentByID retrieves a payment by its identifier.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// FindAllocationsByPaymentID retrieves the allocations of one payment.
func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	query := `SELECT ` + paymentAllocationColumns + ` FROM payment_allocations WHERE payment_id = $1 ORDER BY created_at, allocation_id;`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentAllocation, error) {
		return scanPaymentAllocation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations for payment %s: %w", paymentID, err)
	}
	return mapping.ToDomainPaymentAllocationSlice(ms), nil
}

// ListPaymentsByCustomer retrieves a page of a customer's payments, newest first.
func (r *PgxPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1`
	args := []interface{}{customerID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (payment_date, created_at) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY payment_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan payments for customer %s: %w", customerID, err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainPaymentSlice(ms), nextTokenVal, nil
}

// ListPaymentsByDateRange retrieves a customer's payments within a date range,
// oldest first.
func (r *PgxPaymentRepository) ListPaymentsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1`
	args := []interface{}{customerID}
	if from != nil {
		args = append(args, *from)
		query += ` AND payment_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND payment_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY payment_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments for customer %s: %w", customerID, err)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

// FindLastPaymentNumber retrieves the highest payment number issued so far.
func (r *PgxPaymentRepository) FindLastPaymentNumber(ctx context.Context) (string, error) {
	var last *string
	if err := r.Pool.QueryRow(ctx, `SELECT MAX(payment_number) FROM payments;`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to find last payment number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}
