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
	"github.com/mizan-erp/mizan_backend/internal/utils/pagination"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase order and
// supplier payment data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

const purchaseOrderColumns = `order_id, order_number, supplier_id, order_date, expected_date, status, transaction_currency, fx_rate_date, usd_to_syp_old_snapshot, usd_to_syp_new_snapshot, subtotal, discount_amount, tax_amount, total_amount, total_amount_usd, paid_amount, paid_amount_usd, reference, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchaseOrder(row pgx.Row) (models.PurchaseOrder, error) {
	var m models.PurchaseOrder
	err := row.Scan(
		&m.OrderID,
		&m.OrderNumber,
		&m.SupplierID,
		&m.OrderDate,
		&m.ExpectedDate,
		&m.Status,
		&m.TransactionCurrency,
		&m.FxRateDate,
		&m.UsdToSypOldSnapshot,
		&m.UsdToSypNewSnapshot,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.TotalAmountUSD,
		&m.PaidAmount,
		&m.PaidAmountUSD,
		&m.Reference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const purchaseOrderItemColumns = `item_id, order_id, product_id, product_name, quantity, received_quantity, unit_price, discount_percent, tax_rate, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchaseOrderItem(row pgx.Row) (models.PurchaseOrderItem, error) {
	var m models.PurchaseOrderItem
	err := row.Scan(
		&m.ItemID,
		&m.OrderID,
		&m.ProductID,
		&m.ProductName,
		&m.Quantity,
		&m.ReceivedQuantity,
		&m.UnitPrice,
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

const supplierPaymentColumns = `payment_id, payment_number, supplier_id, order_id, payment_date, transaction_currency, fx_rate_date, usd_to_syp_old_snapshot, usd_to_syp_new_snapshot, amount, amount_usd, payment_method, reference, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSupplierPayment(row pgx.Row) (models.SupplierPayment, error) {
	var m models.SupplierPayment
	err := row.Scan(
		&m.PaymentID,
		&m.PaymentNumber,
		&m.SupplierID,
		&m.OrderID,
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

// SaveOrderWithItems persists a purchase order and its lines in one transaction.
func (r *PgxPurchaseRepository) SaveOrderWithItems(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPurchaseOrder(order)
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, query,
		m.OrderID,
		m.OrderNumber,
		m.SupplierID,
		m.OrderDate,
		m.ExpectedDate,
		m.Status,
		m.TransactionCurrency,
		m.FxRateDate,
		m.UsdToSypOldSnapshot,
		m.UsdToSypNewSnapshot,
		m.Subtotal,
		m.DiscountAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.TotalAmountUSD,
		m.PaidAmount,
		m.PaidAmountUSD,
		m.Reference,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert purchase order "+m.OrderNumber)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO purchase_order_items (` + purchaseOrderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, item := range items {
		im := mapping.ToModelPurchaseOrderItem(item)
		batch.Queue(itemQuery,
			im.ItemID,
			im.OrderID,
			im.ProductID,
			im.ProductName,
			im.Quantity,
			im.ReceivedQuantity,
			im.UnitPrice,
			im.DiscountPercent,
			im.TaxRate,
			im.Notes,
			im.CreatedAt,
			im.CreatedBy,
			im.LastUpdatedAt,
			im.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items for purchase order %s: %w", m.OrderID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateOrderStatus flips the order status.
func (r *PgxPurchaseRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.PurchaseOrderStatus, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, last_updated_at = now(), last_updated_by = $3 WHERE order_id = $1;`,
		orderID, string(status), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReceiveOrderItems books the new cumulative received quantity per line, flips
// the order status, and applies the supplier balance delta in one transaction.
func (r *PgxPurchaseRepository) ReceiveOrderItems(ctx context.Context, orderID string, received map[string]decimal.Decimal, status domain.PurchaseOrderStatus, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	itemQuery := `
		UPDATE purchase_order_items
		SET received_quantity = $3, last_updated_at = now(), last_updated_by = $4
		WHERE order_id = $1 AND item_id = $2;
	`
	for itemID, qty := range received {
		batch.Queue(itemQuery, orderID, itemID, qty, updatedBy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to book received quantities for purchase order %s: %w", orderID, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, last_updated_at = now(), last_updated_by = $3 WHERE order_id = $1;`,
		orderID, string(status), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := adjustSupplierBalanceTx(ctx, tx, supplierID, delta, updatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelOrder marks the order cancelled and reverses any booked supplier
// balance effect in one transaction. A zero delta skips the balance write.
func (r *PgxPurchaseRepository) CancelOrder(ctx context.Context, orderID string, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, last_updated_at = now(), last_updated_by = $3 WHERE order_id = $1;`,
		orderID, string(domain.PurchaseCancelled), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to cancel purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if !delta.IsZero() {
		if err := adjustSupplierBalanceTx(ctx, tx, supplierID, delta, updatedBy); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateOrderPayment writes recomputed paid figures for one order.
func (r *PgxPurchaseRepository) UpdateOrderPayment(ctx context.Context, orderID string, paidAmount, paidAmountUSD decimal.Decimal, updatedBy string) error {
	return updateOrderPaymentTx(ctx, r.Pool, orderID, paidAmount, paidAmountUSD, updatedBy)
}

func updateOrderPaymentTx(ctx context.Context, db executor, orderID string, paidAmount, paidAmountUSD decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE purchase_orders
		SET paid_amount = $2, paid_amount_usd = $3, last_updated_at = now(), last_updated_by = $4
		WHERE order_id = $1;
	`
	tag, err := db.Exec(ctx, query, orderID, paidAmount, paidAmountUSD, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update paid figures for purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveSupplierPayment persists the payment, optionally updates the linked
// order's paid figures, and applies the supplier balance delta in one
// transaction.
func (r *PgxPurchaseRepository) SaveSupplierPayment(ctx context.Context, payment domain.SupplierPayment, orderPaid *decimal.Decimal, orderPaidUSD *decimal.Decimal, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelSupplierPayment(payment)
	query := `
		INSERT INTO supplier_payments (` + supplierPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.PaymentNumber,
		m.SupplierID,
		m.OrderID,
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
		return mapWriteError(err, "failed to insert supplier payment "+m.PaymentNumber)
	}

	if m.OrderID != nil && orderPaid != nil && orderPaidUSD != nil {
		if err := updateOrderPaymentTx(ctx, tx, *m.OrderID, *orderPaid, *orderPaidUSD, m.CreatedBy); err != nil {
			return err
		}
	}

	if err := adjustSupplierBalanceTx(ctx, tx, m.SupplierID, delta, m.CreatedBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves a purchase order by its identifier.
func (r *PgxPurchaseRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE order_id = $1;`
	m, err := scanPurchaseOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", orderID, err)
	}
	d := mapping.ToDomainPurchaseOrder(m)
	return &d, nil
}

// FindOrderItems retrieves the lines of one purchase order.
func (r *PgxPurchaseRepository) FindOrderItems(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error) {
	query := `SELECT ` + purchaseOrderItemColumns + ` FROM purchase_order_items WHERE order_id = $1 ORDER BY created_at, item_id;`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase order %s: %w", orderID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PurchaseOrderItem, error) {
		return scanPurchaseOrderItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for purchase order %s: %w", orderID, err)
	}
	return mapping.ToDomainPurchaseOrderItemSlice(ms), nil
}

// ListOrdersBySupplier retrieves a page of a supplier's orders, newest first.
func (r *PgxPurchaseRepository) ListOrdersBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE supplier_id = $1`
	args := []interface{}{supplierID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (order_date, created_at) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY order_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query purchase orders for supplier %s: %w", supplierID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PurchaseOrder, error) {
		return scanPurchaseOrder(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan purchase orders for supplier %s: %w", supplierID, err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.OrderDate, last.CreatedAt)
		nextTokenVal = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainPurchaseOrderSlice(ms), nextTokenVal, nil
}

// ListOrdersByDateRange retrieves a supplier's orders within a date range,
// oldest first.
func (r *PgxPurchaseRepository) ListOrdersByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE supplier_id = $1`
	args := []interface{}{supplierID}
	if from != nil {
		args = append(args, *from)
		query += ` AND order_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND order_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY order_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders for supplier %s: %w", supplierID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PurchaseOrder, error) {
		return scanPurchaseOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchase orders for supplier %s: %w", supplierID, err)
	}
	return mapping.ToDomainPurchaseOrderSlice(ms), nil
}

// FindLastOrderNumber retrieves the highest order number issued so far.
func (r *PgxPurchaseRepository) FindLastOrderNumber(ctx context.Context) (string, error) {
	var last *string
	if err := r.Pool.QueryRow(ctx, `SELECT MAX(order_number) FROM purchase_orders;`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to find last order number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}

// FindSupplierPaymentByID retrieves a supplier payment by its identifier.
func (r *PgxPurchaseRepository) FindSupplierPaymentByID(ctx context.Context, paymentID string) (*domain.SupplierPayment, error) {
	query := `SELECT ` + supplierPaymentColumns + ` FROM supplier_payments WHERE payment_id = $1;`
	m, err := scanSupplierPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainSupplierPayment(m)
	return &d, nil
}

// ListSupplierPaymentsByDateRange retrieves a supplier's payments within a
// date range, oldest first.
func (r *PgxPurchaseRepository) ListSupplierPaymentsByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.SupplierPayment, error) {
	query := `SELECT ` + supplierPaymentColumns + ` FROM supplier_payments WHERE supplier_id = $1`
	args := []interface{}{supplierID}
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
		return nil, fmt.Errorf("failed to query supplier payments for supplier %s: %w", supplierID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SupplierPayment, error) {
		return scanSupplierPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan supplier payments for supplier %s: %w", supplierID, err)
	}
	return mapping.ToDomainSupplierPaymentSlice(ms), nil
}

// FindLastSupplierPaymentNumber retrieves the highest supplier payment number
// issued so far.
func (r *PgxPurchaseRepository) FindLastSupplierPaymentNumber(ctx context.Context) (string, error) {
	var last *string
	if err := r.Pool.QueryRow(ctx, `SELECT MAX(payment_number) FROM supplier_payments;`).Scan(&last); err != nil {
		return "", fmt.Errorf("failed to find last supplier payment number: %w", err)
	}
	if last == nil {
		return "", nil
	}
	return *last, nil
}
