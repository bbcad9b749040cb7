package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/utils"
	"github.com/mizan-erp/mizan_backend/internal/utils/fxmath"
)

// purchaseService provides business logic for purchase orders and supplier
// payments.
type purchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	fxSvc        portssvc.FXRateSvcFacade
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(
	purchaseRepo portsrepo.PurchaseRepositoryFacade,
	supplierRepo portsrepo.SupplierRepositoryFacade,
	fxSvc portssvc.FXRateSvcFacade,
) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		fxSvc:        fxSvc,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", req.SupplierID, err)
	}
	if supplier.IsDeleted || !supplier.IsActive {
		return nil, fmt.Errorf("%w: supplier %s is not active", apperrors.ErrInvalidOperation, req.SupplierID)
	}

	// Purchases default to USD.
	currency := domain.CurrencyUSD
	if req.TransactionCurrency != nil {
		currency = domain.TransactionCurrency(*req.TransactionCurrency)
		if !currency.Valid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, *req.TransactionCurrency)
		}
	}

	// The snapshot is mandatory even for USD orders: receiving goods later
	// books the supplier balance through it, not the rate of that day.
	fxDate := req.OrderDate
	if req.FxRateDate != nil {
		fxDate = *req.FxRateDate
	}
	snapshot, err := s.fxSvc.ResolveSnapshot(ctx, fxDate)
	if err != nil {
		return nil, err
	}

	lastNumber, err := s.purchaseRepo.FindLastOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last order number: %w", err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	order := domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		OrderNumber:         utils.NextDocumentNumber(utils.PurchaseOrderPrefix, lastNumber),
		SupplierID:          supplier.SupplierID,
		OrderDate:           req.OrderDate,
		ExpectedDate:        req.ExpectedDate,
		Status:              domain.PurchaseDraft,
		TransactionCurrency: currency,
		Snapshot:            snapshot,
		Reference:           req.Reference,
		Notes:               req.Notes,
		AuditFields:         audit,
	}

	subtotal := decimal.Zero
	lineDiscounts := decimal.Zero
	lineTotals := decimal.Zero
	items := make([]domain.PurchaseOrderItem, len(req.Items))
	for i, ri := range req.Items {
		if ri.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if ri.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item unit price cannot be negative", apperrors.ErrValidation)
		}
		item := domain.PurchaseOrderItem{
			ItemID:      uuid.NewString(),
			OrderID:     order.OrderID,
			ProductID:   ri.ProductID,
			ProductName: ri.ProductName,
			Quantity:    ri.Quantity,
			UnitPrice:   ri.UnitPrice,
			// Purchase lines never carry tax.
			TaxRate:     decimal.Zero,
			Notes:       ri.Notes,
			AuditFields: audit,
		}
		if ri.DiscountPercent != nil {
			item.DiscountPercent = *ri.DiscountPercent
		}
		subtotal = subtotal.Add(item.Subtotal())
		lineDiscounts = lineDiscounts.Add(item.DiscountAmount())
		lineTotals = lineTotals.Add(item.Total())
		items[i] = item
	}

	headerDiscount := decimal.Zero
	if req.DiscountAmount != nil {
		if req.DiscountAmount.IsNegative() || req.DiscountAmount.GreaterThan(lineTotals) {
			return nil, fmt.Errorf("%w: header discount out of range", apperrors.ErrValidation)
		}
		headerDiscount = *req.DiscountAmount
	}

	order.Items = items
	order.Subtotal = subtotal
	order.DiscountAmount = lineDiscounts.Add(headerDiscount)
	order.TaxAmount = decimal.Zero
	order.TotalAmount = lineTotals.Sub(headerDiscount)

	totalUSD, err := fxmath.ToUSD(&order.TotalAmount, order.TransactionCurrency, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	order.TotalAmountUSD = totalUSD

	if err := s.purchaseRepo.SaveOrderWithItems(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	s.LogInfo(ctx, "purchase order created",
		"order_number", order.OrderNumber,
		"supplier_id", order.SupplierID,
		"currency", string(order.TransactionCurrency),
		"total", order.TotalAmount.String())
	return &order, nil
}

func (s *purchaseService) ApproveOrder(ctx context.Context, orderID string, updaterUserID string) (*domain.PurchaseOrder, error) {
	order, err := s.purchaseRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status != domain.PurchaseDraft {
		return nil, fmt.Errorf("%w: order %s is not a draft", apperrors.ErrInvalidOperation, orderID)
	}
	if err := s.purchaseRepo.UpdateOrderStatus(ctx, orderID, domain.PurchaseApproved, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to approve order %s: %w", orderID, err)
	}
	order.Status = domain.PurchaseApproved
	return order, nil
}

// ReceiveOrder books received quantities against an approved order. The value
// of this delivery, priced at the order's lines and converted through the
// order's frozen snapshot, grows the supplier payable.
func (s *purchaseService) ReceiveOrder(ctx context.Context, orderID string, req dto.ReceiveOrderRequest, updaterUserID string) (*domain.PurchaseOrder, error) {
	order, err := s.purchaseRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	switch order.Status {
	case domain.PurchaseApproved, domain.PurchasePartial:
	default:
		return nil, fmt.Errorf("%w: order %s is not open for receiving", apperrors.ErrInvalidOperation, orderID)
	}

	items, err := s.purchaseRepo.FindOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	itemsByID := make(map[string]*domain.PurchaseOrderItem, len(items))
	for i := range items {
		itemsByID[items[i].ItemID] = &items[i]
	}

	deliveryValue := decimal.Zero
	received := make(map[string]decimal.Decimal, len(req.Items))
	for _, ri := range req.Items {
		item, ok := itemsByID[ri.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: order item %s", apperrors.ErrNotFound, ri.ItemID)
		}
		if ri.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: received quantity must be positive", apperrors.ErrValidation)
		}
		if ri.Quantity.GreaterThan(item.RemainingQuantity()) {
			return nil, fmt.Errorf("%w: received quantity %s exceeds remaining %s for item %s",
				apperrors.ErrValidation, ri.Quantity.String(), item.RemainingQuantity().String(), ri.ItemID)
		}
		lineValue := ri.Quantity.Mul(item.UnitPrice)
		lineValue = lineValue.Sub(lineValue.Mul(item.DiscountPercent).Div(decimal.NewFromInt(100)))
		deliveryValue = deliveryValue.Add(lineValue)

		item.ReceivedQuantity = item.ReceivedQuantity.Add(ri.Quantity)
		received[ri.ItemID] = item.ReceivedQuantity
	}

	status := domain.PurchaseReceived
	for i := range items {
		if items[i].RemainingQuantity().IsPositive() {
			status = domain.PurchasePartial
			break
		}
	}

	deliveryUSD, err := fxmath.ToUSD(&deliveryValue, order.TransactionCurrency, order.Snapshot.USDToSYPOld, order.Snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	local, err := fxmath.OldUnits(deliveryValue, order.TransactionCurrency, order.Snapshot.USDToSYPOld, order.Snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	delta := domain.BalanceDelta{Local: local, USD: deliveryUSD}

	if err := s.purchaseRepo.ReceiveOrderItems(ctx, orderID, received, status, order.SupplierID, delta, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to receive order %s: %w", orderID, err)
	}

	order.Status = status
	order.Items = items
	s.LogInfo(ctx, "purchase order received",
		"order_number", order.OrderNumber,
		"status", string(status),
		"delivery_value", deliveryValue.String(),
		"delivery_value_usd", deliveryUSD.String())
	return order, nil
}

func (s *purchaseService) CancelOrder(ctx context.Context, orderID string, updaterUserID string) error {
	order, err := s.purchaseRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	if order.Status == domain.PurchaseCancelled {
		return fmt.Errorf("%w: order %s is already cancelled", apperrors.ErrInvalidOperation, orderID)
	}
	if order.PaidAmount.IsPositive() {
		return fmt.Errorf("%w: order %s has payments applied", apperrors.ErrInvalidOperation, orderID)
	}

	delta := domain.BalanceDelta{}
	if order.Status == domain.PurchasePartial || order.Status == domain.PurchaseReceived {
		// Reverse the value already received, at the order's frozen snapshot.
		value, valueUSD, err := receivedOrderValue(ctx, s.purchaseRepo, order)
		if err != nil {
			return err
		}
		local, err := fxmath.OldUnits(value, order.TransactionCurrency, order.Snapshot.USDToSYPOld, order.Snapshot.USDToSYPNew)
		if err != nil {
			return err
		}
		delta = domain.BalanceDelta{Local: local, USD: valueUSD}.Neg()
	}

	if err := s.purchaseRepo.CancelOrder(ctx, orderID, order.SupplierID, delta, updaterUserID); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}

	s.LogInfo(ctx, "purchase order cancelled", "order_number", order.OrderNumber)
	return nil
}

func (s *purchaseService) MakeSupplierPayment(ctx context.Context, req dto.CreateSupplierPaymentRequest, creatorUserID string) (*domain.SupplierPayment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", req.SupplierID, err)
	}

	currency := domain.TransactionCurrency(req.TransactionCurrency)
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, req.TransactionCurrency)
	}

	fxDate := req.PaymentDate
	if req.FxRateDate != nil {
		fxDate = *req.FxRateDate
	}
	snapshot, err := s.fxSvc.ResolveSnapshot(ctx, fxDate)
	if err != nil {
		return nil, err
	}

	amountUSD, err := fxmath.ToUSD(&req.Amount, currency, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}

	lastNumber, err := s.purchaseRepo.FindLastSupplierPaymentNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last supplier payment number: %w", err)
	}

	now := time.Now()
	payment := domain.SupplierPayment{
		PaymentID:           uuid.NewString(),
		PaymentNumber:       utils.NextDocumentNumber(utils.SupplierPaymentPrefix, lastNumber),
		SupplierID:          supplier.SupplierID,
		OrderID:             req.OrderID,
		PaymentDate:         req.PaymentDate,
		TransactionCurrency: currency,
		Snapshot:            snapshot,
		Amount:              req.Amount,
		AmountUSD:           amountUSD,
		PaymentMethod:       domain.PaymentMethod(req.PaymentMethod),
		Reference:           req.Reference,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// When linked to an order, the payment bridges into the order's currency
	// through USD and the order's own frozen snapshot.
	var orderPaid, orderPaidUSD *decimal.Decimal
	if req.OrderID != nil {
		order, err := s.purchaseRepo.FindOrderByID(ctx, *req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to find order %s: %w", *req.OrderID, err)
		}
		if order.SupplierID != supplier.SupplierID {
			return nil, fmt.Errorf("%w: order %s belongs to another supplier", apperrors.ErrValidation, *req.OrderID)
		}
		appliedUSD := decimal.Min(amountUSD, order.RemainingAmountUSD())
		if appliedUSD.IsPositive() {
			appliedLocal, err := fxmath.FromUSD(&appliedUSD, order.TransactionCurrency, order.Snapshot.USDToSYPOld, order.Snapshot.USDToSYPNew)
			if err != nil {
				return nil, err
			}
			paid := order.PaidAmount.Add(appliedLocal)
			paidUSD := order.PaidAmountUSD.Add(appliedUSD)
			orderPaid = &paid
			orderPaidUSD = &paidUSD
		}
	}

	local, err := fxmath.OldUnits(payment.Amount, payment.TransactionCurrency, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	delta := domain.BalanceDelta{Local: local, USD: payment.AmountUSD}.Neg()

	if err := s.purchaseRepo.SaveSupplierPayment(ctx, payment, orderPaid, orderPaidUSD, delta); err != nil {
		return nil, fmt.Errorf("failed to save supplier payment: %w", err)
	}

	s.LogInfo(ctx, "supplier payment made",
		"payment_number", payment.PaymentNumber,
		"supplier_id", payment.SupplierID,
		"amount", payment.Amount.String(),
		"amount_usd", payment.AmountUSD.String())
	return &payment, nil
}

func (s *purchaseService) GetOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	order, err := s.purchaseRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.purchaseRepo.FindOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.Items = items
	return order, nil
}

func (s *purchaseService) ListOrdersBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	orders, token, err := s.purchaseRepo.ListOrdersBySupplier(ctx, supplierID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, token, nil
}
