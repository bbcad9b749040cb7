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

// fullyPaidTolerance is the one-cent slack under which an invoice counts as
// fully paid and its paid amount snaps to the exact total.
var fullyPaidTolerance = decimal.RequireFromString("0.01")

// salesService provides business logic for invoices, payments and returns.
type salesService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
	returnRepo   portsrepo.SalesReturnRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	creditRepo   portsrepo.CreditOverrideRepositoryFacade
	fxSvc        portssvc.FXRateSvcFacade
}

// NewSalesService creates a new sales service.
func NewSalesService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	returnRepo portsrepo.SalesReturnRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	creditRepo portsrepo.CreditOverrideRepositoryFacade,
	fxSvc portssvc.FXRateSvcFacade,
) portssvc.SalesSvcFacade {
	return &salesService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		returnRepo:   returnRepo,
		customerRepo: customerRepo,
		creditRepo:   creditRepo,
		fxSvc:        fxSvc,
	}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// recomputeInvoiceTotals rebuilds every derived amount on the invoice from its
// lines in the fixed order: line subtotal, discount, taxable, tax, total, then
// header subtotal, discount, tax, total, then the settlement mirror through the
// invoice's frozen snapshot.
func (s *salesService) recomputeInvoiceTotals(inv *domain.Invoice) error {
	subtotal := decimal.Zero
	lineDiscounts := decimal.Zero
	taxTotal := decimal.Zero
	lineTotals := decimal.Zero
	for i := range inv.Items {
		it := &inv.Items[i]
		subtotal = subtotal.Add(it.Subtotal())
		lineDiscounts = lineDiscounts.Add(it.DiscountAmount())
		taxTotal = taxTotal.Add(it.TaxAmount())
		lineTotals = lineTotals.Add(it.Total())
	}

	// The header discount percent applies to the sum already net of line discounts.
	headerDiscount := subtotal.Sub(lineDiscounts).Mul(inv.DiscountPercent).Div(decimal.NewFromInt(100))

	inv.Subtotal = subtotal
	inv.DiscountAmount = lineDiscounts.Add(headerDiscount)
	inv.TaxAmount = taxTotal
	inv.TotalAmount = lineTotals.Sub(headerDiscount)

	totalUSD, err := fxmath.ToUSD(&inv.TotalAmount, inv.TransactionCurrency, inv.Snapshot.USDToSYPOld, inv.Snapshot.USDToSYPNew)
	if err != nil {
		return err
	}
	inv.TotalAmountUSD = totalUSD
	return nil
}

func (s *salesService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}
	if customer.IsDeleted || !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is not active", apperrors.ErrInvalidOperation, req.CustomerID)
	}

	// Invoices default to the legacy local currency.
	currency := domain.CurrencySYPOld
	if req.TransactionCurrency != "" {
		currency = domain.TransactionCurrency(req.TransactionCurrency)
		if !currency.Valid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, req.TransactionCurrency)
		}
	}

	// The snapshot is resolved once, here, and never refetched afterwards.
	fxDate := req.InvoiceDate
	if req.FxRateDate != nil {
		fxDate = *req.FxRateDate
	}
	snapshot, err := s.fxSvc.ResolveSnapshot(ctx, fxDate)
	if err != nil {
		return nil, err
	}

	lastNumber, err := s.invoiceRepo.FindLastInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last invoice number: %w", err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	dueDate := req.DueDate
	if dueDate == nil && domain.InvoiceType(req.InvoiceType) == domain.InvoiceCredit && customer.PaymentTermsDays > 0 {
		d := req.InvoiceDate.AddDate(0, 0, customer.PaymentTermsDays)
		dueDate = &d
	}

	invoice := domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceNumber:       utils.NextDocumentNumber(utils.InvoicePrefix, lastNumber),
		InvoiceType:         domain.InvoiceType(req.InvoiceType),
		CustomerID:          req.CustomerID,
		InvoiceDate:         req.InvoiceDate,
		DueDate:             dueDate,
		Status:              domain.InvoiceDraft,
		TransactionCurrency: currency,
		Snapshot:            snapshot,
		Notes:               req.Notes,
		InternalNotes:       req.InternalNotes,
		AuditFields:         audit,
	}
	if req.DiscountPercent != nil {
		invoice.DiscountPercent = *req.DiscountPercent
	}

	invoice.Items, err = buildInvoiceItems(invoice.InvoiceID, req.Items, audit)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeInvoiceTotals(&invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoiceWithItems(ctx, invoice, invoice.Items); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "invoice created",
		"invoice_number", invoice.InvoiceNumber,
		"customer_id", invoice.CustomerID,
		"currency", string(invoice.TransactionCurrency),
		"total", invoice.TotalAmount.String())
	return &invoice, nil
}

func buildInvoiceItems(invoiceID string, reqs []dto.CreateInvoiceItemRequest, audit domain.AuditFields) ([]domain.InvoiceItem, error) {
	items := make([]domain.InvoiceItem, len(reqs))
	for i, r := range reqs {
		if r.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if r.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item unit price cannot be negative", apperrors.ErrValidation)
		}
		item := domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Notes:       r.Notes,
			AuditFields: audit,
		}
		if r.CostPrice != nil {
			item.CostPrice = *r.CostPrice
		}
		if r.DiscountPercent != nil {
			item.DiscountPercent = *r.DiscountPercent
		}
		if r.TaxRate != nil {
			item.TaxRate = *r.TaxRate
		}
		items[i] = item
	}
	return items, nil
}

func (s *salesService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, updaterUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be edited", apperrors.ErrInvalidOperation)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     updaterUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: updaterUserID,
	}

	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.DiscountPercent != nil {
		invoice.DiscountPercent = *req.DiscountPercent
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.InternalNotes != nil {
		invoice.InternalNotes = *req.InternalNotes
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = updaterUserID

	invoice.Items, err = buildInvoiceItems(invoice.InvoiceID, req.Items, audit)
	if err != nil {
		return nil, err
	}
	// The frozen snapshot is reused; only the amounts change.
	if err := s.recomputeInvoiceTotals(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoiceWithItems(ctx, *invoice, invoice.Items); err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *salesService) ConfirmInvoice(ctx context.Context, invoiceID string, override *dto.CreditOverrideRequest, updaterUserID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is not a draft", apperrors.ErrInvalidOperation, invoiceID)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", invoice.CustomerID, err)
	}

	if invoice.InvoiceType == domain.InvoiceCredit && customer.CreditLimit.IsPositive() {
		exposure := customer.CurrentBalanceUSD.Add(invoice.TotalAmountUSD)
		if exposure.GreaterThan(customer.CreditLimit) {
			if override == nil {
				return nil, fmt.Errorf("%w: exposure %s exceeds limit %s",
					apperrors.ErrCreditLimitExceeded, exposure.String(), customer.CreditLimit.String())
			}
			now := time.Now()
			ovr := domain.CreditLimitOverride{
				OverrideID:     uuid.NewString(),
				CustomerID:     customer.CustomerID,
				InvoiceID:      invoice.InvoiceID,
				OverrideAmount: exposure.Sub(customer.CreditLimit),
				Reason:         override.Reason,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     updaterUserID,
					LastUpdatedAt: now,
					LastUpdatedBy: updaterUserID,
				},
			}
			if err := s.creditRepo.SaveOverride(ctx, ovr); err != nil {
				return nil, fmt.Errorf("failed to record credit override: %w", err)
			}
			s.LogInfo(ctx, "credit limit override recorded",
				"customer_id", customer.CustomerID,
				"invoice_id", invoice.InvoiceID,
				"override_amount", ovr.OverrideAmount.String())
		}
	}

	delta, err := s.invoiceBalanceDelta(invoice)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.ConfirmInvoice(ctx, invoice.InvoiceID, domain.InvoiceConfirmed, invoice.CustomerID, delta, updaterUserID); err != nil {
		return nil, fmt.Errorf("failed to confirm invoice %s: %w", invoiceID, err)
	}

	invoice.Status = domain.InvoiceConfirmed
	s.LogInfo(ctx, "invoice confirmed",
		"invoice_number", invoice.InvoiceNumber,
		"balance_delta", delta.Local.String(),
		"balance_delta_usd", delta.USD.String())
	return invoice, nil
}

// invoiceBalanceDelta values the invoice's receivable effect in the customer
// ledger's legacy units and the settlement mirror, both through the invoice's
// own frozen snapshot.
func (s *salesService) invoiceBalanceDelta(invoice *domain.Invoice) (domain.BalanceDelta, error) {
	local, err := fxmath.OldUnits(invoice.TotalAmount, invoice.TransactionCurrency, invoice.Snapshot.USDToSYPOld, invoice.Snapshot.USDToSYPNew)
	if err != nil {
		return domain.BalanceDelta{}, err
	}
	return domain.BalanceDelta{Local: local, USD: invoice.TotalAmountUSD}, nil
}

func (s *salesService) CancelInvoice(ctx context.Context, invoiceID string, updaterUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceCancelled {
		return fmt.Errorf("%w: invoice %s is already cancelled", apperrors.ErrInvalidOperation, invoiceID)
	}
	if invoice.PaidAmount.IsPositive() {
		return fmt.Errorf("%w: invoice %s has payments applied", apperrors.ErrInvalidOperation, invoiceID)
	}

	delta := domain.BalanceDelta{}
	if invoice.Status != domain.InvoiceDraft {
		// A booked invoice reverses the exact delta it contributed, valued at
		// its frozen snapshot even if the ledger has moved since.
		booked, err := s.invoiceBalanceDelta(invoice)
		if err != nil {
			return err
		}
		delta = booked.Neg()
	}

	if err := s.invoiceRepo.CancelInvoice(ctx, invoice.InvoiceID, invoice.CustomerID, delta, updaterUserID); err != nil {
		return fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "invoice cancelled", "invoice_number", invoice.InvoiceNumber)
	return nil
}

func (s *salesService) ReceivePayment(ctx context.Context, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", req.CustomerID, err)
	}

	// Payments default to the settlement currency.
	currency := domain.CurrencyUSD
	if req.TransactionCurrency != "" {
		currency = domain.TransactionCurrency(req.TransactionCurrency)
		if !currency.Valid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, req.TransactionCurrency)
		}
	}

	// The payment freezes its own snapshot, independent of the invoices it settles.
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

	lastNumber, err := s.paymentRepo.FindLastPaymentNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last payment number: %w", err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	payment := domain.Payment{
		PaymentID:           uuid.NewString(),
		PaymentNumber:       utils.NextDocumentNumber(utils.ReceiptPrefix, lastNumber),
		CustomerID:          customer.CustomerID,
		InvoiceID:           req.InvoiceID,
		PaymentDate:         req.PaymentDate,
		TransactionCurrency: currency,
		Snapshot:            snapshot,
		Amount:              req.Amount,
		AmountUSD:           amountUSD,
		PaymentMethod:       domain.PaymentMethod(req.PaymentMethod),
		Reference:           req.Reference,
		Notes:               req.Notes,
		AuditFields:         audit,
	}

	allocations, invoiceUpdates, err := s.allocatePayment(ctx, &payment, req.Allocations, audit)
	if err != nil {
		return nil, err
	}

	// A payment credits the customer: its effect is the negative of its own
	// amount valued through its own snapshot.
	local, err := fxmath.OldUnits(payment.Amount, payment.TransactionCurrency, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	delta := domain.BalanceDelta{Local: local, USD: payment.AmountUSD}.Neg()

	if err := s.paymentRepo.SavePaymentWithAllocations(ctx, payment, allocations, invoiceUpdates, delta); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.LogInfo(ctx, "payment received",
		"payment_number", payment.PaymentNumber,
		"customer_id", payment.CustomerID,
		"amount", payment.Amount.String(),
		"amount_usd", payment.AmountUSD.String(),
		"allocations", len(allocations))
	return &payment, nil
}

// allocatePayment distributes a payment across invoices. Explicit allocations
// are honored as given; a legacy invoiceID takes the whole amount; otherwise
// the payment spreads FIFO across the customer's outstanding invoices.
// Allocation amounts are valued in each invoice's own currency through that
// invoice's frozen snapshot; the payment's USD value is the bridge between the
// two documents.
func (s *salesService) allocatePayment(ctx context.Context, payment *domain.Payment, explicit []dto.PaymentAllocationRequest, audit domain.AuditFields) ([]domain.PaymentAllocation, map[string]domain.InvoicePaymentUpdate, error) {
	allocations := make([]domain.PaymentAllocation, 0, len(explicit))
	updates := make(map[string]domain.InvoicePaymentUpdate)

	addAllocation := func(invoice *domain.Invoice, localAmount, usdAmount decimal.Decimal) {
		allocations = append(allocations, domain.PaymentAllocation{
			AllocationID: uuid.NewString(),
			PaymentID:    payment.PaymentID,
			InvoiceID:    invoice.InvoiceID,
			Amount:       localAmount,
			AmountUSD:    usdAmount,
			AuditFields:  audit,
		})
		invoice.PaidAmount = invoice.PaidAmount.Add(localAmount)
		invoice.PaidAmountUSD = invoice.PaidAmountUSD.Add(usdAmount)
		updates[invoice.InvoiceID] = settleInvoice(invoice)
	}

	switch {
	case len(explicit) > 0:
		allocatedUSD := decimal.Zero
		for _, ar := range explicit {
			if ar.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, nil, fmt.Errorf("%w: allocation amount must be positive", apperrors.ErrValidation)
			}
			invoice, err := s.allocatableInvoice(ctx, ar.InvoiceID, payment.CustomerID)
			if err != nil {
				return nil, nil, err
			}
			if ar.Amount.GreaterThan(invoice.RemainingAmount().Add(fullyPaidTolerance)) {
				return nil, nil, fmt.Errorf("%w: allocation %s exceeds remaining %s on invoice %s",
					apperrors.ErrValidation, ar.Amount.String(), invoice.RemainingAmount().String(), invoice.InvoiceNumber)
			}
			usdAmount, err := fxmath.ToUSD(&ar.Amount, invoice.TransactionCurrency, invoice.Snapshot.USDToSYPOld, invoice.Snapshot.USDToSYPNew)
			if err != nil {
				return nil, nil, err
			}
			allocatedUSD = allocatedUSD.Add(usdAmount)
			addAllocation(invoice, ar.Amount, usdAmount)
		}
		if allocatedUSD.GreaterThan(payment.AmountUSD.Add(fullyPaidTolerance)) {
			return nil, nil, fmt.Errorf("%w: allocations total %s exceed payment %s",
				apperrors.ErrValidation, allocatedUSD.String(), payment.AmountUSD.String())
		}

	case payment.InvoiceID != nil:
		invoice, err := s.allocatableInvoice(ctx, *payment.InvoiceID, payment.CustomerID)
		if err != nil {
			return nil, nil, err
		}
		usdAmount := decimal.Min(payment.AmountUSD, invoice.RemainingAmountUSD())
		if usdAmount.LessThanOrEqual(decimal.Zero) {
			break
		}
		localAmount, err := fxmath.FromUSD(&usdAmount, invoice.TransactionCurrency, invoice.Snapshot.USDToSYPOld, invoice.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, nil, err
		}
		addAllocation(invoice, localAmount, usdAmount)

	default:
		outstanding, err := s.invoiceRepo.ListOutstandingInvoices(ctx, payment.CustomerID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list outstanding invoices: %w", err)
		}
		remainingUSD := payment.AmountUSD
		for i := range outstanding {
			if remainingUSD.LessThanOrEqual(decimal.Zero) {
				break
			}
			invoice := &outstanding[i]
			usdAmount := decimal.Min(remainingUSD, invoice.RemainingAmountUSD())
			if usdAmount.LessThanOrEqual(decimal.Zero) {
				continue
			}
			localAmount, err := fxmath.FromUSD(&usdAmount, invoice.TransactionCurrency, invoice.Snapshot.USDToSYPOld, invoice.Snapshot.USDToSYPNew)
			if err != nil {
				return nil, nil, err
			}
			addAllocation(invoice, localAmount, usdAmount)
			remainingUSD = remainingUSD.Sub(usdAmount)
		}
	}

	return allocations, updates, nil
}

func (s *salesService) allocatableInvoice(ctx context.Context, invoiceID, customerID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.CustomerID != customerID {
		return nil, fmt.Errorf("%w: invoice %s belongs to another customer", apperrors.ErrValidation, invoiceID)
	}
	if invoice.Status != domain.InvoiceConfirmed && invoice.Status != domain.InvoicePartial {
		return nil, fmt.Errorf("%w: invoice %s is not open for payment", apperrors.ErrInvalidOperation, invoiceID)
	}
	return invoice, nil
}

// settleInvoice derives the post-allocation paid figures and status. Paid
// within one cent of the total counts as fully paid and snaps exactly to it.
func settleInvoice(invoice *domain.Invoice) domain.InvoicePaymentUpdate {
	update := domain.InvoicePaymentUpdate{
		PaidAmount:    invoice.PaidAmount,
		PaidAmountUSD: invoice.PaidAmountUSD,
		Status:        invoice.Status,
	}
	switch {
	case invoice.PaidAmount.GreaterThanOrEqual(invoice.TotalAmount.Sub(fullyPaidTolerance)):
		update.Status = domain.InvoicePaid
		update.PaidAmount = invoice.TotalAmount
		update.PaidAmountUSD = invoice.TotalAmountUSD
	case invoice.PaidAmount.IsPositive():
		update.Status = domain.InvoicePartial
	}
	return update
}

func (s *salesService) CreateSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, creatorUserID string) (*domain.SalesReturn, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", req.InvoiceID, err)
	}
	switch invoice.Status {
	case domain.InvoiceConfirmed, domain.InvoicePartial, domain.InvoicePaid:
	default:
		return nil, fmt.Errorf("%w: invoice %s is not booked", apperrors.ErrInvalidOperation, req.InvoiceID)
	}

	invoiceItems, err := s.invoiceRepo.FindInvoiceItems(ctx, invoice.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice items: %w", err)
	}
	itemsByID := make(map[string]*domain.InvoiceItem, len(invoiceItems))
	for i := range invoiceItems {
		itemsByID[invoiceItems[i].ItemID] = &invoiceItems[i]
	}

	returnedSoFar, err := s.returnRepo.SumReturnedQuantity(ctx, invoice.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum returned quantities: %w", err)
	}

	lastNumber, err := s.returnRepo.FindLastReturnNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find last return number: %w", err)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	ret := domain.SalesReturn{
		ReturnID:            uuid.NewString(),
		ReturnNumber:        utils.NextDocumentNumber(utils.ReturnPrefix, lastNumber),
		InvoiceID:           invoice.InvoiceID,
		ReturnDate:          req.ReturnDate,
		TransactionCurrency: invoice.TransactionCurrency,
		// The return inherits the invoice's frozen snapshot so the returned
		// value mirrors at the rate the invoice was priced at.
		Snapshot:    invoice.Snapshot,
		Reason:      req.Reason,
		Notes:       req.Notes,
		AuditFields: audit,
	}

	total := decimal.Zero
	items := make([]domain.SalesReturnItem, len(req.Items))
	for i, ri := range req.Items {
		src, ok := itemsByID[ri.InvoiceItemID]
		if !ok {
			return nil, fmt.Errorf("%w: invoice item %s", apperrors.ErrNotFound, ri.InvoiceItemID)
		}
		if ri.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: return quantity must be positive", apperrors.ErrValidation)
		}
		available := src.Quantity.Sub(returnedSoFar[ri.InvoiceItemID])
		if ri.Quantity.GreaterThan(available) {
			return nil, fmt.Errorf("%w: return quantity %s exceeds remaining %s for item %s",
				apperrors.ErrValidation, ri.Quantity.String(), available.String(), ri.InvoiceItemID)
		}
		item := domain.SalesReturnItem{
			ReturnItemID:    uuid.NewString(),
			ReturnID:        ret.ReturnID,
			InvoiceItemID:   src.ItemID,
			ProductID:       src.ProductID,
			Quantity:        ri.Quantity,
			UnitPrice:       src.UnitPrice,
			DiscountPercent: src.DiscountPercent,
			TaxRate:         src.TaxRate,
			Reason:          ri.Reason,
			AuditFields:     audit,
		}
		total = total.Add(item.LineTotal())
		items[i] = item
	}
	ret.Items = items
	ret.TotalAmount = total

	totalUSD, err := fxmath.ToUSD(&total, ret.TransactionCurrency, ret.Snapshot.USDToSYPOld, ret.Snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	ret.TotalAmountUSD = totalUSD

	local, err := fxmath.OldUnits(total, ret.TransactionCurrency, ret.Snapshot.USDToSYPOld, ret.Snapshot.USDToSYPNew)
	if err != nil {
		return nil, err
	}
	delta := domain.BalanceDelta{Local: local, USD: totalUSD}.Neg()

	// The invoice keeps its totals; the return only credits the customer.
	invoiceUpdate := domain.InvoicePaymentUpdate{
		PaidAmount:    invoice.PaidAmount,
		PaidAmountUSD: invoice.PaidAmountUSD,
		Status:        invoice.Status,
	}

	if err := s.returnRepo.SaveReturnWithItems(ctx, ret, items, invoice.CustomerID, invoiceUpdate, delta); err != nil {
		return nil, fmt.Errorf("failed to save sales return: %w", err)
	}

	s.LogInfo(ctx, "sales return booked",
		"return_number", ret.ReturnNumber,
		"invoice_number", invoice.InvoiceNumber,
		"total", ret.TotalAmount.String(),
		"total_usd", ret.TotalAmountUSD.String())
	return &ret, nil
}

// ReconcileInvoiceStatuses resweeps a customer's open invoices and snaps the
// ones paid within tolerance to PAID. Running it again is a no-op because
// snapped invoices leave the outstanding set.
func (s *salesService) ReconcileInvoiceStatuses(ctx context.Context, customerID string, updaterUserID string) (int, error) {
	outstanding, err := s.invoiceRepo.ListOutstandingInvoices(ctx, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list outstanding invoices: %w", err)
	}

	reconciled := 0
	for i := range outstanding {
		invoice := &outstanding[i]
		if invoice.PaidAmount.LessThan(invoice.TotalAmount.Sub(fullyPaidTolerance)) {
			continue
		}
		update := domain.InvoicePaymentUpdate{
			PaidAmount:    invoice.TotalAmount,
			PaidAmountUSD: invoice.TotalAmountUSD,
			Status:        domain.InvoicePaid,
		}
		if err := s.invoiceRepo.UpdateInvoicePayment(ctx, invoice.InvoiceID, update, updaterUserID); err != nil {
			return reconciled, fmt.Errorf("failed to reconcile invoice %s: %w", invoice.InvoiceID, err)
		}
		reconciled++
	}

	if reconciled > 0 {
		s.LogInfo(ctx, "invoice statuses reconciled", "customer_id", customerID, "count", reconciled)
	}
	return reconciled, nil
}

func (s *salesService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	items, err := s.invoiceRepo.FindInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	invoice.Items = items
	return invoice, nil
}

func (s *salesService) ListInvoicesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	invoices, token, err := s.invoiceRepo.ListInvoicesByCustomer(ctx, customerID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, token, nil
}

func (s *salesService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentAllocation, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get payment: %w", err)
	}
	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get payment allocations: %w", err)
	}
	return payment, allocations, nil
}

func (s *salesService) ListPaymentsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	payments, token, err := s.paymentRepo.ListPaymentsByCustomer(ctx, customerID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, token, nil
}

func (s *salesService) GetSalesReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	ret, err := s.returnRepo.FindReturnByID(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales return: %w", err)
	}
	items, err := s.returnRepo.FindReturnItems(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales return items: %w", err)
	}
	ret.Items = items
	return ret, nil
}
