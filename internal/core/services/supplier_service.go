package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/utils/fxmath"
)

// supplierService provides business logic for supplier management and
// supplier account statements.
type supplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	fxSvc        portssvc.FXRateSvcFacade
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(
	supplierRepo portsrepo.SupplierRepositoryFacade,
	purchaseRepo portsrepo.PurchaseRepositoryFacade,
	fxSvc portssvc.FXRateSvcFacade,
) portssvc.SupplierSvcFacade {
	return &supplierService{
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		fxSvc:        fxSvc,
	}
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	existing, err := s.supplierRepo.FindSupplierByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check supplier code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: supplier code %s already in use", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		NameEn:     req.NameEn,
		Phone:      req.Phone,
		Address:    req.Address,
		Notes:      req.Notes,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.PaymentTermsDays != nil {
		supplier.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.OpeningBalance != nil && !req.OpeningBalance.IsZero() {
		snapshot, err := s.fxSvc.ResolveSnapshot(ctx, now)
		if err != nil {
			return nil, err
		}
		openingUSD, err := fxmath.ToUSD(req.OpeningBalance, domain.CurrencySYPOld, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		supplier.OpeningBalance = *req.OpeningBalance
		supplier.OpeningBalanceUSD = openingUSD
		supplier.CurrentBalance = *req.OpeningBalance
		supplier.CurrentBalanceUSD = openingUSD
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	s.LogInfo(ctx, "supplier created", "supplier_id", supplier.SupplierID, "code", supplier.Code)
	return &supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, updaterUserID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	if supplier.IsDeleted {
		return nil, fmt.Errorf("%w: supplier %s is deleted", apperrors.ErrInvalidOperation, supplierID)
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.NameEn != nil {
		supplier.NameEn = *req.NameEn
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.PaymentTermsDays != nil {
		supplier.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	supplier.LastUpdatedAt = time.Now()
	supplier.LastUpdatedBy = updaterUserID

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID string, deleterUserID string) error {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	if !supplier.CurrentBalance.IsZero() || !supplier.CurrentBalanceUSD.IsZero() {
		return fmt.Errorf("%w: supplier %s has a non-zero balance", apperrors.ErrInvalidOperation, supplierID)
	}
	if err := s.supplierRepo.SoftDeleteSupplier(ctx, supplierID, deleterUserID); err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	s.LogInfo(ctx, "supplier deleted", "supplier_id", supplierID)
	return nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, limit int, nextToken *string) ([]domain.Supplier, *string, error) {
	suppliers, token, err := s.supplierRepo.ListSuppliers(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, token, nil
}

// GetSupplierStatement assembles the supplier ledger. Received order value
// lands in the credit column and grows the payable, supplier payments land in
// the debit column and reduce it, so the running balance carries the same sign
// as the supplier's stored current balance. Every row is valued through the
// originating document's frozen snapshot.
func (s *supplierService) GetSupplierStatement(ctx context.Context, supplierID string, from, to *time.Time) (*domain.Statement, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}

	orders, err := s.purchaseRepo.ListOrdersByDateRange(ctx, supplierID, nil, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	payments, err := s.purchaseRepo.ListSupplierPaymentsByDateRange(ctx, supplierID, nil, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier payments: %w", err)
	}

	b := statementBuilder{creditIncreases: true}
	for i := range orders {
		o := &orders[i]
		switch o.Status {
		case domain.PurchasePartial, domain.PurchaseReceived:
		default:
			continue
		}
		value, valueUSD, err := receivedOrderValue(ctx, s.purchaseRepo, o)
		if err != nil {
			return nil, err
		}
		oldUnits, err := fxmath.OldUnits(value, o.TransactionCurrency, o.Snapshot.USDToSYPOld, o.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		b.addCredit(o.OrderDate, domain.EntryPurchase, o.OrderNumber, o.Notes, o.TransactionCurrency, value, valueUSD, oldUnits)
	}
	for i := range payments {
		p := &payments[i]
		oldUnits, err := fxmath.OldUnits(p.Amount, p.TransactionCurrency, p.Snapshot.USDToSYPOld, p.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		b.addDebit(p.PaymentDate, domain.EntryPayment, p.PaymentNumber, p.Notes, p.TransactionCurrency, p.Amount, p.AmountUSD, oldUnits)
	}

	return b.build(supplier.SupplierID, supplier.Name, supplier.Code, from, to, supplier.OpeningBalance, supplier.OpeningBalanceUSD), nil
}

// receivedOrderValue is the value of the goods actually received on one order,
// at the order's pricing, with the settlement mirror through the order's
// frozen snapshot.
func receivedOrderValue(ctx context.Context, repo portsrepo.PurchaseRepositoryFacade, order *domain.PurchaseOrder) (decimal.Decimal, decimal.Decimal, error) {
	items, err := repo.FindOrderItems(ctx, order.OrderID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to load order items: %w", err)
	}
	value := decimal.Zero
	for i := range items {
		it := &items[i]
		lineValue := it.ReceivedQuantity.Mul(it.UnitPrice)
		lineValue = lineValue.Sub(lineValue.Mul(it.DiscountPercent).Div(decimal.NewFromInt(100)))
		value = value.Add(lineValue)
	}
	valueUSD, err := fxmath.ToUSD(&value, order.TransactionCurrency, order.Snapshot.USDToSYPOld, order.Snapshot.USDToSYPNew)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return value, valueUSD, nil
}
