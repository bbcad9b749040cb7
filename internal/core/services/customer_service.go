package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/utils/fxmath"
)

// customerService provides business logic for customer management and
// customer account statements.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
	returnRepo   portsrepo.SalesReturnRepositoryFacade
	fxSvc        portssvc.FXRateSvcFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo portsrepo.CustomerRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	returnRepo portsrepo.SalesReturnRepositoryFacade,
	fxSvc portssvc.FXRateSvcFacade,
) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		returnRepo:   returnRepo,
		fxSvc:        fxSvc,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	existing, err := s.customerRepo.FindCustomerByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check customer code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: customer code %s already in use", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		NameEn:       req.NameEn,
		CustomerType: domain.CustomerIndividual,
		Phone:        req.Phone,
		Address:      req.Address,
		Notes:        req.Notes,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.CustomerType != "" {
		customer.CustomerType = domain.CustomerType(req.CustomerType)
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		customer.CreditLimit = *req.CreditLimit
	}
	if req.PaymentTermsDays != nil {
		customer.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.DiscountPercent != nil {
		customer.DiscountPercent = *req.DiscountPercent
	}
	if req.OpeningBalance != nil && !req.OpeningBalance.IsZero() {
		// Opening balances are stated in legacy local units; the settlement
		// mirror is valued at the rate of the day the customer is created.
		snapshot, err := s.fxSvc.ResolveSnapshot(ctx, now)
		if err != nil {
			return nil, err
		}
		openingUSD, err := fxmath.ToUSD(req.OpeningBalance, domain.CurrencySYPOld, snapshot.USDToSYPOld, snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		customer.OpeningBalance = *req.OpeningBalance
		customer.OpeningBalanceUSD = openingUSD
		customer.CurrentBalance = *req.OpeningBalance
		customer.CurrentBalanceUSD = openingUSD
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.LogInfo(ctx, "customer created", "customer_id", customer.CustomerID, "code", customer.Code)
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	if customer.IsDeleted {
		return nil, fmt.Errorf("%w: customer %s is deleted", apperrors.ErrInvalidOperation, customerID)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.NameEn != nil {
		customer.NameEn = *req.NameEn
	}
	if req.CustomerType != nil {
		customer.CustomerType = domain.CustomerType(*req.CustomerType)
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		customer.CreditLimit = *req.CreditLimit
	}
	if req.PaymentTermsDays != nil {
		customer.PaymentTermsDays = *req.PaymentTermsDays
	}
	if req.DiscountPercent != nil {
		customer.DiscountPercent = *req.DiscountPercent
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = updaterUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string, deleterUserID string) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	if !customer.CurrentBalance.IsZero() || !customer.CurrentBalanceUSD.IsZero() {
		return fmt.Errorf("%w: customer %s has a non-zero balance", apperrors.ErrInvalidOperation, customerID)
	}
	if err := s.customerRepo.SoftDeleteCustomer(ctx, customerID, deleterUserID); err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	s.LogInfo(ctx, "customer deleted", "customer_id", customerID)
	return nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	customers, token, err := s.customerRepo.ListCustomers(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, token, nil
}

// GetCustomerStatement assembles the customer ledger from booked invoices,
// payments and returns. Every row is valued through its own document's frozen
// snapshot; rows before the range start fold into the opening balance.
func (s *customerService) GetCustomerStatement(ctx context.Context, customerID string, from, to *time.Time) (*domain.Statement, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}

	// The full history up to the range end is needed to derive the opening
	// balance; the builder splits rows around the range start.
	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, customerID, nil, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	payments, err := s.paymentRepo.ListPaymentsByDateRange(ctx, customerID, nil, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	returns, err := s.returnRepo.ListReturnsByDateRange(ctx, customerID, nil, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}

	var b statementBuilder
	for i := range invoices {
		inv := &invoices[i]
		switch inv.Status {
		case domain.InvoiceDraft, domain.InvoiceCancelled:
			continue
		}
		oldUnits, err := fxmath.OldUnits(inv.TotalAmount, inv.TransactionCurrency, inv.Snapshot.USDToSYPOld, inv.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		b.addDebit(inv.InvoiceDate, domain.EntryInvoice, inv.InvoiceNumber, inv.Notes, inv.TransactionCurrency, inv.TotalAmount, inv.TotalAmountUSD, oldUnits)
	}
	for i := range payments {
		p := &payments[i]
		oldUnits, err := fxmath.OldUnits(p.Amount, p.TransactionCurrency, p.Snapshot.USDToSYPOld, p.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		b.addCredit(p.PaymentDate, domain.EntryPayment, p.PaymentNumber, p.Notes, p.TransactionCurrency, p.Amount, p.AmountUSD, oldUnits)
	}
	for i := range returns {
		r := &returns[i]
		oldUnits, err := fxmath.OldUnits(r.TotalAmount, r.TransactionCurrency, r.Snapshot.USDToSYPOld, r.Snapshot.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		b.addCredit(r.ReturnDate, domain.EntryReturn, r.ReturnNumber, r.Reason, r.TransactionCurrency, r.TotalAmount, r.TotalAmountUSD, oldUnits)
	}

	return b.build(customer.CustomerID, customer.Name, customer.Code, from, to, customer.OpeningBalance, customer.OpeningBalanceUSD), nil
}
