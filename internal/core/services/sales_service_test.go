package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/core/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, customerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Invoice), token, args.Error(2)
}

func (m *MockInvoiceRepository) ListOutstandingInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLastInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceWithItems(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ConfirmInvoice(ctx context.Context, invoiceID string, status domain.InvoiceStatus, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, invoiceID, status, customerID, delta, updatedBy)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelInvoice(ctx context.Context, invoiceID string, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, invoiceID, customerID, delta, updatedBy)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoicePayment(ctx context.Context, invoiceID string, update domain.InvoicePaymentUpdate, updatedBy string) error {
	args := m.Called(ctx, invoiceID, update, updatedBy)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAllocation), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, customerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Payment), token, args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindLastPaymentNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentWithAllocations(ctx context.Context, payment domain.Payment, allocations []domain.PaymentAllocation, invoiceUpdates map[string]domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error {
	args := m.Called(ctx, payment, allocations, invoiceUpdates, delta)
	return args.Error(0)
}

// --- Mock SalesReturnRepository ---
type MockSalesReturnRepository struct {
	mock.Mock
}

func (m *MockSalesReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.SalesReturn, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindReturnItems(ctx context.Context, returnID string) ([]domain.SalesReturnItem, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesReturnItem), args.Error(1)
}

func (m *MockSalesReturnRepository) ListReturnsByInvoice(ctx context.Context, invoiceID string) ([]domain.SalesReturn, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) ListReturnsByDateRange(ctx context.Context, customerID string, from, to *time.Time) ([]domain.SalesReturn, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) SumReturnedQuantity(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockSalesReturnRepository) FindLastReturnNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSalesReturnRepository) SaveReturnWithItems(ctx context.Context, ret domain.SalesReturn, items []domain.SalesReturnItem, customerID string, invoiceUpdate domain.InvoicePaymentUpdate, delta domain.BalanceDelta) error {
	args := m.Called(ctx, ret, items, customerID, invoiceUpdate, delta)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Customer), token, args.Error(2)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SoftDeleteCustomer(ctx context.Context, customerID string, deletedBy string) error {
	args := m.Called(ctx, customerID, deletedBy)
	return args.Error(0)
}

func (m *MockCustomerRepository) AdjustCustomerBalance(ctx context.Context, customerID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, customerID, delta, updatedBy)
	return args.Error(0)
}

// --- Mock CreditOverrideRepository ---
type MockCreditOverrideRepository struct {
	mock.Mock
}

func (m *MockCreditOverrideRepository) ListOverridesByCustomer(ctx context.Context, customerID string) ([]domain.CreditLimitOverride, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditLimitOverride), args.Error(1)
}

func (m *MockCreditOverrideRepository) SaveOverride(ctx context.Context, override domain.CreditLimitOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

// --- Mock FXRateService ---
type MockFXRateService struct {
	mock.Mock
}

func (m *MockFXRateService) GetRateForDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

func (m *MockFXRateService) ResolveSnapshot(ctx context.Context, date time.Time) (domain.FXSnapshot, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.FXSnapshot), args.Error(1)
}

func (m *MockFXRateService) ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyExchangeRate), args.Error(1)
}

func (m *MockFXRateService) CreateDailyRate(ctx context.Context, req dto.CreateDailyRateRequest, creatorUserID string) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

func (m *MockFXRateService) UpdateDailyRate(ctx context.Context, rateID string, req dto.UpdateDailyRateRequest, updaterUserID string) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, rateID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

var _ portssvc.FXRateSvcFacade = (*MockFXRateService)(nil)

// --- Test Suite ---
type SalesServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockPaymentRepo  *MockPaymentRepository
	mockReturnRepo   *MockSalesReturnRepository
	mockCustomerRepo *MockCustomerRepository
	mockCreditRepo   *MockCreditOverrideRepository
	mockFXSvc        *MockFXRateService
	service          portssvc.SalesSvcFacade
}

func (suite *SalesServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockReturnRepo = new(MockSalesReturnRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCreditRepo = new(MockCreditOverrideRepository)
	suite.mockFXSvc = new(MockFXRateService)
	suite.service = services.NewSalesService(
		suite.mockInvoiceRepo,
		suite.mockPaymentRepo,
		suite.mockReturnRepo,
		suite.mockCustomerRepo,
		suite.mockCreditRepo,
		suite.mockFXSvc,
	)
}

// testSnapshot is the rate pair most tests freeze: 1 USD = 1,500,000 old SYP
// = 15,000 new SYP.
func testSnapshot() domain.FXSnapshot {
	rateDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	oldRate := decimal.NewFromInt(1500000)
	newRate := decimal.NewFromInt(15000)
	return domain.FXSnapshot{
		RateDate:    &rateDate,
		USDToSYPOld: &oldRate,
		USDToSYPNew: &newRate,
	}
}

func activeCustomer() *domain.Customer {
	return &domain.Customer{
		CustomerID:   uuid.NewString(),
		Code:         "C-001",
		Name:         "عميل تجريبي",
		CustomerType: domain.CustomerCompany,
		IsActive:     true,
	}
}

// --- Invoice Tests ---

func (suite *SalesServiceTestSuite) TestCreateInvoice_ComputesTotalsAndSettlementMirror() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	customer := activeCustomer()
	invoiceDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	req := dto.CreateInvoiceRequest{
		CustomerID:          customer.CustomerID,
		InvoiceType:         "cash",
		TransactionCurrency: "SYP_NEW",
		InvoiceDate:         invoiceDate,
		Items: []dto.CreateInvoiceItemRequest{
			{ProductName: "سكر", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(15000)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, invoiceDate).Return(testSnapshot(), nil).Once()
	suite.mockInvoiceRepo.On("FindLastInvoiceNumber", ctx).Return("INV-000041", nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithItems", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-000042" &&
			inv.Status == domain.InvoiceDraft &&
			inv.TotalAmount.Equal(decimal.NewFromInt(150000)) &&
			inv.TotalAmountUSD.Equal(decimal.RequireFromString("10.00")) &&
			inv.Snapshot.USDToSYPNew.Equal(decimal.NewFromInt(15000))
	}), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal("INV-000042", invoice.InvoiceNumber)
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(150000)))
	suite.True(invoice.TotalAmountUSD.Equal(decimal.RequireFromString("10.00")))
	suite.Len(invoice.Items, 1)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockFXSvc.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_LineDiscountAndTax() {
	ctx := context.Background()
	customer := activeCustomer()
	invoiceDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	// 100 USD line, 10% discount, 15% tax: taxable 90, tax 13.5, total 103.5.
	req := dto.CreateInvoiceRequest{
		CustomerID:          customer.CustomerID,
		InvoiceType:         "cash",
		TransactionCurrency: "USD",
		InvoiceDate:         invoiceDate,
		Items: []dto.CreateInvoiceItemRequest{
			{
				ProductName:     "Widget",
				Quantity:        decimal.NewFromInt(10),
				UnitPrice:       decimal.NewFromInt(10),
				DiscountPercent: decimalPtr(decimal.NewFromInt(10)),
				TaxRate:         decimalPtr(decimal.NewFromInt(15)),
			},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, invoiceDate).Return(testSnapshot(), nil).Once()
	suite.mockInvoiceRepo.On("FindLastInvoiceNumber", ctx).Return("", nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithItems", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Subtotal.Equal(decimal.NewFromInt(100)) &&
			inv.DiscountAmount.Equal(decimal.NewFromInt(10)) &&
			inv.TaxAmount.Equal(decimal.RequireFromString("13.5")) &&
			inv.TotalAmount.Equal(decimal.RequireFromString("103.5")) &&
			inv.TotalAmountUSD.Equal(decimal.RequireFromString("103.50"))
	}), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("INV-000001", invoice.InvoiceNumber)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_DefaultsCurrencyAndDueDate() {
	ctx := context.Background()
	customer := activeCustomer()
	customer.PaymentTermsDays = 30
	invoiceDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	// No currency and no due date: legacy SYP_OLD and the customer's payment
	// terms fill them in.
	req := dto.CreateInvoiceRequest{
		CustomerID:  customer.CustomerID,
		InvoiceType: "credit",
		InvoiceDate: invoiceDate,
		Items: []dto.CreateInvoiceItemRequest{
			{ProductName: "رز", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1500000)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, invoiceDate).Return(testSnapshot(), nil).Once()
	suite.mockInvoiceRepo.On("FindLastInvoiceNumber", ctx).Return("", nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceWithItems", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.TransactionCurrency == domain.CurrencySYPOld &&
			inv.DueDate != nil &&
			inv.DueDate.Equal(invoiceDate.AddDate(0, 0, 30)) &&
			inv.TotalAmountUSD.Equal(decimal.RequireFromString("1.00"))
	}), mock.AnythingOfType("[]domain.InvoiceItem")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencySYPOld, invoice.TransactionCurrency)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_InactiveCustomer() {
	ctx := context.Background()
	customer := activeCustomer()
	customer.IsActive = false

	req := dto.CreateInvoiceRequest{
		CustomerID:          customer.CustomerID,
		InvoiceType:         "cash",
		TransactionCurrency: "USD",
		InvoiceDate:         time.Now(),
		Items: []dto.CreateInvoiceItemRequest{
			{ProductName: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceWithItems")
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_UnsupportedCurrency() {
	ctx := context.Background()
	customer := activeCustomer()

	req := dto.CreateInvoiceRequest{
		CustomerID:          customer.CustomerID,
		InvoiceType:         "cash",
		TransactionCurrency: "EUR",
		InvoiceDate:         time.Now(),
		Items: []dto.CreateInvoiceItemRequest{
			{ProductName: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrUnsupportedCurrency)
}

func (suite *SalesServiceTestSuite) TestConfirmInvoice_AppliesDualCurrencyDelta() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	customer := activeCustomer()
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceNumber:       "INV-000007",
		InvoiceType:         domain.InvoiceCash,
		CustomerID:          customer.CustomerID,
		Status:              domain.InvoiceDraft,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(150000),
		TotalAmountUSD:      decimal.RequireFromString("10.00"),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	// 150,000 new SYP is 15,000,000 legacy units in the party ledger.
	suite.mockInvoiceRepo.On("ConfirmInvoice", ctx, invoice.InvoiceID, domain.InvoiceConfirmed, customer.CustomerID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(15000000)) && d.USD.Equal(decimal.RequireFromString("10.00"))
		}), updaterUserID).Return(nil).Once()

	confirmed, err := suite.service.ConfirmInvoice(ctx, invoice.InvoiceID, nil, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceConfirmed, confirmed.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestConfirmInvoice_CreditLimitExceeded() {
	ctx := context.Background()
	customer := activeCustomer()
	customer.CreditLimit = decimal.NewFromInt(95)
	customer.CurrentBalanceUSD = decimal.NewFromInt(90)
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceType:         domain.InvoiceCredit,
		CustomerID:          customer.CustomerID,
		Status:              domain.InvoiceDraft,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(10),
		TotalAmountUSD:      decimal.NewFromInt(10),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()

	confirmed, err := suite.service.ConfirmInvoice(ctx, invoice.InvoiceID, nil, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(confirmed)
	suite.ErrorIs(err, apperrors.ErrCreditLimitExceeded)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ConfirmInvoice")
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "SaveOverride")
}

func (suite *SalesServiceTestSuite) TestConfirmInvoice_CreditLimitOverride() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	customer := activeCustomer()
	customer.CreditLimit = decimal.NewFromInt(95)
	customer.CurrentBalanceUSD = decimal.NewFromInt(90)
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceType:         domain.InvoiceCredit,
		CustomerID:          customer.CustomerID,
		Status:              domain.InvoiceDraft,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(10),
		TotalAmountUSD:      decimal.NewFromInt(10),
	}
	override := &dto.CreditOverrideRequest{Reason: "موافقة المدير"}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockCreditRepo.On("SaveOverride", ctx, mock.MatchedBy(func(o domain.CreditLimitOverride) bool {
		return o.CustomerID == customer.CustomerID &&
			o.InvoiceID == invoice.InvoiceID &&
			o.OverrideAmount.Equal(decimal.NewFromInt(5)) &&
			o.Reason == override.Reason
	})).Return(nil).Once()
	suite.mockInvoiceRepo.On("ConfirmInvoice", ctx, invoice.InvoiceID, domain.InvoiceConfirmed, customer.CustomerID,
		mock.AnythingOfType("domain.BalanceDelta"), updaterUserID).Return(nil).Once()

	confirmed, err := suite.service.ConfirmInvoice(ctx, invoice.InvoiceID, override, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceConfirmed, confirmed.Status)
	suite.mockCreditRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCancelInvoice_ReversesFrozenDelta() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceNumber:       "INV-000009",
		CustomerID:          uuid.NewString(),
		Status:              domain.InvoiceConfirmed,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(150000),
		TotalAmountUSD:      decimal.RequireFromString("10.00"),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("CancelInvoice", ctx, invoice.InvoiceID, invoice.CustomerID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(-15000000)) && d.USD.Equal(decimal.RequireFromString("-10.00"))
		}), updaterUserID).Return(nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, updaterUserID)

	suite.Require().NoError(err)
	// The reversal is valued at the invoice's frozen pair; the ledger is never consulted.
	suite.mockFXSvc.AssertNotCalled(suite.T(), "ResolveSnapshot")
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCancelInvoice_DraftHasNoBalanceEffect() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		CustomerID:          uuid.NewString(),
		Status:              domain.InvoiceDraft,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(100),
		TotalAmountUSD:      decimal.NewFromInt(100),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("CancelInvoice", ctx, invoice.InvoiceID, invoice.CustomerID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool { return d.IsZero() }),
		mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCancelInvoice_WithPaymentsRefused() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:   uuid.NewString(),
		Status:      domain.InvoicePartial,
		TotalAmount: decimal.NewFromInt(100),
		PaidAmount:  decimal.NewFromInt(40),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	err := suite.service.CancelInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CancelInvoice")
}

// --- Payment Tests ---

func outstandingUSDInvoice(customerID string, total int64) domain.Invoice {
	return domain.Invoice{
		InvoiceID:           uuid.NewString(),
		CustomerID:          customerID,
		Status:              domain.InvoiceConfirmed,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(total),
		TotalAmountUSD:      decimal.NewFromInt(total),
	}
}

func (suite *SalesServiceTestSuite) TestReceivePayment_FIFOAllocation() {
	ctx := context.Background()
	customer := activeCustomer()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	inv1 := outstandingUSDInvoice(customer.CustomerID, 10)
	inv2 := outstandingUSDInvoice(customer.CustomerID, 10)

	req := dto.CreatePaymentRequest{
		CustomerID:          customer.CustomerID,
		Amount:              decimal.NewFromInt(15),
		TransactionCurrency: "USD",
		PaymentDate:         paymentDate,
		PaymentMethod:       "cash",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPaymentRepo.On("FindLastPaymentNumber", ctx).Return("", nil).Once()
	suite.mockInvoiceRepo.On("ListOutstandingInvoices", ctx, customer.CustomerID).Return([]domain.Invoice{inv1, inv2}, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentWithAllocations", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PaymentNumber == "REC-000001" && p.AmountUSD.Equal(decimal.RequireFromString("15.00"))
		}),
		mock.MatchedBy(func(allocs []domain.PaymentAllocation) bool {
			return len(allocs) == 2 &&
				allocs[0].InvoiceID == inv1.InvoiceID &&
				allocs[0].AmountUSD.Equal(decimal.NewFromInt(10)) &&
				allocs[1].InvoiceID == inv2.InvoiceID &&
				allocs[1].AmountUSD.Equal(decimal.NewFromInt(5))
		}),
		mock.MatchedBy(func(updates map[string]domain.InvoicePaymentUpdate) bool {
			u1, ok1 := updates[inv1.InvoiceID]
			u2, ok2 := updates[inv2.InvoiceID]
			return ok1 && ok2 &&
				u1.Status == domain.InvoicePaid && u1.PaidAmount.Equal(inv1.TotalAmount) &&
				u2.Status == domain.InvoicePartial && u2.PaidAmount.Equal(decimal.NewFromInt(5))
		}),
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			// 15 USD through the snapshot is 22,500,000 legacy units, credited.
			return d.Local.Equal(decimal.NewFromInt(-22500000)) && d.USD.Equal(decimal.RequireFromString("-15.00"))
		}),
	).Return(nil).Once()

	payment, err := suite.service.ReceivePayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal("REC-000001", payment.PaymentNumber)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestReceivePayment_DefaultsToSettlementCurrency() {
	ctx := context.Background()
	customer := activeCustomer()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	invoice := outstandingUSDInvoice(customer.CustomerID, 10)

	// No currency on the request: the payment is taken in USD.
	req := dto.CreatePaymentRequest{
		CustomerID:    customer.CustomerID,
		Amount:        decimal.NewFromInt(10),
		PaymentDate:   paymentDate,
		PaymentMethod: "cash",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPaymentRepo.On("FindLastPaymentNumber", ctx).Return("", nil).Once()
	suite.mockInvoiceRepo.On("ListOutstandingInvoices", ctx, customer.CustomerID).Return([]domain.Invoice{invoice}, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentWithAllocations", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.TransactionCurrency == domain.CurrencyUSD &&
				p.Amount.Equal(decimal.NewFromInt(10)) &&
				p.AmountUSD.Equal(decimal.RequireFromString("10.00"))
		}),
		mock.Anything, mock.Anything,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(-15000000)) && d.USD.Equal(decimal.RequireFromString("-10.00"))
		}),
	).Return(nil).Once()

	payment, err := suite.service.ReceivePayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyUSD, payment.TransactionCurrency)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestReceivePayment_LegacySingleInvoiceClampsToRemaining() {
	ctx := context.Background()
	customer := activeCustomer()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	invoice := outstandingUSDInvoice(customer.CustomerID, 10)

	req := dto.CreatePaymentRequest{
		CustomerID:          customer.CustomerID,
		InvoiceID:           &invoice.InvoiceID,
		Amount:              decimal.NewFromInt(20),
		TransactionCurrency: "USD",
		PaymentDate:         paymentDate,
		PaymentMethod:       "bank",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPaymentRepo.On("FindLastPaymentNumber", ctx).Return("REC-000014", nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentWithAllocations", ctx,
		mock.AnythingOfType("domain.Payment"),
		mock.MatchedBy(func(allocs []domain.PaymentAllocation) bool {
			// The allocation stops at the invoice's remaining amount.
			return len(allocs) == 1 && allocs[0].AmountUSD.Equal(decimal.NewFromInt(10))
		}),
		mock.MatchedBy(func(updates map[string]domain.InvoicePaymentUpdate) bool {
			u, ok := updates[invoice.InvoiceID]
			return ok && u.Status == domain.InvoicePaid
		}),
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			// The customer is credited the full payment, not just the allocated part.
			return d.USD.Equal(decimal.RequireFromString("-20.00"))
		}),
	).Return(nil).Once()

	payment, err := suite.service.ReceivePayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("REC-000015", payment.PaymentNumber)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestReceivePayment_ExplicitAllocationExceedsRemaining() {
	ctx := context.Background()
	customer := activeCustomer()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	invoice := outstandingUSDInvoice(customer.CustomerID, 10)

	req := dto.CreatePaymentRequest{
		CustomerID:          customer.CustomerID,
		Amount:              decimal.NewFromInt(50),
		TransactionCurrency: "USD",
		PaymentDate:         paymentDate,
		PaymentMethod:       "cash",
		Allocations: []dto.PaymentAllocationRequest{
			{InvoiceID: invoice.InvoiceID, Amount: decimal.NewFromInt(50)},
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customer.CustomerID).Return(customer, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPaymentRepo.On("FindLastPaymentNumber", ctx).Return("", nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	payment, err := suite.service.ReceivePayment(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentWithAllocations")
}

func (suite *SalesServiceTestSuite) TestReceivePayment_NonPositiveAmount() {
	ctx := context.Background()

	payment, err := suite.service.ReceivePayment(ctx, dto.CreatePaymentRequest{
		CustomerID:          uuid.NewString(),
		Amount:              decimal.Zero,
		TransactionCurrency: "USD",
		PaymentDate:         time.Now(),
		PaymentMethod:       "cash",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "FindCustomerByID")
}

// --- Reconciliation Tests ---

func (suite *SalesServiceTestSuite) TestReconcileInvoiceStatuses_SnapsWithinTolerance() {
	ctx := context.Background()
	customerID := uuid.NewString()
	updaterUserID := uuid.NewString()

	almostPaid := outstandingUSDInvoice(customerID, 1000)
	almostPaid.Status = domain.InvoicePartial
	almostPaid.PaidAmount = decimal.RequireFromString("999.99")
	almostPaid.PaidAmountUSD = decimal.RequireFromString("999.99")

	stillOpen := outstandingUSDInvoice(customerID, 500)
	stillOpen.Status = domain.InvoicePartial
	stillOpen.PaidAmount = decimal.NewFromInt(100)
	stillOpen.PaidAmountUSD = decimal.NewFromInt(100)

	suite.mockInvoiceRepo.On("ListOutstandingInvoices", ctx, customerID).Return([]domain.Invoice{almostPaid, stillOpen}, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoicePayment", ctx, almostPaid.InvoiceID,
		mock.MatchedBy(func(u domain.InvoicePaymentUpdate) bool {
			// Within one cent counts as paid and snaps to the exact total.
			return u.Status == domain.InvoicePaid &&
				u.PaidAmount.Equal(decimal.NewFromInt(1000)) &&
				u.PaidAmountUSD.Equal(decimal.NewFromInt(1000))
		}), updaterUserID).Return(nil).Once()

	reconciled, err := suite.service.ReconcileInvoiceStatuses(ctx, customerID, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(1, reconciled)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())

	// Snapped invoices leave the outstanding set, so a second sweep is a no-op.
	suite.mockInvoiceRepo.On("ListOutstandingInvoices", ctx, customerID).Return([]domain.Invoice{stillOpen}, nil).Once()

	reconciled, err = suite.service.ReconcileInvoiceStatuses(ctx, customerID, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(0, reconciled)
}

// --- Sales Return Tests ---

func (suite *SalesServiceTestSuite) TestCreateSalesReturn_InheritsSnapshotAndCreditsCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		InvoiceNumber:       "INV-000003",
		CustomerID:          customerID,
		Status:              domain.InvoicePaid,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(150000),
		TotalAmountUSD:      decimal.RequireFromString("10.00"),
		PaidAmount:          decimal.NewFromInt(150000),
		PaidAmountUSD:       decimal.RequireFromString("10.00"),
	}
	item := domain.InvoiceItem{
		ItemID:    uuid.NewString(),
		InvoiceID: invoice.InvoiceID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(15000),
	}

	req := dto.CreateSalesReturnRequest{
		InvoiceID:  invoice.InvoiceID,
		ReturnDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "بضاعة تالفة",
		Items: []dto.SalesReturnItemRequest{
			{InvoiceItemID: item.ItemID, Quantity: decimal.NewFromInt(3)},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceItems", ctx, invoice.InvoiceID).Return([]domain.InvoiceItem{item}, nil).Once()
	suite.mockReturnRepo.On("SumReturnedQuantity", ctx, invoice.InvoiceID).Return(map[string]decimal.Decimal{
		item.ItemID: decimal.NewFromInt(2),
	}, nil).Once()
	suite.mockReturnRepo.On("FindLastReturnNumber", ctx).Return("", nil).Once()
	suite.mockReturnRepo.On("SaveReturnWithItems", ctx,
		mock.MatchedBy(func(r domain.SalesReturn) bool {
			// The return reuses the invoice's frozen pair, not the rate of the return day.
			return r.ReturnNumber == "RET-000001" &&
				r.Snapshot.USDToSYPOld.Equal(decimal.NewFromInt(1500000)) &&
				r.TotalAmount.Equal(decimal.NewFromInt(45000)) &&
				r.TotalAmountUSD.Equal(decimal.RequireFromString("3.00"))
		}),
		mock.AnythingOfType("[]domain.SalesReturnItem"),
		customerID,
		mock.MatchedBy(func(u domain.InvoicePaymentUpdate) bool {
			// The invoice keeps its paid figures; only the balance moves.
			return u.Status == domain.InvoicePaid && u.PaidAmount.Equal(invoice.PaidAmount)
		}),
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(-4500000)) && d.USD.Equal(decimal.RequireFromString("-3.00"))
		}),
	).Return(nil).Once()

	ret, err := suite.service.CreateSalesReturn(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(ret)
	suite.True(ret.TotalAmount.Equal(decimal.NewFromInt(45000)))
	suite.mockFXSvc.AssertNotCalled(suite.T(), "ResolveSnapshot")
	suite.mockReturnRepo.AssertExpectations(suite.T())
}

func (suite *SalesServiceTestSuite) TestCreateSalesReturn_QuantityExceedsRemaining() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:           uuid.NewString(),
		CustomerID:          uuid.NewString(),
		Status:              domain.InvoiceConfirmed,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
	}
	item := domain.InvoiceItem{
		ItemID:    uuid.NewString(),
		InvoiceID: invoice.InvoiceID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(15000),
	}

	req := dto.CreateSalesReturnRequest{
		InvoiceID:  invoice.InvoiceID,
		ReturnDate: time.Now(),
		Items: []dto.SalesReturnItemRequest{
			{InvoiceItemID: item.ItemID, Quantity: decimal.NewFromInt(9)},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceItems", ctx, invoice.InvoiceID).Return([]domain.InvoiceItem{item}, nil).Once()
	suite.mockReturnRepo.On("SumReturnedQuantity", ctx, invoice.InvoiceID).Return(map[string]decimal.Decimal{
		item.ItemID: decimal.NewFromInt(2),
	}, nil).Once()
	suite.mockReturnRepo.On("FindLastReturnNumber", ctx).Return("", nil).Once()

	ret, err := suite.service.CreateSalesReturn(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(ret)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReturnRepo.AssertNotCalled(suite.T(), "SaveReturnWithItems")
}

func (suite *SalesServiceTestSuite) TestCreateSalesReturn_UnbookedInvoiceRefused() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID: uuid.NewString(),
		Status:    domain.InvoiceDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	ret, err := suite.service.CreateSalesReturn(ctx, dto.CreateSalesReturnRequest{
		InvoiceID:  invoice.InvoiceID,
		ReturnDate: time.Now(),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(ret)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

// --- Run Suite ---
func TestSalesService(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
