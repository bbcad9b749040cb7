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

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseRepository) FindOrderItems(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseRepository) ListOrdersBySupplier(ctx context.Context, supplierID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	args := m.Called(ctx, supplierID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.PurchaseOrder), token, args.Error(2)
}

func (m *MockPurchaseRepository) ListOrdersByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseRepository) FindLastOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseRepository) SaveOrderWithItems(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.PurchaseOrderStatus, updatedBy string) error {
	args := m.Called(ctx, orderID, status, updatedBy)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ReceiveOrderItems(ctx context.Context, orderID string, received map[string]decimal.Decimal, status domain.PurchaseOrderStatus, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, orderID, received, status, supplierID, delta, updatedBy)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CancelOrder(ctx context.Context, orderID string, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, orderID, supplierID, delta, updatedBy)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateOrderPayment(ctx context.Context, orderID string, paidAmount, paidAmountUSD decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, orderID, paidAmount, paidAmountUSD, updatedBy)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindSupplierPaymentByID(ctx context.Context, paymentID string) (*domain.SupplierPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierPayment), args.Error(1)
}

func (m *MockPurchaseRepository) ListSupplierPaymentsByDateRange(ctx context.Context, supplierID string, from, to *time.Time) ([]domain.SupplierPayment, error) {
	args := m.Called(ctx, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplierPayment), args.Error(1)
}

func (m *MockPurchaseRepository) FindLastSupplierPaymentNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseRepository) SaveSupplierPayment(ctx context.Context, payment domain.SupplierPayment, orderPaid, orderPaidUSD *decimal.Decimal, delta domain.BalanceDelta) error {
	args := m.Called(ctx, payment, orderPaid, orderPaidUSD, delta)
	return args.Error(0)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierByCode(ctx context.Context, code string) (*domain.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, limit int, nextToken *string) ([]domain.Supplier, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Supplier), token, args.Error(2)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) SoftDeleteSupplier(ctx context.Context, supplierID string, deletedBy string) error {
	args := m.Called(ctx, supplierID, deletedBy)
	return args.Error(0)
}

func (m *MockSupplierRepository) AdjustSupplierBalance(ctx context.Context, supplierID string, delta domain.BalanceDelta, updatedBy string) error {
	args := m.Called(ctx, supplierID, delta, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---
type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockSupplierRepo *MockSupplierRepository
	mockFXSvc        *MockFXRateService
	service          portssvc.PurchaseSvcFacade
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockFXSvc = new(MockFXRateService)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockSupplierRepo, suite.mockFXSvc)
}

func activeSupplier() *domain.Supplier {
	return &domain.Supplier{
		SupplierID: uuid.NewString(),
		Code:       "S-001",
		Name:       "مورد تجريبي",
		IsActive:   true,
	}
}

// --- Order Tests ---

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseOrder_DefaultsToUSD() {
	ctx := context.Background()
	supplier := activeSupplier()
	orderDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	req := dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.SupplierID,
		OrderDate:  orderDate,
		Items: []dto.CreatePurchaseOrderItemRequest{
			{ProductName: "Flour", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(20)},
		},
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, orderDate).Return(testSnapshot(), nil).Once()
	suite.mockPurchaseRepo.On("FindLastOrderNumber", ctx).Return("", nil).Once()
	suite.mockPurchaseRepo.On("SaveOrderWithItems", ctx, mock.MatchedBy(func(o domain.PurchaseOrder) bool {
		return o.OrderNumber == "PO-000001" &&
			o.Status == domain.PurchaseDraft &&
			o.TransactionCurrency == domain.CurrencyUSD &&
			o.TotalAmount.Equal(decimal.NewFromInt(100)) &&
			o.TotalAmountUSD.Equal(decimal.RequireFromString("100.00")) &&
			o.TaxAmount.IsZero()
	}), mock.AnythingOfType("[]domain.PurchaseOrderItem")).Return(nil).Once()

	order, err := suite.service.CreatePurchaseOrder(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Equal(domain.CurrencyUSD, order.TransactionCurrency)
	suite.Len(order.Items, 1)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseOrder_HeaderDiscountOutOfRange() {
	ctx := context.Background()
	supplier := activeSupplier()
	orderDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	req := dto.CreatePurchaseOrderRequest{
		SupplierID:     supplier.SupplierID,
		OrderDate:      orderDate,
		DiscountAmount: decimalPtr(decimal.NewFromInt(200)),
		Items: []dto.CreatePurchaseOrderItemRequest{
			{ProductName: "Flour", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(20)},
		},
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, orderDate).Return(testSnapshot(), nil).Once()
	suite.mockPurchaseRepo.On("FindLastOrderNumber", ctx).Return("", nil).Once()

	order, err := suite.service.CreatePurchaseOrder(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SaveOrderWithItems")
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchaseOrder_InactiveSupplier() {
	ctx := context.Background()
	supplier := activeSupplier()
	supplier.IsActive = false

	req := dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.SupplierID,
		OrderDate:  time.Now(),
		Items: []dto.CreatePurchaseOrderItemRequest{
			{ProductName: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()

	order, err := suite.service.CreatePurchaseOrder(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockFXSvc.AssertNotCalled(suite.T(), "ResolveSnapshot")
}

func (suite *PurchaseServiceTestSuite) TestApproveOrder() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	order := &domain.PurchaseOrder{
		OrderID: uuid.NewString(),
		Status:  domain.PurchaseDraft,
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("UpdateOrderStatus", ctx, order.OrderID, domain.PurchaseApproved, updaterUserID).Return(nil).Once()

	approved, err := suite.service.ApproveOrder(ctx, order.OrderID, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseApproved, approved.Status)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestApproveOrder_NotDraft() {
	ctx := context.Background()
	order := &domain.PurchaseOrder{
		OrderID: uuid.NewString(),
		Status:  domain.PurchaseReceived,
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	approved, err := suite.service.ApproveOrder(ctx, order.OrderID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus")
}

func (suite *PurchaseServiceTestSuite) TestReceiveOrder_PartialDelivery() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		OrderNumber:         "PO-000004",
		SupplierID:          uuid.NewString(),
		Status:              domain.PurchaseApproved,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
	}
	item1 := domain.PurchaseOrderItem{
		ItemID:    uuid.NewString(),
		OrderID:   order.OrderID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(15000),
	}
	item2 := domain.PurchaseOrderItem{
		ItemID:    uuid.NewString(),
		OrderID:   order.OrderID,
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(15000),
	}

	req := dto.ReceiveOrderRequest{
		Items: []dto.ReceiveOrderItemRequest{
			{ItemID: item1.ItemID, Quantity: decimal.NewFromInt(10)},
		},
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("FindOrderItems", ctx, order.OrderID).Return([]domain.PurchaseOrderItem{item1, item2}, nil).Once()
	suite.mockPurchaseRepo.On("ReceiveOrderItems", ctx, order.OrderID,
		mock.MatchedBy(func(received map[string]decimal.Decimal) bool {
			qty, ok := received[item1.ItemID]
			return len(received) == 1 && ok && qty.Equal(decimal.NewFromInt(10))
		}),
		domain.PurchasePartial,
		order.SupplierID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			// 150,000 new SYP received grows the payable by 15,000,000 legacy
			// units and 10 settlement dollars.
			return d.Local.Equal(decimal.NewFromInt(15000000)) && d.USD.Equal(decimal.RequireFromString("10.00"))
		}),
		updaterUserID,
	).Return(nil).Once()

	receivedOrder, err := suite.service.ReceiveOrder(ctx, order.OrderID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchasePartial, receivedOrder.Status)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestReceiveOrder_CumulativeQuantities() {
	ctx := context.Background()
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		SupplierID:          uuid.NewString(),
		Status:              domain.PurchasePartial,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
	}
	item := domain.PurchaseOrderItem{
		ItemID:           uuid.NewString(),
		OrderID:          order.OrderID,
		Quantity:         decimal.NewFromInt(10),
		ReceivedQuantity: decimal.NewFromInt(8),
		UnitPrice:        decimal.NewFromInt(5),
	}

	req := dto.ReceiveOrderRequest{
		Items: []dto.ReceiveOrderItemRequest{
			{ItemID: item.ItemID, Quantity: decimal.NewFromInt(2)},
		},
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("FindOrderItems", ctx, order.OrderID).Return([]domain.PurchaseOrderItem{item}, nil).Once()
	suite.mockPurchaseRepo.On("ReceiveOrderItems", ctx, order.OrderID,
		mock.MatchedBy(func(received map[string]decimal.Decimal) bool {
			// The repository stores the running total, not this delivery.
			return received[item.ItemID].Equal(decimal.NewFromInt(10))
		}),
		domain.PurchaseReceived,
		order.SupplierID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.USD.Equal(decimal.RequireFromString("10.00"))
		}),
		mock.AnythingOfType("string"),
	).Return(nil).Once()

	receivedOrder, err := suite.service.ReceiveOrder(ctx, order.OrderID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseReceived, receivedOrder.Status)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestReceiveOrder_OverReceive() {
	ctx := context.Background()
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		SupplierID:          uuid.NewString(),
		Status:              domain.PurchasePartial,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
	}
	item := domain.PurchaseOrderItem{
		ItemID:           uuid.NewString(),
		OrderID:          order.OrderID,
		Quantity:         decimal.NewFromInt(10),
		ReceivedQuantity: decimal.NewFromInt(8),
		UnitPrice:        decimal.NewFromInt(5),
	}

	req := dto.ReceiveOrderRequest{
		Items: []dto.ReceiveOrderItemRequest{
			{ItemID: item.ItemID, Quantity: decimal.NewFromInt(5)},
		},
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("FindOrderItems", ctx, order.OrderID).Return([]domain.PurchaseOrderItem{item}, nil).Once()

	receivedOrder, err := suite.service.ReceiveOrder(ctx, order.OrderID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivedOrder)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "ReceiveOrderItems")
}

func (suite *PurchaseServiceTestSuite) TestCancelOrder_ReversesReceivedValue() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		OrderNumber:         "PO-000006",
		SupplierID:          uuid.NewString(),
		Status:              domain.PurchasePartial,
		TransactionCurrency: domain.CurrencySYPNew,
		Snapshot:            testSnapshot(),
	}
	item := domain.PurchaseOrderItem{
		ItemID:           uuid.NewString(),
		OrderID:          order.OrderID,
		Quantity:         decimal.NewFromInt(10),
		ReceivedQuantity: decimal.NewFromInt(10),
		UnitPrice:        decimal.NewFromInt(15000),
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("FindOrderItems", ctx, order.OrderID).Return([]domain.PurchaseOrderItem{item}, nil).Once()
	suite.mockPurchaseRepo.On("CancelOrder", ctx, order.OrderID, order.SupplierID,
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(-15000000)) && d.USD.Equal(decimal.RequireFromString("-10.00"))
		}), updaterUserID).Return(nil).Once()

	err := suite.service.CancelOrder(ctx, order.OrderID, updaterUserID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCancelOrder_WithPaymentsRefused() {
	ctx := context.Background()
	order := &domain.PurchaseOrder{
		OrderID:    uuid.NewString(),
		Status:     domain.PurchaseReceived,
		PaidAmount: decimal.NewFromInt(50),
	}

	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	err := suite.service.CancelOrder(ctx, order.OrderID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CancelOrder")
}

// --- Supplier Payment Tests ---

func (suite *PurchaseServiceTestSuite) TestMakeSupplierPayment_BridgesIntoLinkedOrder() {
	ctx := context.Background()
	supplier := activeSupplier()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		SupplierID:          supplier.SupplierID,
		Status:              domain.PurchaseReceived,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(160),
		TotalAmountUSD:      decimal.NewFromInt(160),
		PaidAmount:          decimal.NewFromInt(100),
		PaidAmountUSD:       decimal.NewFromInt(100),
	}

	// 900,000 new SYP at 15,000 is 60 settlement dollars, exactly the
	// order's remaining balance.
	req := dto.CreateSupplierPaymentRequest{
		SupplierID:          supplier.SupplierID,
		OrderID:             &order.OrderID,
		Amount:              decimal.NewFromInt(900000),
		TransactionCurrency: "SYP_NEW",
		PaymentDate:         paymentDate,
		PaymentMethod:       "bank",
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPurchaseRepo.On("FindLastSupplierPaymentNumber", ctx).Return("SPY-000002", nil).Once()
	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("SaveSupplierPayment", ctx,
		mock.MatchedBy(func(p domain.SupplierPayment) bool {
			return p.PaymentNumber == "SPY-000003" && p.AmountUSD.Equal(decimal.RequireFromString("60.00"))
		}),
		mock.MatchedBy(func(paid *decimal.Decimal) bool {
			return paid != nil && paid.Equal(decimal.NewFromInt(160))
		}),
		mock.MatchedBy(func(paidUSD *decimal.Decimal) bool {
			return paidUSD != nil && paidUSD.Equal(decimal.NewFromInt(160))
		}),
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			return d.Local.Equal(decimal.NewFromInt(-90000000)) && d.USD.Equal(decimal.RequireFromString("-60.00"))
		}),
	).Return(nil).Once()

	payment, err := suite.service.MakeSupplierPayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal("SPY-000003", payment.PaymentNumber)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestMakeSupplierPayment_SettledOrderLeavesPaidUntouched() {
	ctx := context.Background()
	supplier := activeSupplier()
	paymentDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		SupplierID:          supplier.SupplierID,
		Status:              domain.PurchaseReceived,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
		TotalAmount:         decimal.NewFromInt(100),
		TotalAmountUSD:      decimal.NewFromInt(100),
		PaidAmount:          decimal.NewFromInt(100),
		PaidAmountUSD:       decimal.NewFromInt(100),
	}

	req := dto.CreateSupplierPaymentRequest{
		SupplierID:          supplier.SupplierID,
		OrderID:             &order.OrderID,
		Amount:              decimal.NewFromInt(25),
		TransactionCurrency: "USD",
		PaymentDate:         paymentDate,
		PaymentMethod:       "cash",
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, paymentDate).Return(testSnapshot(), nil).Once()
	suite.mockPurchaseRepo.On("FindLastSupplierPaymentNumber", ctx).Return("", nil).Once()
	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockPurchaseRepo.On("SaveSupplierPayment", ctx,
		mock.AnythingOfType("domain.SupplierPayment"),
		(*decimal.Decimal)(nil),
		(*decimal.Decimal)(nil),
		mock.MatchedBy(func(d domain.BalanceDelta) bool {
			// The supplier balance still moves by the full payment.
			return d.USD.Equal(decimal.RequireFromString("-25.00"))
		}),
	).Return(nil).Once()

	payment, err := suite.service.MakeSupplierPayment(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestMakeSupplierPayment_WrongSupplierOrder() {
	ctx := context.Background()
	supplier := activeSupplier()
	order := &domain.PurchaseOrder{
		OrderID:             uuid.NewString(),
		SupplierID:          uuid.NewString(),
		Status:              domain.PurchaseReceived,
		TransactionCurrency: domain.CurrencyUSD,
		Snapshot:            testSnapshot(),
	}

	req := dto.CreateSupplierPaymentRequest{
		SupplierID:          supplier.SupplierID,
		OrderID:             &order.OrderID,
		Amount:              decimal.NewFromInt(10),
		TransactionCurrency: "USD",
		PaymentDate:         time.Now(),
		PaymentMethod:       "cash",
	}

	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplier.SupplierID).Return(supplier, nil).Once()
	suite.mockFXSvc.On("ResolveSnapshot", ctx, mock.AnythingOfType("time.Time")).Return(testSnapshot(), nil).Once()
	suite.mockPurchaseRepo.On("FindLastSupplierPaymentNumber", ctx).Return("", nil).Once()
	suite.mockPurchaseRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	payment, err := suite.service.MakeSupplierPayment(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SaveSupplierPayment")
}

// --- Run Suite ---
func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
