package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/core/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindPrimaryCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetPrimaryCurrency(ctx context.Context, currencyCode string, updatedBy string) error {
	args := m.Called(ctx, currencyCode, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "SAR",
		Name:         "ريال سعودي",
		NameEn:       "Saudi Riyal",
		Symbol:       "SR",
		ExchangeRate: decimal.RequireFromString("3.75"),
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "SAR" &&
			c.ExchangeRate.Equal(req.ExchangeRate) &&
			c.IsActive &&
			!c.IsPrimary &&
			c.DecimalPlaces == 2 &&
			c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("SAR", currency.CurrencyCode)
	suite.True(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "BAD",
		Name:         "Bad",
		Symbol:       "B",
		ExchangeRate: decimal.Zero,
	}

	currency, err := suite.service.CreateCurrency(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrInvalidExchangeRate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_PrimaryRatePinned() {
	ctx := context.Background()
	primary := &domain.Currency{
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		IsPrimary:    true,
		IsActive:     true,
	}
	newRate := decimal.NewFromInt(2)

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(primary, nil).Once()

	updated, err := suite.service.UpdateCurrency(ctx, "USD", dto.UpdateCurrencyRequest{ExchangeRate: &newRate}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency")
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_CannotDeactivatePrimary() {
	ctx := context.Background()
	primary := &domain.Currency{
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		IsPrimary:    true,
		IsActive:     true,
	}
	inactive := false

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(primary, nil).Once()

	updated, err := suite.service.UpdateCurrency(ctx, "USD", dto.UpdateCurrencyRequest{IsActive: &inactive}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *CurrencyServiceTestSuite) TestSetPrimaryCurrency_InactiveRejected() {
	ctx := context.Background()
	inactive := &domain.Currency{
		CurrencyCode: "SYP",
		ExchangeRate: decimal.NewFromInt(15000),
		IsActive:     false,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "SYP").Return(inactive, nil).Once()

	err := suite.service.SetPrimaryCurrency(ctx, "syp", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetPrimaryCurrency")
}

func (suite *CurrencyServiceTestSuite) TestSetPrimaryCurrency_Success() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	active := &domain.Currency{
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		IsActive:     true,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(active, nil).Once()
	suite.mockRepo.On("SetPrimaryCurrency", ctx, "USD", updaterUserID).Return(nil).Once()

	err := suite.service.SetPrimaryCurrency(ctx, "usd", updaterUserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_PivotsThroughPrimary() {
	ctx := context.Background()
	sar := &domain.Currency{
		CurrencyCode:  "SAR",
		ExchangeRate:  decimal.RequireFromString("3.75"),
		IsActive:      true,
		DecimalPlaces: 2,
	}
	usd := &domain.Currency{
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		IsPrimary:     true,
		IsActive:      true,
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "SAR").Return(sar, nil).Once()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()

	converted, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "SAR", "USD")

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.RequireFromString("26.67")), "got %s", converted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_SameCurrencyIdentity() {
	ctx := context.Background()
	usd := &domain.Currency{
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		IsPrimary:     true,
		IsActive:      true,
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Twice()

	converted, err := suite.service.ConvertAmount(ctx, decimal.RequireFromString("10.005"), "USD", "USD")

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.RequireFromString("10.005")), "got %s", converted)
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_SameCurrencySkipsRateValidation() {
	ctx := context.Background()
	stale := &domain.Currency{
		CurrencyCode:  "BRK",
		ExchangeRate:  decimal.Zero,
		IsActive:      true,
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "BRK").Return(stale, nil).Twice()

	converted, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(42), "BRK", "BRK")

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.NewFromInt(42)), "got %s", converted)
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_UnknownCurrency() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(10), "XXX", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_ZeroRateRejected() {
	ctx := context.Background()
	broken := &domain.Currency{
		CurrencyCode:  "BRK",
		ExchangeRate:  decimal.Zero,
		IsActive:      true,
		DecimalPlaces: 2,
	}
	usd := &domain.Currency{
		CurrencyCode:  "USD",
		ExchangeRate:  decimal.NewFromInt(1),
		IsPrimary:     true,
		IsActive:      true,
		DecimalPlaces: 2,
	}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "BRK").Return(broken, nil).Once()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()

	_, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(10), "BRK", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidExchangeRate)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCurrencies", ctx, true).Return([]domain.Currency(nil), nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, true)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListCurrencies", ctx, false).Return(nil, expectedErr).Once()

	currencies, err := suite.service.ListCurrencies(ctx, false)

	suite.Require().Error(err)
	suite.Nil(currencies)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
