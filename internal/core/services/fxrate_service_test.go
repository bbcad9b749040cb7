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

// --- Mock DailyRateRepository ---
type MockDailyRateRepository struct {
	mock.Mock
}

func (m *MockDailyRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

func (m *MockDailyRateRepository) FindRateByDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

func (m *MockDailyRateRepository) FindRateOnOrBefore(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyExchangeRate), args.Error(1)
}

func (m *MockDailyRateRepository) ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyExchangeRate), args.Error(1)
}

func (m *MockDailyRateRepository) CountRates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDailyRateRepository) SaveRate(ctx context.Context, rate domain.DailyExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockDailyRateRepository) UpdateRate(ctx context.Context, rate domain.DailyExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Test Suite ---
type FXRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDailyRateRepository
	service  portssvc.FXRateSvcFacade
}

func (suite *FXRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDailyRateRepository)
	suite.service = services.NewFXRateService(suite.mockRepo, false)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// --- Test Cases ---

func (suite *FXRateServiceTestSuite) TestCreateDailyRate_DerivesOldFromNew() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateDailyRateRequest{
		RateDate:    time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC),
		USDToSYPNew: decimalPtr(decimal.NewFromInt(15000)),
	}

	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.DailyExchangeRate) bool {
		return r.USDToSYPOld.Equal(decimal.NewFromInt(1500000)) &&
			r.USDToSYPNew.Equal(decimal.NewFromInt(15000)) &&
			r.RateDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) &&
			r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.CreateDailyRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.USDToSYPOld.Equal(decimal.NewFromInt(1500000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FXRateServiceTestSuite) TestCreateDailyRate_DerivesNewFromOld() {
	ctx := context.Background()
	req := dto.CreateDailyRateRequest{
		RateDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		USDToSYPOld: decimalPtr(decimal.NewFromInt(1500000)),
	}

	suite.mockRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.DailyExchangeRate) bool {
		return r.USDToSYPNew.Equal(decimal.NewFromInt(15000))
	})).Return(nil).Once()

	rate, err := suite.service.CreateDailyRate(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(rate.USDToSYPNew.Equal(decimal.NewFromInt(15000)))
}

func (suite *FXRateServiceTestSuite) TestCreateDailyRate_NoRateGiven() {
	ctx := context.Background()
	req := dto.CreateDailyRateRequest{RateDate: time.Now()}

	rate, err := suite.service.CreateDailyRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoRateSpecified)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRate")
}

func (suite *FXRateServiceTestSuite) TestCreateDailyRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateDailyRateRequest{
		RateDate:    time.Now(),
		USDToSYPNew: decimalPtr(decimal.Zero),
	}

	rate, err := suite.service.CreateDailyRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrInvalidExchangeRate)
}

func (suite *FXRateServiceTestSuite) TestCreateDailyRate_DuplicateDate() {
	ctx := context.Background()
	req := dto.CreateDailyRateRequest{
		RateDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		USDToSYPNew: decimalPtr(decimal.NewFromInt(15000)),
	}

	suite.mockRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.DailyExchangeRate")).Return(apperrors.ErrDuplicate).Once()

	rate, err := suite.service.CreateDailyRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *FXRateServiceTestSuite) TestGetRateForDate_ExactMatch() {
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	expected := &domain.DailyExchangeRate{
		RateID:      uuid.NewString(),
		RateDate:    day,
		USDToSYPOld: decimal.NewFromInt(1500000),
		USDToSYPNew: decimal.NewFromInt(15000),
	}

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(expected, nil).Once()

	// The lookup normalizes any intra-day timestamp to the calendar date.
	rate, err := suite.service.GetRateForDate(ctx, time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRateOnOrBefore")
}

func (suite *FXRateServiceTestSuite) TestGetRateForDate_FallsBackToPrior() {
	ctx := context.Background()
	day := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)
	prior := &domain.DailyExchangeRate{
		RateID:      uuid.NewString(),
		RateDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		USDToSYPOld: decimal.NewFromInt(1500000),
		USDToSYPNew: decimal.NewFromInt(15000),
	}

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRateOnOrBefore", ctx, day).Return(prior, nil).Once()

	rate, err := suite.service.GetRateForDate(ctx, day)

	suite.Require().NoError(err)
	suite.Equal(prior, rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FXRateServiceTestSuite) TestGetRateForDate_StrictModeNoFallback() {
	ctx := context.Background()
	strict := services.NewFXRateService(suite.mockRepo, true)
	day := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := strict.GetRateForDate(ctx, day)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRateOnOrBefore")
}

func (suite *FXRateServiceTestSuite) TestGetRateForDate_EmptyLedger() {
	ctx := context.Background()
	day := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRateOnOrBefore", ctx, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CountRates", ctx).Return(int64(0), nil).Once()

	rate, err := suite.service.GetRateForDate(ctx, day)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoExchangeRateConfigured)
}

func (suite *FXRateServiceTestSuite) TestGetRateForDate_NoPriorButLedgerConfigured() {
	ctx := context.Background()
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRateOnOrBefore", ctx, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CountRates", ctx).Return(int64(5), nil).Once()

	rate, err := suite.service.GetRateForDate(ctx, day)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrNoExchangeRateConfigured)
}

func (suite *FXRateServiceTestSuite) TestResolveSnapshot_FreezesPair() {
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	ledgerRow := &domain.DailyExchangeRate{
		RateID:      uuid.NewString(),
		RateDate:    day,
		USDToSYPOld: decimal.NewFromInt(1500000),
		USDToSYPNew: decimal.NewFromInt(15000),
	}

	suite.mockRepo.On("FindRateByDate", ctx, day).Return(ledgerRow, nil).Once()

	snapshot, err := suite.service.ResolveSnapshot(ctx, day)

	suite.Require().NoError(err)
	suite.Require().True(snapshot.IsSet())
	suite.True(snapshot.USDToSYPOld.Equal(decimal.NewFromInt(1500000)))
	suite.True(snapshot.USDToSYPNew.Equal(decimal.NewFromInt(15000)))
	suite.True(snapshot.RateDate.Equal(day))

	// A later ledger correction must not reach through the snapshot.
	ledgerRow.USDToSYPOld = decimal.NewFromInt(1600000)
	ledgerRow.USDToSYPNew = decimal.NewFromInt(16000)
	suite.True(snapshot.USDToSYPOld.Equal(decimal.NewFromInt(1500000)))
	suite.True(snapshot.USDToSYPNew.Equal(decimal.NewFromInt(15000)))
}

func (suite *FXRateServiceTestSuite) TestUpdateDailyRate_RenormalizesPair() {
	ctx := context.Background()
	rateID := uuid.NewString()
	existing := &domain.DailyExchangeRate{
		RateID:      rateID,
		RateDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		USDToSYPOld: decimal.NewFromInt(1500000),
		USDToSYPNew: decimal.NewFromInt(15000),
	}
	updaterUserID := uuid.NewString()

	suite.mockRepo.On("FindRateByID", ctx, rateID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateRate", ctx, mock.MatchedBy(func(r domain.DailyExchangeRate) bool {
		return r.USDToSYPNew.Equal(decimal.NewFromInt(16000)) &&
			r.USDToSYPOld.Equal(decimal.NewFromInt(1600000)) &&
			r.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateDailyRate(ctx, rateID, dto.UpdateDailyRateRequest{
		USDToSYPNew: decimalPtr(decimal.NewFromInt(16000)),
	}, updaterUserID)

	suite.Require().NoError(err)
	suite.True(updated.USDToSYPOld.Equal(decimal.NewFromInt(1600000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FXRateServiceTestSuite) TestListRates_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListRates", ctx, (*time.Time)(nil), (*time.Time)(nil), 30).Return([]domain.DailyExchangeRate(nil), nil).Once()

	rates, err := suite.service.ListRates(ctx, nil, nil, 30)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

// --- Run Suite ---
func TestFXRateService(t *testing.T) {
	suite.Run(t, new(FXRateServiceTestSuite))
}
