package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/core/services"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateHistoryService ---
type MockRateHistoryService struct {
	mock.Mock
}

func (m *MockRateHistoryService) RatesForPeriod(ctx context.Context, sourceCode string, from, to time.Time) ([]models.DatedRates, error) {
	args := m.Called(ctx, sourceCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DatedRates), args.Error(1)
}

func (m *MockRateHistoryService) PairSeries(ctx context.Context, baseCode, quoteCode string, from, to time.Time) ([]models.RateRecord, error) {
	args := m.Called(ctx, baseCode, quoteCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RateRecord), args.Error(1)
}

// --- Test Suite ---
type TWRRServiceTestSuite struct {
	suite.Suite
	mockHistory *MockRateHistoryService
	service     ports.TWRRSvcFacade

	from time.Time
	to   time.Time
}

func (suite *TWRRServiceTestSuite) SetupTest() {
	suite.mockHistory = new(MockRateHistoryService)
	suite.service = services.NewTWRRService(suite.mockHistory)
	suite.from = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *TWRRServiceTestSuite) pairRec(rate string, day int) models.RateRecord {
	return models.RateRecord{
		BaseCode:      "EUR",
		QuoteCode:     "USD",
		ValuationDate: time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		Rate:          decimal.RequireFromString(rate),
	}
}

// --- Test Cases ---

func (suite *TWRRServiceTestSuite) TestSeries_FirstPointIsZero() {
	ctx := context.Background()
	series := []models.RateRecord{suite.pairRec("1.10", 1), suite.pairRec("1.21", 2)}
	suite.mockHistory.On("PairSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(series, nil).Once()

	points, err := suite.service.Series(ctx, "EUR", "USD", decimal.NewFromInt(100), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(points, 2)
	suite.True(points[0].CumulativeReturn.IsZero(), "the first point is the baseline")
	suite.True(decimal.RequireFromString("0.1").Equal(points[1].CumulativeReturn), "1.21/1.10 - 1, got %s", points[1].CumulativeReturn)
}

func (suite *TWRRServiceTestSuite) TestSeries_ConstantRateStaysZero() {
	ctx := context.Background()
	series := []models.RateRecord{suite.pairRec("1.10", 1), suite.pairRec("1.10", 2), suite.pairRec("1.10", 3)}
	suite.mockHistory.On("PairSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(series, nil).Once()

	points, err := suite.service.Series(ctx, "EUR", "USD", decimal.NewFromInt(100), suite.from, suite.to)

	suite.Require().NoError(err)
	for _, p := range points {
		suite.True(p.CumulativeReturn.IsZero())
	}
}

func (suite *TWRRServiceTestSuite) TestSeries_DecliningRateGoesNegative() {
	ctx := context.Background()
	series := []models.RateRecord{suite.pairRec("1.10", 1), suite.pairRec("0.55", 2)}
	suite.mockHistory.On("PairSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(series, nil).Once()

	points, err := suite.service.Series(ctx, "EUR", "USD", decimal.NewFromInt(100), suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("-0.5").Equal(points[1].CumulativeReturn), "got %s", points[1].CumulativeReturn)
}

func (suite *TWRRServiceTestSuite) TestSeries_EmptyRangeIsNotFound() {
	ctx := context.Background()
	suite.mockHistory.On("PairSeries", ctx, "EUR", "USD", suite.from, suite.to).
		Return([]models.RateRecord{}, nil).Once()

	_, err := suite.service.Series(ctx, "EUR", "USD", decimal.NewFromInt(100), suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TWRRServiceTestSuite) TestSeries_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Series(ctx, "EUR", "USD", decimal.Zero, suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockHistory.AssertNotCalled(suite.T(), "PairSeries")
}

// --- Run Suite ---
func TestTWRRService(t *testing.T) {
	suite.Run(t, new(TWRRServiceTestSuite))
}
