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
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RateHistoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRateRepository
	service  ports.RateHistorySvcFacade

	from time.Time
	to   time.Time
	day1 time.Time
	day2 time.Time
}

func (suite *RateHistoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRateRepository)
	suite.service = services.NewRateHistoryService(suite.mockRepo)

	suite.from = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	suite.day1 = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.day2 = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
}

func rec(quote, rate string, date time.Time) models.RateRecord {
	return models.RateRecord{
		BaseCode:      models.CanonicalBaseCurrency,
		QuoteCode:     quote,
		ValuationDate: date,
		Rate:          decimal.RequireFromString(rate),
	}
}

// --- RatesForPeriod ---

func (suite *RateHistoryServiceTestSuite) TestRatesForPeriod_CanonicalPassthrough() {
	ctx := context.Background()
	rows := []models.RateRecord{
		rec("USD", "1.10", suite.day1),
		rec("GBP", "0.88", suite.day1),
		rec("USD", "1.12", suite.day2),
	}
	suite.mockRepo.On("GetRatesForPeriod", ctx, "EUR", suite.from, suite.to).Return(rows, nil).Once()

	grouped, err := suite.service.RatesForPeriod(ctx, "EUR", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(grouped, 2)
	suite.Equal(suite.day1, grouped[0].Date)
	suite.True(decimal.RequireFromString("1.10").Equal(grouped[0].Rates["USD"]))
	suite.True(decimal.RequireFromString("0.88").Equal(grouped[0].Rates["GBP"]))
	suite.Require().Len(grouped[1].Rates, 1)
	suite.True(decimal.RequireFromString("1.12").Equal(grouped[1].Rates["USD"]))
}

func (suite *RateHistoryServiceTestSuite) TestRatesForPeriod_RebasedOntoQuote() {
	ctx := context.Background()
	rows := []models.RateRecord{
		rec("USD", "1.10", suite.day1),
		rec("GBP", "0.88", suite.day1),
	}
	suite.mockRepo.On("GetRatesForPeriod", ctx, "EUR", suite.from, suite.to).Return(rows, nil).Once()

	grouped, err := suite.service.RatesForPeriod(ctx, "USD", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(grouped, 1)
	rates := grouped[0].Rates
	suite.NotContains(rates, "USD", "the requested source drops out of its own quote set")
	suite.True(decimal.RequireFromString("0.8").Equal(rates["GBP"]), "0.88 / 1.10, got %s", rates["GBP"])
	suite.True(decimal.RequireFromString("0.909091").Equal(rates["EUR"]), "inverted source leg, got %s", rates["EUR"])
}

func (suite *RateHistoryServiceTestSuite) TestRatesForPeriod_SkipsDatesMissingSourceLeg() {
	ctx := context.Background()
	rows := []models.RateRecord{
		rec("USD", "1.10", suite.day1),
		rec("GBP", "0.88", suite.day2), // no USD leg on day2
	}
	suite.mockRepo.On("GetRatesForPeriod", ctx, "EUR", suite.from, suite.to).Return(rows, nil).Once()

	grouped, err := suite.service.RatesForPeriod(ctx, "USD", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(grouped, 1, "day2 has no USD leg to pivot on and is dropped")
	suite.Equal(suite.day1, grouped[0].Date)
}

func (suite *RateHistoryServiceTestSuite) TestRatesForPeriod_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.RatesForPeriod(ctx, "DOLLARS", suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- PairSeries ---

func (suite *RateHistoryServiceTestSuite) TestPairSeries_CanonicalBaseDirect() {
	ctx := context.Background()
	series := []models.RateRecord{rec("USD", "1.10", suite.day1), rec("USD", "1.12", suite.day2)}
	suite.mockRepo.On("GetSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(series, nil).Once()

	got, err := suite.service.PairSeries(ctx, "EUR", "USD", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal(series, got)
}

func (suite *RateHistoryServiceTestSuite) TestPairSeries_CanonicalQuoteInverted() {
	ctx := context.Background()
	series := []models.RateRecord{rec("USD", "1.25", suite.day1)}
	suite.mockRepo.On("GetSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(series, nil).Once()

	got, err := suite.service.PairSeries(ctx, "USD", "EUR", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("USD", got[0].BaseCode)
	suite.Equal("EUR", got[0].QuoteCode)
	suite.True(decimal.RequireFromString("0.8").Equal(got[0].Rate), "got %s", got[0].Rate)
}

func (suite *RateHistoryServiceTestSuite) TestPairSeries_TriangulatedJoin() {
	ctx := context.Background()
	baseSeries := []models.RateRecord{rec("USD", "1.10", suite.day1)} // only day1
	quoteSeries := []models.RateRecord{
		rec("GBP", "0.88", suite.day1),
		rec("GBP", "0.90", suite.day2), // no USD leg, dropped
	}
	suite.mockRepo.On("GetSeries", ctx, "EUR", "USD", suite.from, suite.to).Return(baseSeries, nil).Once()
	suite.mockRepo.On("GetSeries", ctx, "EUR", "GBP", suite.from, suite.to).Return(quoteSeries, nil).Once()

	got, err := suite.service.PairSeries(ctx, "USD", "GBP", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(suite.day1, got[0].ValuationDate)
	suite.True(decimal.RequireFromString("0.8").Equal(got[0].Rate), "0.88 / 1.10, got %s", got[0].Rate)
}

func (suite *RateHistoryServiceTestSuite) TestPairSeries_SamePairRejected() {
	ctx := context.Background()

	_, err := suite.service.PairSeries(ctx, "USD", "USD", suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Suite ---
func TestRateHistoryService(t *testing.T) {
	suite.Run(t, new(RateHistoryServiceTestSuite))
}
