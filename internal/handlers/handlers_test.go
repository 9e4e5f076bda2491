package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/plutoline/crypto_purchase_app/internal/handlers"
	"github.com/plutoline/crypto_purchase_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FeeSvcFacade ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) CalculatePurchase(ctx context.Context, principal, marketValue decimal.Decimal) (*domain.FeeBreakdown, error) {
	args := m.Called(ctx, principal, marketValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeBreakdown), args.Error(1)
}

// --- Mock RatesSvcFacade ---
type MockRatesService struct {
	mock.Mock
}

func (m *MockRatesService) GetRate(ctx context.Context, from, to domain.CurrencyCode) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatesService) Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockRatesService) RatesSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRatesService) CoinPrices(ctx context.Context, symbols []string) (domain.CoinPriceSnapshot, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CoinPriceSnapshot), args.Error(1)
}

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockFee   *MockFeeService
	mockRates *MockRatesService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockFee = new(MockFeeService)
	suite.mockRates = new(MockRatesService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Fee:   suite.mockFee,
		Rates: suite.mockRates,
	})
}

func (suite *HandlersTestSuite) performRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (suite *HandlersTestSuite) TestHealthCheck() {
	w := suite.performRequest(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestCalculatePurchase_Success() {
	breakdown := &domain.FeeBreakdown{
		Principal:        decimal.RequireFromString("10"),
		MarketValue:      decimal.RequireFromString("100"),
		CommissionRate:   decimal.RequireFromString("0.03"),
		CommissionAmount: decimal.RequireFromString("0.30"),
		PlatformFee:      decimal.RequireFromString("0.99"),
		GSTRate:          decimal.RequireFromString("0.09"),
		GSTAmount:        decimal.RequireFromString("0.0891"),
		TotalFixedFee:    decimal.RequireFromString("1.0791"),
		NetForPurchase:   decimal.RequireFromString("8.6209"),
		UnitsPurchased:   decimal.RequireFromString("0.086209"),
		TotalCharged:     decimal.RequireFromString("10.30"),
		MinPrincipal:     decimal.RequireFromString("10"),
	}
	suite.mockFee.On("CalculatePurchase", mock.Anything,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("10")) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("100")) }),
	).Return(breakdown, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/calc", []byte(`{"principal":10,"marketValue":"100"}`))

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.True(env.OK)
	suite.Contains(string(env.Data), `"unitsPurchased":"0.086209"`)
	suite.Contains(string(env.Data), `"totalCharged":"10.3"`)
	suite.mockFee.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCalculatePurchase_MalformedBody() {
	w := suite.performRequest(http.MethodPost, "/api/calc", []byte(`{"principal":`))

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.False(env.OK)
	suite.Contains(env.Message, "Invalid request format")
	suite.mockFee.AssertNotCalled(suite.T(), "CalculatePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestCalculatePurchase_DomainRejections() {
	tests := []struct {
		name string
		err  error
	}{
		{"validation", apperrors.ErrValidation},
		{"below minimum", apperrors.ErrBelowMinimum},
		{"fees exceed principal", apperrors.ErrFeesExceedPrincipal},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.mockFee.On("CalculatePurchase", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.performRequest(http.MethodPost, "/api/calc", []byte(`{"principal":1,"marketValue":100}`))

			suite.Equal(http.StatusBadRequest, w.Code)
			env := suite.decode(w)
			suite.False(env.OK)
			suite.NotEmpty(env.Message)
		})
	}
}

func (suite *HandlersTestSuite) TestConvert_Success() {
	conversion := &domain.Conversion{
		From:         "USD",
		To:           "SGD",
		InputAmount:  decimal.RequireFromString("100"),
		Rate:         1.35,
		OutputAmount: decimal.RequireFromString("135"),
	}
	suite.mockRates.On("Convert", mock.Anything, domain.CurrencyCode("USD"), domain.CurrencyCode("SGD"), mock.Anything).
		Return(conversion, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/convert", []byte(`{"from":"usd","to":"sgd","amount":100}`))

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.True(env.OK)
	suite.Contains(string(env.Data), `"rate":1.35`)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvert_MalformedCurrencyCode() {
	w := suite.performRequest(http.MethodPost, "/api/convert", []byte(`{"from":"US1","to":"SGD","amount":100}`))

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.False(env.OK)
	suite.Contains(env.Message, "Invalid request format")
	suite.mockRates.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestConvert_UnsupportedPair() {
	suite.mockRates.On("Convert", mock.Anything, domain.CurrencyCode("EUR"), domain.CurrencyCode("SGD"), mock.Anything).
		Return(nil, apperrors.ErrUnsupportedPair).Once()

	w := suite.performRequest(http.MethodPost, "/api/convert", []byte(`{"from":"EUR","to":"SGD","amount":100}`))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).OK)
}

func (suite *HandlersTestSuite) TestConvert_UpstreamFailure() {
	suite.mockRates.On("Convert", mock.Anything, domain.CurrencyCode("USD"), domain.CurrencyCode("SGD"), mock.Anything).
		Return(nil, apperrors.ErrUpstream).Once()

	w := suite.performRequest(http.MethodPost, "/api/convert", []byte(`{"from":"USD","to":"SGD","amount":100}`))

	suite.Equal(http.StatusInternalServerError, w.Code)
	env := suite.decode(w)
	suite.False(env.OK)
	suite.Equal("Failed to fetch conversion rate", env.Message)
	suite.NotEmpty(env.Error)
}

func (suite *HandlersTestSuite) TestLatestRates_Success() {
	snapshot := &domain.RateSnapshot{
		Base:   "SGD",
		Rates:  map[domain.CurrencyCode]float64{"USD": 0.7407, "BTN": 61.64},
		Source: "exchangerate.host",
	}
	suite.mockRates.On("RatesSnapshot", mock.Anything).Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/fx/latest", nil)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.True(env.OK)
	suite.Contains(string(env.Data), `"base":"SGD"`)
	suite.Contains(string(env.Data), `"source":"exchangerate.host"`)
}

func (suite *HandlersTestSuite) TestLatestRates_UpstreamFailure() {
	suite.mockRates.On("RatesSnapshot", mock.Anything).Return(nil, apperrors.ErrUpstream).Once()

	w := suite.performRequest(http.MethodGet, "/api/fx/latest", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	env := suite.decode(w)
	suite.False(env.OK)
	suite.Equal("Failed to fetch exchange rates", env.Message)
}

func (suite *HandlersTestSuite) TestLatestCoinPrices_Success() {
	snapshot := domain.CoinPriceSnapshot{
		"BTC": {USD: 64000.1, SGD: 86500.2},
		"ETH": {USD: 2600.5, SGD: 3515.8},
	}
	suite.mockRates.On("CoinPrices", mock.Anything, []string(nil)).Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/coins/latest", nil)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.True(env.OK)
	suite.Contains(string(env.Data), `"BTC"`)
	suite.Contains(string(env.Data), `"usd":64000.1`)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestLatestCoinPrices_SymbolsQuerySplit() {
	snapshot := domain.CoinPriceSnapshot{"BTC": {USD: 64000.1, SGD: 86500.2}}
	suite.mockRates.On("CoinPrices", mock.Anything, []string{"BTC", "ETH"}).Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/coins/latest?symbols=BTC,ETH", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestLatestCoinPrices_UnknownSymbol() {
	suite.mockRates.On("CoinPrices", mock.Anything, []string{"XRP"}).Return(nil, apperrors.ErrUnsupportedPair).Once()

	w := suite.performRequest(http.MethodGet, "/api/coins/latest?symbols=XRP", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).OK)
}

func (suite *HandlersTestSuite) TestLatestCoinPrices_UpstreamFailure() {
	suite.mockRates.On("CoinPrices", mock.Anything, []string(nil)).Return(nil, apperrors.ErrUpstream).Once()

	w := suite.performRequest(http.MethodGet, "/api/coins/latest", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	env := suite.decode(w)
	suite.False(env.OK)
	suite.Equal("Failed to fetch coin prices", env.Message)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestValidCurrencyCodeBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRates := new(MockRatesService)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Fee:   new(MockFeeService),
		Rates: mockRates,
	})

	for _, body := range []string{
		`{"from":"","to":"SGD","amount":1}`,
		`{"from":"USDD","to":"SGD","amount":1}`,
		`{"from":"US$","to":"SGD","amount":1}`,
	} {
		req, _ := http.NewRequest(http.MethodPost, "/api/convert", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s must fail shape validation", body)
	}
	mockRates.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
