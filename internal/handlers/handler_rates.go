package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/plutoline/crypto_purchase_app/internal/dto"
	"github.com/plutoline/crypto_purchase_app/internal/middleware"
)

// ratesHandler handles HTTP requests for currency conversion and FX rates.
type ratesHandler struct {
	ratesService portssvc.RatesSvcFacade
}

// newRatesHandler creates a new ratesHandler.
func newRatesHandler(rs portssvc.RatesSvcFacade) *ratesHandler {
	return &ratesHandler{
		ratesService: rs,
	}
}

// registerRatesRoutes registers conversion and FX snapshot routes.
func registerRatesRoutes(rg *gin.RouterGroup, ratesService portssvc.RatesSvcFacade) {
	h := newRatesHandler(ratesService)

	rg.POST("/convert", h.convert)

	fx := rg.Group("/fx")
	fx.GET("/latest", h.latestRates)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Composes a conversion rate from upstream quotes (direct, inverse, or cross via the pivot currency) and applies it to the amount
// @Tags rates
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertRequest true "Currency pair and amount"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or unsupported currency pair"
// @Failure 500 {object} dto.ErrorResponse "Upstream quote provider failure"
// @Router /convert [post]
func (h *ratesHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid request format: "+err.Error()))
		return
	}

	from := domain.CurrencyCode(strings.ToUpper(req.From))
	to := domain.CurrencyCode(strings.ToUpper(req.To))

	logger = logger.With(slog.String("from", string(from)), slog.String("to", string(to)))

	conversion, err := h.ratesService.Convert(c.Request.Context(), from, to, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnsupportedPair):
			logger.Warn("Rejected conversion request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
		case errors.Is(err, apperrors.ErrUpstream):
			logger.Error("Upstream failure during conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewUpstreamError("Failed to fetch conversion rate", err))
		default:
			logger.Error("Failed to convert", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewError("Failed to convert"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToConversionResponse(conversion)))
}

// latestRates godoc
// @Summary Latest exchange rates for the UI base currency
// @Description Returns the rate from the configured base currency to each other supported currency, derived from one upstream request
// @Tags rates
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse "Upstream quote provider failure"
// @Router /fx/latest [get]
func (h *ratesHandler) latestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.ratesService.RatesSnapshot(c.Request.Context())
	if err != nil {
		logger.Error("Failed to fetch rate snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewUpstreamError("Failed to fetch exchange rates", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToRateSnapshotResponse(snapshot)))
}
