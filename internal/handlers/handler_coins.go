package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/plutoline/crypto_purchase_app/internal/dto"
	"github.com/plutoline/crypto_purchase_app/internal/middleware"
)

// coinsHandler handles HTTP requests for coin prices.
type coinsHandler struct {
	ratesService portssvc.RatesSvcFacade
}

// newCoinsHandler creates a new coinsHandler.
func newCoinsHandler(rs portssvc.RatesSvcFacade) *coinsHandler {
	return &coinsHandler{
		ratesService: rs,
	}
}

// registerCoinRoutes registers coin price routes.
func registerCoinRoutes(rg *gin.RouterGroup, ratesService portssvc.RatesSvcFacade) {
	h := newCoinsHandler(ratesService)

	coins := rg.Group("/coins")
	coins.GET("/latest", h.latestPrices)
}

// latestPrices godoc
// @Summary Latest coin prices
// @Description Returns current prices for the supported coins against USD and SGD in one batched upstream request. Symbols the upstream does not return are omitted.
// @Tags coins
// @Produce json
// @Param symbols query string false "Comma-separated coin symbols (e.g. BTC,ETH); defaults to all supported"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown coin symbol"
// @Failure 500 {object} dto.ErrorResponse "Upstream price provider failure"
// @Router /coins/latest [get]
func (h *coinsHandler) latestPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	snapshot, err := h.ratesService.CoinPrices(c.Request.Context(), symbols)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedPair) {
			logger.Warn("Rejected coin price request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
			return
		}
		logger.Error("Failed to fetch coin prices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewUpstreamError("Failed to fetch coin prices", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToCoinPricesResponse(snapshot)))
}
