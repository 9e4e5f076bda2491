package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/plutoline/crypto_purchase_app/internal/dto"
	"github.com/plutoline/crypto_purchase_app/internal/middleware"
)

// calcHandler handles HTTP requests for purchase fee calculations.
type calcHandler struct {
	feeService portssvc.FeeSvcFacade
}

// newCalcHandler creates a new calcHandler.
func newCalcHandler(fs portssvc.FeeSvcFacade) *calcHandler {
	return &calcHandler{
		feeService: fs,
	}
}

// registerCalcRoutes registers the fee calculator route.
func registerCalcRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newCalcHandler(feeService)
	rg.POST("/calc", h.calculatePurchase)
}

// calculatePurchase godoc
// @Summary Calculate a purchase fee breakdown
// @Description Computes commission, platform fee, GST, net amount and units purchased for a cash principal at a given market value
// @Tags calc
// @Accept json
// @Produce json
// @Param purchase body dto.CalculatePurchaseRequest true "Principal and market value (numbers or numeric strings)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, below minimum, or fees exceed principal"
// @Router /calc [post]
func (h *calcHandler) calculatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for calculatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid request format: "+err.Error()))
		return
	}

	breakdown, err := h.feeService.CalculatePurchase(c.Request.Context(), req.Principal, req.MarketValue)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, apperrors.ErrBelowMinimum) ||
			errors.Is(err, apperrors.ErrFeesExceedPrincipal) {
			logger.Warn("Rejected fee calculation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
		} else {
			logger.Error("Failed to calculate purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewError("Failed to calculate purchase"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccess(dto.ToFeeBreakdownResponse(breakdown)))
}
