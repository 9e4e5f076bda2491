package services

import (
	"context"
	"fmt"

	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// FeeService computes purchase fee breakdowns from an immutable fee schedule.
type FeeService struct {
	schedule domain.FeeSchedule
}

var _ portssvc.FeeSvcFacade = (*FeeService)(nil)

// NewFeeService creates a new FeeService.
func NewFeeService(schedule domain.FeeSchedule) *FeeService {
	return &FeeService{schedule: schedule}
}

// CalculatePurchase validates the inputs and derives every fee component.
//
// Validation order matters: malformed/non-positive input first, then the
// configured minimum, then the net-after-fees check. The division by market
// value only happens once the net is known to be positive.
func (s *FeeService) CalculatePurchase(ctx context.Context, principal, marketValue decimal.Decimal) (*domain.FeeBreakdown, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be a positive number", apperrors.ErrValidation)
	}
	if marketValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: market value must be a positive number", apperrors.ErrValidation)
	}
	if principal.LessThan(s.schedule.MinPrincipal) {
		return nil, fmt.Errorf("%w: minimum purchase amount is %s", apperrors.ErrBelowMinimum, s.schedule.MinPrincipal)
	}

	commissionAmount := principal.Mul(s.schedule.CommissionRate)
	gstAmount := s.schedule.PlatformFee.Mul(s.schedule.GSTRate)
	totalFixedFee := s.schedule.PlatformFee.Add(gstAmount)

	netForPurchase := principal.Sub(commissionAmount).Sub(totalFixedFee)
	if netForPurchase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: fees of %s leave nothing to purchase, increase the principal", apperrors.ErrFeesExceedPrincipal, commissionAmount.Add(totalFixedFee))
	}

	return &domain.FeeBreakdown{
		Principal:        principal,
		MarketValue:      marketValue,
		CommissionRate:   s.schedule.CommissionRate,
		CommissionAmount: commissionAmount,
		PlatformFee:      s.schedule.PlatformFee,
		GSTRate:          s.schedule.GSTRate,
		GSTAmount:        gstAmount,
		TotalFixedFee:    totalFixedFee,
		NetForPurchase:   netForPurchase,
		UnitsPurchased:   netForPurchase.Div(marketValue),
		TotalCharged:     principal.Add(commissionAmount),
		MinPrincipal:     s.schedule.MinPrincipal,
	}, nil
}
