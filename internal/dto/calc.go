package dto

import (
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculatePurchaseRequest defines the input for a fee calculation. The
// decimal fields accept JSON numbers or numeric strings; positivity and the
// configured minimum are validated by the service.
type CalculatePurchaseRequest struct {
	Principal   decimal.Decimal `json:"principal"`
	MarketValue decimal.Decimal `json:"marketValue"`
}

// FeeBreakdownResponse echoes every fee component so the caller can render a
// complete purchase breakdown without recomputing.
type FeeBreakdownResponse struct {
	Principal   decimal.Decimal `json:"principal"`
	MarketValue decimal.Decimal `json:"marketValue"`

	CommissionRate   decimal.Decimal `json:"commissionRate"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	PlatformFee      decimal.Decimal `json:"platformFee"`
	GSTRate          decimal.Decimal `json:"gstRate"`
	GSTAmount        decimal.Decimal `json:"gstAmount"`
	TotalFixedFee    decimal.Decimal `json:"totalFixedFee"`

	NetForPurchase decimal.Decimal `json:"netForPurchase"`
	UnitsPurchased decimal.Decimal `json:"unitsPurchased"`
	TotalCharged   decimal.Decimal `json:"totalCharged"`

	MinimumPrincipal decimal.Decimal `json:"minimumPrincipal"`
}

// ToFeeBreakdownResponse converts a domain.FeeBreakdown to its DTO.
func ToFeeBreakdownResponse(b *domain.FeeBreakdown) FeeBreakdownResponse {
	return FeeBreakdownResponse{
		Principal:        b.Principal,
		MarketValue:      b.MarketValue,
		CommissionRate:   b.CommissionRate,
		CommissionAmount: b.CommissionAmount,
		PlatformFee:      b.PlatformFee,
		GSTRate:          b.GSTRate,
		GSTAmount:        b.GSTAmount,
		TotalFixedFee:    b.TotalFixedFee,
		NetForPurchase:   b.NetForPurchase,
		UnitsPurchased:   b.UnitsPurchased,
		TotalCharged:     b.TotalCharged,
		MinimumPrincipal: b.MinPrincipal,
	}
}
