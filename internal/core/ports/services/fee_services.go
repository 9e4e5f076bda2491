package services

import (
	"context"

	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeSvcFacade defines the interface for the purchase fee calculator.
type FeeSvcFacade interface {
	// CalculatePurchase computes the full fee breakdown for buying crypto at
	// marketValue with the given cash principal. It is pure and deterministic:
	// no I/O, safe for concurrent use.
	CalculatePurchase(ctx context.Context, principal, marketValue decimal.Decimal) (*domain.FeeBreakdown, error)
}
