package domain

import "github.com/shopspring/decimal"

// FeeSchedule holds the immutable fee constants applied to every purchase.
// Values come from configuration at startup and are never mutated.
type FeeSchedule struct {
	// CommissionRate is the percentage fee taken on the principal (e.g. 0.03).
	CommissionRate decimal.Decimal
	// PlatformFee is the flat fee per transaction, subject to GST (e.g. 0.99).
	PlatformFee decimal.Decimal
	// GSTRate is applied on top of the flat platform fee (e.g. 0.09).
	GSTRate decimal.Decimal
	// MinPrincipal is the smallest principal accepted for a purchase.
	MinPrincipal decimal.Decimal
}

// FeeBreakdown is the full purchase breakdown for a principal at a given
// market value. Every component is echoed so callers can render the
// breakdown without recomputing anything.
//
// The commission is charged on top of the principal while the flat fee and
// GST are absorbed out of the principal. That asymmetry is a deliberate
// business rule: TotalCharged = Principal + CommissionAmount, and
// NetForPurchase = Principal - CommissionAmount - TotalFixedFee.
type FeeBreakdown struct {
	Principal   decimal.Decimal
	MarketValue decimal.Decimal

	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	PlatformFee      decimal.Decimal
	GSTRate          decimal.Decimal
	GSTAmount        decimal.Decimal
	TotalFixedFee    decimal.Decimal

	NetForPurchase decimal.Decimal
	UnitsPurchased decimal.Decimal
	TotalCharged   decimal.Decimal

	MinPrincipal decimal.Decimal
}
