package domain

// QuoteConvention documents the direction of every upstream FX quote this
// service consumes: a quote requested for (base, symbol) is the number of
// units of symbol per 1 unit of base. Routing that needs the opposite
// direction must take the reciprocal. Getting this backwards silently inverts
// every downstream price, so the convention is fixed here and asserted in the
// rate router tests rather than inferred per call.
const QuoteConvention = "symbol-per-1-base"

// PairRoute classifies how a conversion pair decomposes against the pivot
// currency. It is a closed set: every supported pair maps to exactly one
// route, and the reciprocal rules per route are what the router implements.
type PairRoute int

const (
	// RouteUnsupported means one or both codes are outside the supported set.
	RouteUnsupported PairRoute = iota

	// RouteIdentity is from == to; the rate is 1 with no upstream call.
	RouteIdentity

	// RoutePivotBase is from == pivot; one quote (pivot, to), used directly.
	RoutePivotBase

	// RoutePivotQuote is to == pivot; one quote (pivot, from), reciprocal.
	RoutePivotQuote

	// RouteCross has the pivot on neither side; one batched quote request for
	// (pivot, {from, to}) and the rate is the ratio rates[to] / rates[from].
	RouteCross
)

// ClassifyPair resolves the route for a from/to pair against the set's pivot.
func ClassifyPair(set CurrencySet, from, to CurrencyCode) PairRoute {
	if !set.Contains(from) || !set.Contains(to) {
		return RouteUnsupported
	}
	switch {
	case from == to:
		return RouteIdentity
	case from == set.Pivot():
		return RoutePivotBase
	case to == set.Pivot():
		return RoutePivotQuote
	default:
		return RouteCross
	}
}
