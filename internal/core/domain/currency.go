package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode is a 3-letter uppercase fiat currency code (e.g. "USD").
type CurrencyCode string

// CurrencySet is the immutable set of currencies the service can convert
// between, with one designated pivot currency through which indirect
// conversions are routed.
type CurrencySet struct {
	codes map[CurrencyCode]struct{}
	order []CurrencyCode
	pivot CurrencyCode
}

// NewCurrencySet builds a CurrencySet from the configured codes and pivot.
// The pivot must be a member of the set.
func NewCurrencySet(pivot CurrencyCode, codes []CurrencyCode) (CurrencySet, error) {
	if len(codes) == 0 {
		return CurrencySet{}, fmt.Errorf("currency set cannot be empty")
	}
	set := CurrencySet{
		codes: make(map[CurrencyCode]struct{}, len(codes)),
		pivot: pivot,
	}
	for _, code := range codes {
		if _, ok := set.codes[code]; ok {
			continue
		}
		set.codes[code] = struct{}{}
		set.order = append(set.order, code)
	}
	if _, ok := set.codes[pivot]; !ok {
		return CurrencySet{}, fmt.Errorf("pivot currency '%s' is not in the supported set", pivot)
	}
	return set, nil
}

// Contains reports whether code is a supported currency.
func (s CurrencySet) Contains(code CurrencyCode) bool {
	_, ok := s.codes[code]
	return ok
}

// Pivot returns the designated pivot currency.
func (s CurrencySet) Pivot() CurrencyCode {
	return s.pivot
}

// Codes returns the supported codes in configuration order.
func (s CurrencySet) Codes() []CurrencyCode {
	out := make([]CurrencyCode, len(s.order))
	copy(out, s.order)
	return out
}

// String renders the supported set for error messages, e.g. "USD, SGD, BTN".
func (s CurrencySet) String() string {
	parts := make([]string, len(s.order))
	for i, code := range s.order {
		parts[i] = string(code)
	}
	return strings.Join(parts, ", ")
}
