package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBelowMinimum indicates a purchase principal below the configured minimum.
var ErrBelowMinimum = errors.New("principal below minimum")

// ErrFeesExceedPrincipal indicates that fees consume the entire principal,
// leaving nothing to purchase with.
var ErrFeesExceedPrincipal = errors.New("fees exceed principal")

// ErrUnsupportedPair indicates a currency or coin symbol outside the supported set.
var ErrUnsupportedPair = errors.New("unsupported currency pair")

// ErrUpstream indicates a failure talking to an upstream quote provider:
// network error, non-2xx response, or a missing/non-numeric price field.
var ErrUpstream = errors.New("upstream provider error")
