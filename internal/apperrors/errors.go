package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyNotFound indicates a currency code did not resolve to a registered currency.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrInvalidExchangeRate indicates a zero or negative exchange rate.
var ErrInvalidExchangeRate = errors.New("invalid exchange rate")

// ErrNoExchangeRateConfigured indicates the daily rate ledger has no usable entry
// for the requested date (empty ledger, or strict lookup with no exact match).
var ErrNoExchangeRateConfigured = errors.New("no exchange rate configured")

// ErrNoRateSpecified indicates a rate pair normalization was requested with
// neither the legacy nor the redenominated rate supplied.
var ErrNoRateSpecified = errors.New("no exchange rate specified")

// ErrUnsupportedCurrency indicates a conversion was requested for a currency
// outside the supported transaction currency set.
var ErrUnsupportedCurrency = errors.New("unsupported transaction currency")

// ErrInvalidOperation indicates a state transition that is not allowed for the
// document's current status (e.g. cancelling a draft invoice).
var ErrInvalidOperation = errors.New("operation not allowed in current state")

// ErrCreditLimitExceeded indicates a credit invoice would push the customer past
// their configured credit limit and no override was requested.
var ErrCreditLimitExceeded = errors.New("credit limit exceeded")

// ErrAuthenticationFailed indicates bad credentials or a rejected token.
var ErrAuthenticationFailed = errors.New("authentication failed")
