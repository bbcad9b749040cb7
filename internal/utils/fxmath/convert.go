package fxmath

import (
	"fmt"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RedenominationRatio is the fixed structural relation between the legacy and
// redenominated local currency: 1 new unit == 100 old units. It encodes a
// one-time historical redenomination event, not a market rate, and is never
// configurable per call.
var RedenominationRatio = decimal.NewFromInt(100)

// settlementPlaces is the decimal precision of all settlement currency amounts.
const settlementPlaces = 2

// Normalize completes a USD→SYP rate pair from whichever side was supplied.
// Given only the new rate, old = new x 100; given only the old rate,
// new = old / 100. When both are supplied they are validated independently and
// returned unchanged; no cross-consistency check is imposed.
func Normalize(old, new *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if old == nil && new == nil {
		return decimal.Decimal{}, decimal.Decimal{}, apperrors.ErrNoRateSpecified
	}
	if old != nil && old.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: usd_to_syp_old must be positive, got %s", apperrors.ErrInvalidExchangeRate, old)
	}
	if new != nil && new.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: usd_to_syp_new must be positive, got %s", apperrors.ErrInvalidExchangeRate, new)
	}
	switch {
	case old == nil:
		return new.Mul(RedenominationRatio), *new, nil
	case new == nil:
		return *old, old.Div(RedenominationRatio), nil
	default:
		return *old, *new, nil
	}
}

// ToUSD converts an amount in the given transaction currency into the
// settlement currency, rounded to two places. A nil amount converts to 0.00.
// Either rate of the snapshot pair may be omitted; the other is derived.
func ToUSD(amount *decimal.Decimal, currency domain.TransactionCurrency, old, new *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero.Round(settlementPlaces), nil
	}
	if currency == domain.CurrencyUSD {
		return amount.Round(settlementPlaces), nil
	}
	oldRate, newRate, err := Normalize(old, new)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch currency {
	case domain.CurrencySYPOld:
		return amount.Div(oldRate).Round(settlementPlaces), nil
	case domain.CurrencySYPNew:
		return amount.Div(newRate).Round(settlementPlaces), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, currency)
	}
}

// FromUSD converts a settlement currency amount into the given transaction
// currency, rounded to two places. It is the inverse of ToUSD up to one cent.
func FromUSD(amountUSD *decimal.Decimal, currency domain.TransactionCurrency, old, new *decimal.Decimal) (decimal.Decimal, error) {
	if amountUSD == nil {
		return decimal.Zero.Round(settlementPlaces), nil
	}
	if currency == domain.CurrencyUSD {
		return amountUSD.Round(settlementPlaces), nil
	}
	oldRate, newRate, err := Normalize(old, new)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch currency {
	case domain.CurrencySYPOld:
		return amountUSD.Mul(oldRate).Round(settlementPlaces), nil
	case domain.CurrencySYPNew:
		return amountUSD.Mul(newRate).Round(settlementPlaces), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, currency)
	}
}

// OldUnits re-expresses a local amount in legacy local units, the denomination
// party ledger balances are kept in. USD amounts go through the snapshot pair.
func OldUnits(amount decimal.Decimal, currency domain.TransactionCurrency, old, new *decimal.Decimal) (decimal.Decimal, error) {
	switch currency {
	case domain.CurrencySYPOld:
		return amount, nil
	case domain.CurrencySYPNew:
		return amount.Mul(RedenominationRatio), nil
	case domain.CurrencyUSD:
		return FromUSD(&amount, domain.CurrencySYPOld, old, new)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, currency)
	}
}
