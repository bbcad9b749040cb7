package fxmath_test

import (
	"testing"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/utils/fxmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalize_DerivesOldFromNew(t *testing.T) {
	old, new, err := fxmath.Normalize(nil, decPtr("15000"))
	require.NoError(t, err)
	assert.True(t, old.Equal(dec("1500000")), "old = new x 100, got %s", old)
	assert.True(t, new.Equal(dec("15000")))
}

func TestNormalize_DerivesNewFromOld(t *testing.T) {
	old, new, err := fxmath.Normalize(decPtr("1500000"), nil)
	require.NoError(t, err)
	assert.True(t, old.Equal(dec("1500000")))
	assert.True(t, new.Equal(dec("15000")), "new = old / 100, got %s", new)
}

func TestNormalize_BothSuppliedReturnedUnchanged(t *testing.T) {
	// Both sides are accepted as independently supplied; no cross check.
	old, new, err := fxmath.Normalize(decPtr("1600000"), decPtr("15000"))
	require.NoError(t, err)
	assert.True(t, old.Equal(dec("1600000")))
	assert.True(t, new.Equal(dec("15000")))
}

func TestNormalize_NeitherSupplied(t *testing.T) {
	_, _, err := fxmath.Normalize(nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrNoRateSpecified)
}

func TestNormalize_RejectsNonPositiveRates(t *testing.T) {
	_, _, err := fxmath.Normalize(decPtr("0"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidExchangeRate)

	_, _, err = fxmath.Normalize(nil, decPtr("-1"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidExchangeRate)

	_, _, err = fxmath.Normalize(decPtr("1500000"), decPtr("0"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidExchangeRate)
}

func TestToUSD_SettlementIdentityRounds(t *testing.T) {
	got, err := fxmath.ToUSD(decPtr("10.005"), domain.CurrencyUSD, nil, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("10.01")), "got %s", got)
}

func TestToUSD_LegacyLocal(t *testing.T) {
	got, err := fxmath.ToUSD(decPtr("1500000"), domain.CurrencySYPOld, decPtr("1500000"), nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1.00")), "got %s", got)
}

func TestToUSD_RedenominatedLocal(t *testing.T) {
	// Only the old rate supplied; new is derived by the fixed ratio.
	got, err := fxmath.ToUSD(decPtr("30000"), domain.CurrencySYPNew, decPtr("1500000"), nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("2.00")), "got %s", got)
}

func TestToUSD_NilAmountIsZero(t *testing.T) {
	got, err := fxmath.ToUSD(nil, domain.CurrencySYPOld, decPtr("1500000"), nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestToUSD_UnsupportedCurrency(t *testing.T) {
	_, err := fxmath.ToUSD(decPtr("10"), domain.TransactionCurrency("EUR"), decPtr("1500000"), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
}

func TestFromUSD_MultipliesInsteadOfDivides(t *testing.T) {
	got, err := fxmath.FromUSD(decPtr("2"), domain.CurrencySYPNew, nil, decPtr("15000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("30000.00")), "got %s", got)
}

func TestRoundTrip_WithinOneCent(t *testing.T) {
	cases := []struct {
		amount   string
		currency domain.TransactionCurrency
		old      string
	}{
		{"1000.00", domain.CurrencySYPOld, "1500000"},
		{"999.99", domain.CurrencySYPNew, "1500000"},
		{"0.01", domain.CurrencyUSD, "1500000"},
		{"123456.78", domain.CurrencySYPOld, "987654.321"},
		{"42.42", domain.CurrencySYPNew, "3.33"},
	}
	tolerance := dec("0.01")
	for _, tc := range cases {
		usd, err := fxmath.ToUSD(decPtr(tc.amount), tc.currency, decPtr(tc.old), nil)
		require.NoError(t, err)
		back, err := fxmath.FromUSD(&usd, tc.currency, decPtr(tc.old), nil)
		require.NoError(t, err)

		// The round trip loses at most one cent of the settlement amount,
		// which in local units is bounded by the rate; compare in USD space.
		backUSD, err := fxmath.ToUSD(&back, tc.currency, decPtr(tc.old), nil)
		require.NoError(t, err)
		diff := usd.Sub(backUSD).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"%s %s: round trip drifted by %s", tc.amount, tc.currency, diff)
	}
}

func TestOldUnits(t *testing.T) {
	got, err := fxmath.OldUnits(dec("250"), domain.CurrencySYPNew, nil, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("25000")))

	got, err = fxmath.OldUnits(dec("2"), domain.CurrencyUSD, decPtr("1500000"), nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("3000000.00")), "got %s", got)

	got, err = fxmath.OldUnits(dec("77"), domain.CurrencySYPOld, nil, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("77")))
}
