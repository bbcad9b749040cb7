package domain_test

import (
	"testing"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceItem_Derivation(t *testing.T) {
	it := domain.InvoiceItem{
		Quantity:        d("4"),
		UnitPrice:       d("250.00"),
		CostPrice:       d("180.00"),
		DiscountPercent: d("10"),
		TaxRate:         d("15"),
	}

	assert.True(t, it.Subtotal().Equal(d("1000.00")), "subtotal %s", it.Subtotal())
	assert.True(t, it.DiscountAmount().Equal(d("100.00")), "discount %s", it.DiscountAmount())
	assert.True(t, it.TaxableAmount().Equal(d("900.00")), "taxable %s", it.TaxableAmount())
	assert.True(t, it.TaxAmount().Equal(d("135.00")), "tax %s", it.TaxAmount())
	assert.True(t, it.Total().Equal(d("1035.00")), "total %s", it.Total())
	assert.True(t, it.Profit().Equal(d("280.00")), "profit %s", it.Profit())
}

func TestInvoiceItem_DiscountBeforeTax(t *testing.T) {
	// Tax applies to the discounted base, never the other way around.
	it := domain.InvoiceItem{
		Quantity:        d("1"),
		UnitPrice:       d("100.00"),
		DiscountPercent: d("50"),
		TaxRate:         d("10"),
	}
	assert.True(t, it.Total().Equal(d("55.00")), "total %s", it.Total())
}

func TestSalesReturnItem_ProportionalValue(t *testing.T) {
	// A returned quantity is valued with the original line discount and tax.
	it := domain.SalesReturnItem{
		Quantity:        d("2"),
		UnitPrice:       d("250.00"),
		DiscountPercent: d("10"),
		TaxRate:         d("15"),
	}
	assert.True(t, it.LineTotal().Equal(d("517.50")), "line total %s", it.LineTotal())
}

func TestPurchaseOrderItem_NoTax(t *testing.T) {
	it := domain.PurchaseOrderItem{
		Quantity:        d("10"),
		UnitPrice:       d("8.50"),
		DiscountPercent: d("5"),
	}
	assert.True(t, it.Subtotal().Equal(d("85.00")))
	assert.True(t, it.Total().Equal(d("80.75")), "total %s", it.Total())
}

func TestInvoice_RemainingAmounts(t *testing.T) {
	inv := domain.Invoice{
		TotalAmount:    d("1000.00"),
		PaidAmount:     d("400.00"),
		TotalAmountUSD: d("2.00"),
		PaidAmountUSD:  d("0.80"),
	}
	assert.True(t, inv.RemainingAmount().Equal(d("600.00")))
	assert.True(t, inv.RemainingAmountUSD().Equal(d("1.20")))
}

func TestBalanceDelta_Neg(t *testing.T) {
	delta := domain.BalanceDelta{Local: d("1500"), USD: d("1")}
	neg := delta.Neg()
	assert.True(t, neg.Local.Equal(d("-1500")))
	assert.True(t, neg.USD.Equal(d("-1")))
	assert.False(t, delta.IsZero())
	assert.True(t, domain.BalanceDelta{}.IsZero())
}
