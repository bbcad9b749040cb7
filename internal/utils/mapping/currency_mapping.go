package mapping

import (
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Name:          d.Name,
		NameEn:        d.NameEn,
		Symbol:        d.Symbol,
		ExchangeRate:  d.ExchangeRate,
		IsPrimary:     d.IsPrimary,
		IsActive:      d.IsActive,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Name:          m.Name,
		NameEn:        m.NameEn,
		Symbol:        m.Symbol,
		ExchangeRate:  m.ExchangeRate,
		IsPrimary:     m.IsPrimary,
		IsActive:      m.IsActive,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

// ToModelTaxRate converts a domain TaxRate to a model TaxRate
func ToModelTaxRate(d domain.TaxRate) models.TaxRate {
	return models.TaxRate{
		TaxRateID:   d.TaxRateID,
		Name:        d.Name,
		Code:        d.Code,
		Rate:        d.Rate,
		IsActive:    d.IsActive,
		IsDefault:   d.IsDefault,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		TaxRateID:   m.TaxRateID,
		Name:        m.Name,
		Code:        m.Code,
		Rate:        m.Rate,
		IsActive:    m.IsActive,
		IsDefault:   m.IsDefault,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxRateSlice converts a slice of model TaxRates to a slice of domain TaxRates
func ToDomainTaxRateSlice(ms []models.TaxRate) []domain.TaxRate {
	ds := make([]domain.TaxRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxRate(m)
	}
	return ds
}
