package mapping

import (
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/models"
)

// ToModelDailyExchangeRate converts a domain DailyExchangeRate to a model DailyExchangeRate
func ToModelDailyExchangeRate(d domain.DailyExchangeRate) models.DailyExchangeRate {
	return models.DailyExchangeRate{
		RateID:      d.RateID,
		RateDate:    d.RateDate,
		USDToSYPOld: d.USDToSYPOld,
		USDToSYPNew: d.USDToSYPNew,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDailyExchangeRate converts a model DailyExchangeRate to a domain DailyExchangeRate
func ToDomainDailyExchangeRate(m models.DailyExchangeRate) domain.DailyExchangeRate {
	return domain.DailyExchangeRate{
		RateID:      m.RateID,
		RateDate:    m.RateDate,
		USDToSYPOld: m.USDToSYPOld,
		USDToSYPNew: m.USDToSYPNew,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDailyExchangeRateSlice converts a slice of model rates to domain rates
func ToDomainDailyExchangeRateSlice(ms []models.DailyExchangeRate) []domain.DailyExchangeRate {
	ds := make([]domain.DailyExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDailyExchangeRate(m)
	}
	return ds
}
