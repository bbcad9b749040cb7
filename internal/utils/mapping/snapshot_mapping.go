package mapping

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// ToSnapshotColumns flattens a domain FXSnapshot into the persisted columns.
func ToSnapshotColumns(s domain.FXSnapshot) (*time.Time, *decimal.Decimal, *decimal.Decimal) {
	return s.RateDate, s.USDToSYPOld, s.USDToSYPNew
}

// ToDomainSnapshot rebuilds a domain FXSnapshot from the persisted columns.
func ToDomainSnapshot(rateDate *time.Time, old, new *decimal.Decimal) domain.FXSnapshot {
	return domain.FXSnapshot{
		RateDate:    rateDate,
		USDToSYPOld: old,
		USDToSYPNew: new,
	}
}
