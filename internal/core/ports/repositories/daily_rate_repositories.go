package repositories

import (
	"context"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// DailyRateReader defines read operations for the daily FX rate ledger
type DailyRateReader interface {
	// FindRateByID retrieves a rate row by its identifier.
	FindRateByID(ctx context.Context, rateID string) (*domain.DailyExchangeRate, error)

	// FindRateByDate retrieves the rate row for an exact calendar date.
	FindRateByDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error)

	// FindRateOnOrBefore retrieves the most recent rate row dated on or before
	// the given date. Returns apperrors.ErrNotFound when no such row exists.
	FindRateOnOrBefore(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error)

	// ListRates retrieves rate rows within an optional date range, newest first.
	ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error)

	// CountRates reports how many rate rows exist in the ledger.
	CountRates(ctx context.Context) (int64, error)
}

// DailyRateWriter defines write operations for the daily FX rate ledger
type DailyRateWriter interface {
	// SaveRate persists a new daily rate. A row for the same date already
	// existing surfaces as apperrors.ErrDuplicate.
	SaveRate(ctx context.Context, rate domain.DailyExchangeRate) error

	// UpdateRate corrects an existing rate row. Documents snapshotted from the
	// old values keep them; only future snapshots see the correction.
	UpdateRate(ctx context.Context, rate domain.DailyExchangeRate) error
}

// DailyRateRepositoryFacade combines all daily-rate repository interfaces
type DailyRateRepositoryFacade interface {
	DailyRateReader
	DailyRateWriter
}

// DailyRateRepositoryWithTx extends DailyRateRepositoryFacade with transaction capabilities
type DailyRateRepositoryWithTx interface {
	DailyRateRepositoryFacade
	TransactionManager
}
