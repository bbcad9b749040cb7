package services

import (
	"context"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// FXRateReaderSvc defines read operations for the daily FX rate ledger
type FXRateReaderSvc interface {
	// GetRateForDate resolves the rate pair applying on a date: the row for
	// that exact date, or the most recent prior row when none exists. In
	// strict mode a missing exact row is an error instead of a fallback.
	GetRateForDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error)

	// ResolveSnapshot freezes the rate pair applying on a date into a snapshot
	// ready to be stamped onto a document.
	ResolveSnapshot(ctx context.Context, date time.Time) (domain.FXSnapshot, error)

	// ListRates retrieves ledger rows within an optional date range, newest first.
	ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error)
}

// FXRateWriterSvc defines write operations for the daily FX rate ledger
type FXRateWriterSvc interface {
	// CreateDailyRate records the rate pair for one date. Missing sides are
	// derived through the redenomination ratio.
	CreateDailyRate(ctx context.Context, req dto.CreateDailyRateRequest, creatorUserID string) (*domain.DailyExchangeRate, error)

	// UpdateDailyRate corrects an existing ledger row. Documents already
	// snapshotted keep their frozen pair.
	UpdateDailyRate(ctx context.Context, rateID string, req dto.UpdateDailyRateRequest, updaterUserID string) (*domain.DailyExchangeRate, error)
}

// FXRateSvcFacade combines all daily-rate service interfaces
type FXRateSvcFacade interface {
	FXRateReaderSvc
	FXRateWriterSvc
}
