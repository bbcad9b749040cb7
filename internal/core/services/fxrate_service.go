package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/utils/fxmath"
)

// fxRateService provides business logic for the daily FX rate ledger.
type fxRateService struct {
	BaseService
	rateRepo portsrepo.DailyRateRepositoryFacade
	// strictLookup disables the fall-back to the latest prior date: a date
	// without its own ledger row becomes an error instead.
	strictLookup bool
}

// NewFXRateService creates a new daily rate service.
func NewFXRateService(rateRepo portsrepo.DailyRateRepositoryFacade, strictLookup bool) portssvc.FXRateSvcFacade {
	return &fxRateService{rateRepo: rateRepo, strictLookup: strictLookup}
}

var _ portssvc.FXRateSvcFacade = (*fxRateService)(nil)

func (s *fxRateService) CreateDailyRate(ctx context.Context, req dto.CreateDailyRateRequest, creatorUserID string) (*domain.DailyExchangeRate, error) {
	oldRate, newRate, err := fxmath.Normalize(req.USDToSYPOld, req.USDToSYPNew)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.DailyExchangeRate{
		RateID:      uuid.NewString(),
		RateDate:    truncateToDay(req.RateDate),
		USDToSYPOld: oldRate,
		USDToSYPNew: newRate,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		// One row per date; the unique constraint surfaces as ErrDuplicate.
		return nil, fmt.Errorf("failed to save daily rate for %s: %w", rate.RateDate.Format(time.DateOnly), err)
	}

	s.LogInfo(ctx, "daily rate recorded",
		"rate_date", rate.RateDate.Format(time.DateOnly),
		"usd_to_syp_old", rate.USDToSYPOld.String(),
		"usd_to_syp_new", rate.USDToSYPNew.String())
	return &rate, nil
}

func (s *fxRateService) UpdateDailyRate(ctx context.Context, rateID string, req dto.UpdateDailyRateRequest, updaterUserID string) (*domain.DailyExchangeRate, error) {
	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find daily rate %s: %w", rateID, err)
	}

	if req.USDToSYPOld != nil || req.USDToSYPNew != nil {
		oldRate, newRate, err := fxmath.Normalize(req.USDToSYPOld, req.USDToSYPNew)
		if err != nil {
			return nil, err
		}
		rate.USDToSYPOld = oldRate
		rate.USDToSYPNew = newRate
	}
	if req.Notes != nil {
		rate.Notes = *req.Notes
	}
	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = updaterUserID

	// Corrections only affect future snapshots; documents keep the pair they froze.
	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		return nil, fmt.Errorf("failed to update daily rate %s: %w", rateID, err)
	}
	return rate, nil
}

func (s *fxRateService) GetRateForDate(ctx context.Context, date time.Time) (*domain.DailyExchangeRate, error) {
	day := truncateToDay(date)

	rate, err := s.rateRepo.FindRateByDate(ctx, day)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up rate for %s: %w", day.Format(time.DateOnly), err)
	}

	if s.strictLookup {
		return nil, fmt.Errorf("%w: no rate recorded for %s", apperrors.ErrNotFound, day.Format(time.DateOnly))
	}

	rate, err = s.rateRepo.FindRateOnOrBefore(ctx, day)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up prior rate for %s: %w", day.Format(time.DateOnly), err)
	}

	// Distinguish "no rate yet for this date" from "ledger never configured".
	count, countErr := s.rateRepo.CountRates(ctx)
	if countErr != nil {
		return nil, fmt.Errorf("failed to count daily rates: %w", countErr)
	}
	if count == 0 {
		return nil, apperrors.ErrNoExchangeRateConfigured
	}
	return nil, fmt.Errorf("%w: no rate on or before %s", apperrors.ErrNotFound, day.Format(time.DateOnly))
}

func (s *fxRateService) ResolveSnapshot(ctx context.Context, date time.Time) (domain.FXSnapshot, error) {
	rate, err := s.GetRateForDate(ctx, date)
	if err != nil {
		return domain.FXSnapshot{}, err
	}
	rateDate := rate.RateDate
	oldRate := rate.USDToSYPOld
	newRate := rate.USDToSYPNew
	return domain.FXSnapshot{
		RateDate:    &rateDate,
		USDToSYPOld: &oldRate,
		USDToSYPNew: &newRate,
	}, nil
}

func (s *fxRateService) ListRates(ctx context.Context, from, to *time.Time, limit int) ([]domain.DailyExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily rates: %w", err)
	}
	if rates == nil {
		return []domain.DailyExchangeRate{}, nil
	}
	return rates, nil
}

// truncateToDay normalizes a timestamp to midnight UTC so every calendar date
// has exactly one canonical ledger key.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
