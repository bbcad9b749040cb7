package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// currencyService provides business logic for the currency registry.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrInvalidExchangeRate)
	}

	decimalPlaces := 2
	if req.DecimalPlaces != nil {
		decimalPlaces = *req.DecimalPlaces
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode:  strings.ToUpper(req.CurrencyCode),
		Name:          req.Name,
		NameEn:        req.NameEn,
		Symbol:        req.Symbol,
		ExchangeRate:  req.ExchangeRate,
		IsActive:      true,
		DecimalPlaces: decimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "currency created", "currency_code", currency.CurrencyCode)
	return &currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}

	if req.ExchangeRate != nil {
		if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrInvalidExchangeRate)
		}
		// The primary currency's rate stays pinned to 1.
		if currency.IsPrimary && !req.ExchangeRate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: primary currency rate is fixed at 1", apperrors.ErrValidation)
		}
		currency.ExchangeRate = *req.ExchangeRate
	}
	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.NameEn != nil {
		currency.NameEn = *req.NameEn
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.DecimalPlaces != nil {
		currency.DecimalPlaces = *req.DecimalPlaces
	}
	if req.IsActive != nil {
		if currency.IsPrimary && !*req.IsActive {
			return nil, fmt.Errorf("%w: cannot deactivate the primary currency", apperrors.ErrInvalidOperation)
		}
		currency.IsActive = *req.IsActive
	}
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

func (s *currencyService) SetPrimaryCurrency(ctx context.Context, currencyCode string, updaterUserID string) error {
	code := strings.ToUpper(currencyCode)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: cannot make an inactive currency primary", apperrors.ErrInvalidOperation)
	}

	// Clear-then-set runs inside one repository transaction so there is never
	// a moment with zero or two primaries.
	if err := s.currencyRepo.SetPrimaryCurrency(ctx, code, updaterUserID); err != nil {
		return fmt.Errorf("failed to set primary currency %s: %w", code, err)
	}

	s.LogInfo(ctx, "primary currency changed", "currency_code", code)
	return nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code: %w", err)
	}
	return currency, nil
}

func (s *currencyService) GetPrimaryCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindPrimaryCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// ConvertAmount converts between two registered currencies by pivoting through
// the primary currency: amount / from.rate brings it to the primary, x to.rate
// brings it to the target, rounded half-up to the target's decimal places.
func (s *currencyService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	from, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(fromCode))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: from currency %s", apperrors.ErrCurrencyNotFound, fromCode)
	}
	to, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(toCode))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: to currency %s", apperrors.ErrCurrencyNotFound, toCode)
	}

	// Same-currency conversion is an identity: the amount passes through
	// untouched, before any rate validation or rounding.
	if from.CurrencyCode == to.CurrencyCode {
		return amount, nil
	}

	if from.ExchangeRate.LessThanOrEqual(decimal.Zero) || to.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: conversion requires positive rates", apperrors.ErrInvalidExchangeRate)
	}

	converted := amount.Mul(to.ExchangeRate).Div(from.ExchangeRate)
	return converted.Round(int32(to.DecimalPlaces)), nil
}
