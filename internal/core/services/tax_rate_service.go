package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
)

// taxRateService provides business logic for tax rate configuration.
type taxRateService struct {
	BaseService
	taxRateRepo portsrepo.TaxRateRepositoryFacade
}

// NewTaxRateService creates a new tax rate service.
func NewTaxRateService(taxRateRepo portsrepo.TaxRateRepositoryFacade) portssvc.TaxRateSvcFacade {
	return &taxRateService{taxRateRepo: taxRateRepo}
}

var _ portssvc.TaxRateSvcFacade = (*taxRateService)(nil)

func (s *taxRateService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest, creatorUserID string) (*domain.TaxRate, error) {
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	taxRate := domain.TaxRate{
		TaxRateID:   uuid.NewString(),
		Name:        req.Name,
		Code:        strings.ToUpper(req.Code),
		Rate:        req.Rate,
		IsActive:    true,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxRateRepo.SaveTaxRate(ctx, taxRate); err != nil {
		return nil, fmt.Errorf("failed to create tax rate: %w", err)
	}

	// The default flag moves atomically; it is never written directly on save.
	if req.IsDefault {
		if err := s.taxRateRepo.SetDefaultTaxRate(ctx, taxRate.TaxRateID, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to set default tax rate: %w", err)
		}
		taxRate.IsDefault = true
	}

	return &taxRate, nil
}

func (s *taxRateService) UpdateTaxRate(ctx context.Context, taxRateID string, req dto.UpdateTaxRateRequest, updaterUserID string) (*domain.TaxRate, error) {
	taxRate, err := s.taxRateRepo.FindTaxRateByID(ctx, taxRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax rate %s: %w", taxRateID, err)
	}

	if req.Rate != nil {
		if req.Rate.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
		}
		taxRate.Rate = *req.Rate
	}
	if req.Name != nil {
		taxRate.Name = *req.Name
	}
	if req.Description != nil {
		taxRate.Description = *req.Description
	}
	if req.IsActive != nil {
		if taxRate.IsDefault && !*req.IsActive {
			return nil, fmt.Errorf("%w: cannot deactivate the default tax rate", apperrors.ErrInvalidOperation)
		}
		taxRate.IsActive = *req.IsActive
	}
	taxRate.LastUpdatedAt = time.Now()
	taxRate.LastUpdatedBy = updaterUserID

	if err := s.taxRateRepo.UpdateTaxRate(ctx, *taxRate); err != nil {
		return nil, fmt.Errorf("failed to update tax rate %s: %w", taxRateID, err)
	}
	return taxRate, nil
}

func (s *taxRateService) SetDefaultTaxRate(ctx context.Context, taxRateID string, updaterUserID string) error {
	taxRate, err := s.taxRateRepo.FindTaxRateByID(ctx, taxRateID)
	if err != nil {
		return fmt.Errorf("failed to find tax rate %s: %w", taxRateID, err)
	}
	if !taxRate.IsActive {
		return fmt.Errorf("%w: cannot make an inactive tax rate the default", apperrors.ErrInvalidOperation)
	}

	if err := s.taxRateRepo.SetDefaultTaxRate(ctx, taxRateID, updaterUserID); err != nil {
		return fmt.Errorf("failed to set default tax rate %s: %w", taxRateID, err)
	}
	return nil
}

func (s *taxRateService) GetTaxRateByID(ctx context.Context, taxRateID string) (*domain.TaxRate, error) {
	taxRate, err := s.taxRateRepo.FindTaxRateByID(ctx, taxRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax rate: %w", err)
	}
	return taxRate, nil
}

func (s *taxRateService) GetDefaultTaxRate(ctx context.Context) (*domain.TaxRate, error) {
	taxRate, err := s.taxRateRepo.FindDefaultTaxRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default tax rate: %w", err)
	}
	return taxRate, nil
}

func (s *taxRateService) ListTaxRates(ctx context.Context, activeOnly bool) ([]domain.TaxRate, error) {
	rates, err := s.taxRateRepo.ListTaxRates(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	if rates == nil {
		return []domain.TaxRate{}, nil
	}
	return rates, nil
}
