package services

import (
	portsrepo "github.com/mizan-erp/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories. The FX rate
// service is constructed first because the document services freeze snapshots
// through it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	fxSvc := NewFXRateService(repos.DailyRateRepo, cfg.StrictFXLookup)

	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(repos.CurrencyRepo),
		TaxRate:  NewTaxRateService(repos.TaxRateRepo),
		FXRate:   fxSvc,
		Customer: NewCustomerService(repos.CustomerRepo, repos.InvoiceRepo, repos.PaymentRepo, repos.SalesReturnRepo, fxSvc),
		Supplier: NewSupplierService(repos.SupplierRepo, repos.PurchaseRepo, fxSvc),
		Sales:    NewSalesService(repos.InvoiceRepo, repos.PaymentRepo, repos.SalesReturnRepo, repos.CustomerRepo, repos.CreditOverrideRepo, fxSvc),
		Purchase: NewPurchaseService(repos.PurchaseRepo, repos.SupplierRepo, fxSvc),
		Auth:     NewAuthService(cfg),
	}
}
