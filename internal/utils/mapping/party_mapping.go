package mapping

import (
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:        d.CustomerID,
		Code:              d.Code,
		Name:              d.Name,
		NameEn:            d.NameEn,
		CustomerType:      string(d.CustomerType),
		Phone:             d.Phone,
		Address:           d.Address,
		CreditLimit:       d.CreditLimit,
		PaymentTermsDays:  d.PaymentTermsDays,
		DiscountPercent:   d.DiscountPercent,
		OpeningBalance:    d.OpeningBalance,
		OpeningBalanceUSD: d.OpeningBalanceUSD,
		CurrentBalance:    d.CurrentBalance,
		CurrentBalanceUSD: d.CurrentBalanceUSD,
		Notes:             d.Notes,
		IsActive:          d.IsActive,
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:        m.CustomerID,
		Code:              m.Code,
		Name:              m.Name,
		NameEn:            m.NameEn,
		CustomerType:      domain.CustomerType(m.CustomerType),
		Phone:             m.Phone,
		Address:           m.Address,
		CreditLimit:       m.CreditLimit,
		PaymentTermsDays:  m.PaymentTermsDays,
		DiscountPercent:   m.DiscountPercent,
		OpeningBalance:    m.OpeningBalance,
		OpeningBalanceUSD: m.OpeningBalanceUSD,
		CurrentBalance:    m.CurrentBalance,
		CurrentBalanceUSD: m.CurrentBalanceUSD,
		Notes:             m.Notes,
		IsActive:          m.IsActive,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}

// ToModelSupplier converts a domain Supplier to a model Supplier
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:        d.SupplierID,
		Code:              d.Code,
		Name:              d.Name,
		NameEn:            d.NameEn,
		Phone:             d.Phone,
		Address:           d.Address,
		PaymentTermsDays:  d.PaymentTermsDays,
		OpeningBalance:    d.OpeningBalance,
		OpeningBalanceUSD: d.OpeningBalanceUSD,
		CurrentBalance:    d.CurrentBalance,
		CurrentBalanceUSD: d.CurrentBalanceUSD,
		Notes:             d.Notes,
		IsActive:          d.IsActive,
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:        m.SupplierID,
		Code:              m.Code,
		Name:              m.Name,
		NameEn:            m.NameEn,
		Phone:             m.Phone,
		Address:           m.Address,
		PaymentTermsDays:  m.PaymentTermsDays,
		OpeningBalance:    m.OpeningBalance,
		OpeningBalanceUSD: m.OpeningBalanceUSD,
		CurrentBalance:    m.CurrentBalance,
		CurrentBalanceUSD: m.CurrentBalanceUSD,
		Notes:             m.Notes,
		IsActive:          m.IsActive,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSupplierSlice converts a slice of model Suppliers to domain Suppliers
func ToDomainSupplierSlice(ms []models.Supplier) []domain.Supplier {
	ds := make([]domain.Supplier, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSupplier(m)
	}
	return ds
}
