package mapping

import (
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. Items are
// mapped separately because they live in their own table.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	rateDate, old, new := ToSnapshotColumns(d.Snapshot)
	return models.Invoice{
		InvoiceID:           d.InvoiceID,
		InvoiceNumber:       d.InvoiceNumber,
		InvoiceType:         string(d.InvoiceType),
		CustomerID:          d.CustomerID,
		InvoiceDate:         d.InvoiceDate,
		DueDate:             d.DueDate,
		Status:              string(d.Status),
		TransactionCurrency: string(d.TransactionCurrency),
		FxRateDate:          rateDate,
		UsdToSypOldSnapshot: old,
		UsdToSypNewSnapshot: new,
		Subtotal:            d.Subtotal,
		DiscountPercent:     d.DiscountPercent,
		DiscountAmount:      d.DiscountAmount,
		TaxAmount:           d.TaxAmount,
		TotalAmount:         d.TotalAmount,
		TotalAmountUSD:      d.TotalAmountUSD,
		PaidAmount:          d.PaidAmount,
		PaidAmountUSD:       d.PaidAmountUSD,
		Notes:               d.Notes,
		InternalNotes:       d.InternalNotes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:           m.InvoiceID,
		InvoiceNumber:       m.InvoiceNumber,
		InvoiceType:         domain.InvoiceType(m.InvoiceType),
		CustomerID:          m.CustomerID,
		InvoiceDate:         m.InvoiceDate,
		DueDate:             m.DueDate,
		Status:              domain.InvoiceStatus(m.Status),
		TransactionCurrency: domain.TransactionCurrency(m.TransactionCurrency),
		Snapshot:            ToDomainSnapshot(m.FxRateDate, m.UsdToSypOldSnapshot, m.UsdToSypNewSnapshot),
		Subtotal:            m.Subtotal,
		DiscountPercent:     m.DiscountPercent,
		DiscountAmount:      m.DiscountAmount,
		TaxAmount:           m.TaxAmount,
		TotalAmount:         m.TotalAmount,
		TotalAmountUSD:      m.TotalAmountUSD,
		PaidAmount:          m.PaidAmount,
		PaidAmountUSD:       m.PaidAmountUSD,
		Notes:               m.Notes,
		InternalNotes:       m.InternalNotes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:          d.ItemID,
		InvoiceID:       d.InvoiceID,
		ProductID:       d.ProductID,
		ProductName:     d.ProductName,
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		CostPrice:       d.CostPrice,
		DiscountPercent: d.DiscountPercent,
		TaxRate:         d.TaxRate,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:          m.ItemID,
		InvoiceID:       m.InvoiceID,
		ProductID:       m.ProductID,
		ProductName:     m.ProductName,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		CostPrice:       m.CostPrice,
		DiscountPercent: m.DiscountPercent,
		TaxRate:         m.TaxRate,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceItemSlice converts a slice of model InvoiceItems to domain InvoiceItems
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	ds := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceItem(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	rateDate, old, new := ToSnapshotColumns(d.Snapshot)
	return models.Payment{
		PaymentID:           d.PaymentID,
		PaymentNumber:       d.PaymentNumber,
		CustomerID:          d.CustomerID,
		InvoiceID:           d.InvoiceID,
		PaymentDate:         d.PaymentDate,
		TransactionCurrency: string(d.TransactionCurrency),
		FxRateDate:          rateDate,
		UsdToSypOldSnapshot: old,
		UsdToSypNewSnapshot: new,
		Amount:              d.Amount,
		AmountUSD:           d.AmountUSD,
		PaymentMethod:       string(d.PaymentMethod),
		Reference:           d.Reference,
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:           m.PaymentID,
		PaymentNumber:       m.PaymentNumber,
		CustomerID:          m.CustomerID,
		InvoiceID:           m.InvoiceID,
		PaymentDate:         m.PaymentDate,
		TransactionCurrency: domain.TransactionCurrency(m.TransactionCurrency),
		Snapshot:            ToDomainSnapshot(m.FxRateDate, m.UsdToSypOldSnapshot, m.UsdToSypNewSnapshot),
		Amount:              m.Amount,
		AmountUSD:           m.AmountUSD,
		PaymentMethod:       domain.PaymentMethod(m.PaymentMethod),
		Reference:           m.Reference,
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelPaymentAllocation converts a domain PaymentAllocation to its model
func ToModelPaymentAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID: d.AllocationID,
		PaymentID:    d.PaymentID,
		InvoiceID:    d.InvoiceID,
		Amount:       d.Amount,
		AmountUSD:    d.AmountUSD,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentAllocation converts a model PaymentAllocation to its domain form
func ToDomainPaymentAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID: m.AllocationID,
		PaymentID:    m.PaymentID,
		InvoiceID:    m.InvoiceID,
		Amount:       m.Amount,
		AmountUSD:    m.AmountUSD,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentAllocationSlice converts a slice of model allocations to domain allocations
func ToDomainPaymentAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	ds := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentAllocation(m)
	}
	return ds
}

// ToModelSalesReturn converts a domain SalesReturn to a model SalesReturn
func ToModelSalesReturn(d domain.SalesReturn) models.SalesReturn {
	rateDate, old, new := ToSnapshotColumns(d.Snapshot)
	return models.SalesReturn{
		ReturnID:            d.ReturnID,
		ReturnNumber:        d.ReturnNumber,
		InvoiceID:           d.InvoiceID,
		ReturnDate:          d.ReturnDate,
		TransactionCurrency: string(d.TransactionCurrency),
		FxRateDate:          rateDate,
		UsdToSypOldSnapshot: old,
		UsdToSypNewSnapshot: new,
		TotalAmount:         d.TotalAmount,
		TotalAmountUSD:      d.TotalAmountUSD,
		Reason:              d.Reason,
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalesReturn converts a model SalesReturn to a domain SalesReturn
func ToDomainSalesReturn(m models.SalesReturn) domain.SalesReturn {
	return domain.SalesReturn{
		ReturnID:            m.ReturnID,
		ReturnNumber:        m.ReturnNumber,
		InvoiceID:           m.InvoiceID,
		ReturnDate:          m.ReturnDate,
		TransactionCurrency: domain.TransactionCurrency(m.TransactionCurrency),
		Snapshot:            ToDomainSnapshot(m.FxRateDate, m.UsdToSypOldSnapshot, m.UsdToSypNewSnapshot),
		TotalAmount:         m.TotalAmount,
		TotalAmountUSD:      m.TotalAmountUSD,
		Reason:              m.Reason,
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalesReturnSlice converts a slice of model SalesReturns to domain SalesReturns
func ToDomainSalesReturnSlice(ms []models.SalesReturn) []domain.SalesReturn {
	ds := make([]domain.SalesReturn, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalesReturn(m)
	}
	return ds
}

// ToModelSalesReturnItem converts a domain SalesReturnItem to its model
func ToModelSalesReturnItem(d domain.SalesReturnItem) models.SalesReturnItem {
	return models.SalesReturnItem{
		ReturnItemID:    d.ReturnItemID,
		ReturnID:        d.ReturnID,
		InvoiceItemID:   d.InvoiceItemID,
		ProductID:       d.ProductID,
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		DiscountPercent: d.DiscountPercent,
		TaxRate:         d.TaxRate,
		Reason:          d.Reason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalesReturnItem converts a model SalesReturnItem to its domain form
func ToDomainSalesReturnItem(m models.SalesReturnItem) domain.SalesReturnItem {
	return domain.SalesReturnItem{
		ReturnItemID:    m.ReturnItemID,
		ReturnID:        m.ReturnID,
		InvoiceItemID:   m.InvoiceItemID,
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		DiscountPercent: m.DiscountPercent,
		TaxRate:         m.TaxRate,
		Reason:          m.Reason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalesReturnItemSlice converts a slice of model return items to domain return items
func ToDomainSalesReturnItemSlice(ms []models.SalesReturnItem) []domain.SalesReturnItem {
	ds := make([]domain.SalesReturnItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalesReturnItem(m)
	}
	return ds
}

// ToModelCreditLimitOverride converts a domain CreditLimitOverride to its model
func ToModelCreditLimitOverride(d domain.CreditLimitOverride) models.CreditLimitOverride {
	return models.CreditLimitOverride{
		OverrideID:     d.OverrideID,
		CustomerID:     d.CustomerID,
		InvoiceID:      d.InvoiceID,
		OverrideAmount: d.OverrideAmount,
		Reason:         d.Reason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditLimitOverride converts a model CreditLimitOverride to its domain form
func ToDomainCreditLimitOverride(m models.CreditLimitOverride) domain.CreditLimitOverride {
	return domain.CreditLimitOverride{
		OverrideID:     m.OverrideID,
		CustomerID:     m.CustomerID,
		InvoiceID:      m.InvoiceID,
		OverrideAmount: m.OverrideAmount,
		Reason:         m.Reason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
