package mapping

import (
	"github.com/mizan-erp/mizan_backend/internal/core/domain"
	"github.com/mizan-erp/mizan_backend/internal/models"
)

// ToModelPurchaseOrder converts a domain PurchaseOrder to a model PurchaseOrder
func ToModelPurchaseOrder(d domain.PurchaseOrder) models.PurchaseOrder {
	rateDate, old, new := ToSnapshotColumns(d.Snapshot)
	return models.PurchaseOrder{
		OrderID:             d.OrderID,
		OrderNumber:         d.OrderNumber,
		SupplierID:          d.SupplierID,
		OrderDate:           d.OrderDate,
		ExpectedDate:        d.ExpectedDate,
		Status:              string(d.Status),
		TransactionCurrency: string(d.TransactionCurrency),
		FxRateDate:          rateDate,
		UsdToSypOldSnapshot: old,
		UsdToSypNewSnapshot: new,
		Subtotal:            d.Subtotal,
		DiscountAmount:      d.DiscountAmount,
		TaxAmount:           d.TaxAmount,
		TotalAmount:         d.TotalAmount,
		TotalAmountUSD:      d.TotalAmountUSD,
		PaidAmount:          d.PaidAmount,
		PaidAmountUSD:       d.PaidAmountUSD,
		Reference:           d.Reference,
		Notes:               d.Notes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseOrder converts a model PurchaseOrder to a domain PurchaseOrder
func ToDomainPurchaseOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		OrderID:             m.OrderID,
		OrderNumber:         m.OrderNumber,
		SupplierID:          m.SupplierID,
		OrderDate:           m.OrderDate,
		ExpectedDate:        m.ExpectedDate,
		Status:              domain.PurchaseOrderStatus(m.Status),
		TransactionCurrency: domain.TransactionCurrency(m.TransactionCurrency),
		Snapshot:            ToDomainSnapshot(m.FxRateDate, m.UsdToSypOldSnapshot, m.UsdToSypNewSnapshot),
		Subtotal:            m.Subtotal,
		DiscountAmount:      m.DiscountAmount,
		TaxAmount:           m.TaxAmount,
		TotalAmount:         m.TotalAmount,
		TotalAmountUSD:      m.TotalAmountUSD,
		PaidAmount:          m.PaidAmount,
		PaidAmountUSD:       m.PaidAmountUSD,
		Reference:           m.Reference,
		Notes:               m.Notes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseOrderSlice converts a slice of model PurchaseOrders to domain PurchaseOrders
func ToDomainPurchaseOrderSlice(ms []models.PurchaseOrder) []domain.PurchaseOrder {
	ds := make([]domain.PurchaseOrder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseOrder(m)
	}
	return ds
}

// ToModelPurchaseOrderItem converts a domain PurchaseOrderItem to its model
func ToModelPurchaseOrderItem(d domain.PurchaseOrderItem) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{
		ItemID:           d.ItemID,
		OrderID:          d.OrderID,
		ProductID:        d.ProductID,
		ProductName:      d.ProductName,
		Quantity:         d.Quantity,
		ReceivedQuantity: d.ReceivedQuantity,
		UnitPrice:        d.UnitPrice,
		DiscountPercent:  d.DiscountPercent,
		TaxRate:          d.TaxRate,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseOrderItem converts a model PurchaseOrderItem to its domain form
func ToDomainPurchaseOrderItem(m models.PurchaseOrderItem) domain.PurchaseOrderItem {
	return domain.PurchaseOrderItem{
		ItemID:           m.ItemID,
		OrderID:          m.OrderID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		Quantity:         m.Quantity,
		ReceivedQuantity: m.ReceivedQuantity,
		UnitPrice:        m.UnitPrice,
		DiscountPercent:  m.DiscountPercent,
		TaxRate:          m.TaxRate,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseOrderItemSlice converts a slice of model purchase lines to domain lines
func ToDomainPurchaseOrderItemSlice(ms []models.PurchaseOrderItem) []domain.PurchaseOrderItem {
	ds := make([]domain.PurchaseOrderItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseOrderItem(m)
	}
	return ds
}

// ToModelSupplierPayment converts a domain SupplierPayment to its model
func ToModelSupplierPayment(d domain.SupplierPayment) models.SupplierPayment {
	rateDate, old, new := ToSnapshotColumns(d.Snapshot)
	return models.SupplierPayment{
		PaymentID:           d.PaymentID,
		PaymentNumber:       d.PaymentNumber,
		SupplierID:          d.SupplierID,
		OrderID:             d.OrderID,
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

// ToDomainSupplierPayment converts a model SupplierPayment to its domain form
func ToDomainSupplierPayment(m models.SupplierPayment) domain.SupplierPayment {
	return domain.SupplierPayment{
		PaymentID:           m.PaymentID,
		PaymentNumber:       m.PaymentNumber,
		SupplierID:          m.SupplierID,
		OrderID:             m.OrderID,
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

// ToDomainSupplierPaymentSlice converts a slice of model supplier payments to domain form
func ToDomainSupplierPaymentSlice(ms []models.SupplierPayment) []domain.SupplierPayment {
	ds := make([]domain.SupplierPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSupplierPayment(m)
	}
	return ds
}
