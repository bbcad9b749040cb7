package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Document number prefixes, one per document kind.
const (
	InvoicePrefix         = "INV"
	ReceiptPrefix         = "REC"
	ReturnPrefix          = "RET"
	PurchaseOrderPrefix   = "PO"
	SupplierPaymentPrefix = "SPY"
)

// FormatDocumentNumber builds a document number like "INV-000042" from a
// prefix and a sequence value.
func FormatDocumentNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// NextDocumentNumber returns the number following lastNumber for the same
// prefix. An empty or malformed lastNumber starts the sequence at 1.
func NextDocumentNumber(prefix string, lastNumber string) string {
	seq := int64(0)
	if rest, ok := strings.CutPrefix(lastNumber, prefix+"-"); ok {
		if n, err := strconv.ParseInt(rest, 10, 64); err == nil {
			seq = n
		}
	}
	return FormatDocumentNumber(prefix, seq+1)
}
