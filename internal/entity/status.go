package entity

import "strings"

// External order lifecycle statuses after normalization.
const (
	ExternalStatusPending          = "pending"
	ExternalStatusConfirmed        = "confirmed"
	ExternalStatusPreparing        = "preparing"
	ExternalStatusCompleted        = "completed"
	ExternalStatusCancelled        = "cancelled"
	ExternalStatusInvoiceGenerated = "invoice_generated"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// NormalizeStatus lowercases, trims and collapses whitespace to underscores
// so that e.g. "Invoice Generated" and "invoice_generated" compare equal.
// The digital menu stores these as free text, so all comparisons in the
// sync engine go through this first.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// IsInvoiceGenerated reports whether a raw status or payment status carries
// the external "invoice generated" payment signal.
func IsInvoiceGenerated(s string) bool {
	return NormalizeStatus(s) == ExternalStatusInvoiceGenerated
}

// MapExternalToItemStatus maps a raw external order status to the POS
// order-item status it should drive. Cancelled maps to served so cancelled
// orders drop out of the active kitchen views; the POS item model has no
// separate cancelled lane. ok is false for statuses that drive no item
// transition.
func MapExternalToItemStatus(status string) (string, bool) {
	switch NormalizeStatus(status) {
	case ExternalStatusPending, ExternalStatusConfirmed:
		return ItemStatusNew, true
	case ExternalStatusPreparing:
		return ItemStatusPreparing, true
	case ExternalStatusCompleted, ExternalStatusCancelled:
		return ItemStatusServed, true
	default:
		return "", false
	}
}
