package recon

import "shopsync/models"

// MapPaymentStatus converts the vendor's financial status vocabulary to
// the canonical payment status. Total over all strings: anything not
// recognized maps to pending so an unknown vendor value never leaks
// into the canonical field.
func MapPaymentStatus(financialStatus string) models.PaymentStatus {
	switch financialStatus {
	case "paid":
		return models.PaymentPaid
	case "refunded":
		return models.PaymentRefunded
	case "partially_refunded":
		return models.PaymentPartiallyRefunded
	default:
		return models.PaymentPending
	}
}
