package booking

import "github.com/LindiweBraids/booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	// StatusAwaitingGateway covers the gap between the local insert and
	// the checkout-session response.
	StatusAwaitingGateway Status = "awaiting_gateway"
	StatusPending         Status = "pending"
	StatusAccepted        Status = "accepted"
	StatusFailed          Status = "failed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// ===============================
// Validations
// ===============================

// CanAcceptPayment defines whether a booking may take the unpaid→paid
// transition.
func CanAcceptPayment(current Status, pay PaymentStatus) error {
	if pay == PaymentPaid {
		return httperr.ErrBusiness("already_paid")
	}
	if current != StatusPending && current != StatusAwaitingGateway {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusAwaitingGateway
}
