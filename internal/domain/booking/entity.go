package booking

import (
	"time"

	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// MarkPaid applies the unpaid→paid transition. The confirmed amount must
// match the deposit quoted at booking time.
func MarkPaid(b *models.Booking, amountCents int64, now time.Time) error {
	if err := CanAcceptPayment(Status(b.Status), PaymentStatus(b.PaymentStatus)); err != nil {
		return err
	}

	if amountCents != b.DepositCents {
		return httperr.ErrBusiness("amount_mismatch")
	}

	b.PaymentStatus = string(PaymentPaid)
	b.Status = string(StatusAccepted)
	b.DepositPaidCents = amountCents
	b.PaidAt = &now
	b.ConfirmationSent = false
	return nil
}

// MarkReminderSent flips the reminder flag once.
func MarkReminderSent(b *models.Booking) error {
	if b.ReminderSent {
		return httperr.ErrBusiness("reminder_already_sent")
	}
	b.ReminderSent = true
	return nil
}
