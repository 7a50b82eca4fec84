package booking

import (
	"context"
	"time"

	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/google/uuid"
)

type Repository interface {
	// -------- Creation --------
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	GetByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	// MarkPendingPayment promotes awaiting_gateway → pending once the
	// checkout session exists.
	MarkPendingPayment(
		ctx context.Context,
		id uuid.UUID,
		gatewayRef string,
	) error

	// MarkFailed compensates a booking whose checkout session could not
	// be created.
	MarkFailed(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Payment (webhook transition) --------

	// ConfirmPayment runs the unpaid→paid transition inside one
	// transaction holding a row lock, so concurrent deliveries for the
	// same booking serialize. alreadyPaid reports the idempotent no-op.
	ConfirmPayment(
		ctx context.Context,
		id uuid.UUID,
		amountCents int64,
		now time.Time,
	) (b *models.Booking, alreadyPaid bool, err error)

	MarkConfirmationSent(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Reminders --------
	ListDueReminders(
		ctx context.Context,
		now time.Time,
	) ([]models.Booking, error)

	// MarkReminderSent flips the flag and appends the audit row in one
	// transaction.
	MarkReminderSent(
		ctx context.Context,
		id uuid.UUID,
		entry *models.ReminderLog,
	) error

	// -------- Reconciliation --------
	ExpireStaleUnpaid(
		ctx context.Context,
		cutoff time.Time,
	) (int64, error)

	// -------- Media --------
	SetStylePhotoURL(
		ctx context.Context,
		id uuid.UUID,
		url string,
	) error

	// -------- Staff reads --------
	ListByDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
