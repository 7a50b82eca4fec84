package booking

import (
	"context"
	"log"
	"time"

	"github.com/LindiweBraids/booking-api/internal/audit"
	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/eventcache"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/notify"
	"github.com/google/uuid"
)

// ConfirmPayment is the webhook-side transition: exactly one unpaid→paid
// move per booking, then a best-effort confirmation message. The store
// transaction is the guard; the event cache only skips known redeliveries.
type ConfirmPayment struct {
	repo     domain.Repository
	notifier Messenger
	audit    *audit.Dispatcher
	dedup    *eventcache.Cache // optional
}

func NewConfirmPayment(
	repo domain.Repository,
	notifier Messenger,
	audit *audit.Dispatcher,
	dedup *eventcache.Cache,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		dedup:    dedup,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	bookingID string,
	amountCents int64,
) error {

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return httperr.ErrBusiness("missing_booking_id")
	}

	dedupKey := "charge.success:" + id.String()
	if uc.dedup != nil && uc.dedup.Processed(ctx, dedupKey) {
		return nil
	}

	b, alreadyPaid, err := uc.repo.ConfirmPayment(ctx, id, amountCents, time.Now())
	if err != nil {
		return err
	}

	if alreadyPaid {
		// Redelivery of an event we already honored: acknowledge, do not
		// notify again.
		return nil
	}

	if uc.dedup != nil {
		uc.dedup.MarkProcessed(ctx, dedupKey)
	}

	uc.dispatch(audit.Event{
		Action:   "payment_confirmed",
		Entity:   "booking",
		EntityID: b.ID.String(),
		Metadata: map[string]any{"amount_cents": amountCents},
	})

	// Payment state is committed; a messaging failure must not undo it.
	msg := notify.ConfirmationMessage(b.ClientName, b.Style, b.Date, b.TimeSlot)
	if err := uc.notifier.Send(ctx, b.ClientPhone, msg, notify.Channel(b.Method)); err != nil {
		log.Printf("booking %s: confirmation message failed: %v", b.ID, err)
		return nil
	}

	if err := uc.repo.MarkConfirmationSent(ctx, b.ID); err != nil {
		log.Printf("booking %s: marking confirmation sent failed: %v", b.ID, err)
	}

	return nil
}
