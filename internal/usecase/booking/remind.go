package booking

import (
	"context"
	"log"
	"time"

	"github.com/LindiweBraids/booking-api/internal/audit"
	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/LindiweBraids/booking-api/internal/notify"
)

// SendReminders handles one sweep: every accepted booking whose reminder is
// due gets a message; failures leave the booking eligible for the next
// sweep.
type SendReminders struct {
	repo     domain.Repository
	notifier Messenger
	audit    *audit.Dispatcher
}

func NewSendReminders(
	repo domain.Repository,
	notifier Messenger,
	audit *audit.Dispatcher,
) *SendReminders {
	return &SendReminders{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute returns how many reminders went out this sweep.
func (uc *SendReminders) Execute(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.repo.ListDueReminders(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		b := &due[i]

		msg := notify.ReminderMessage(b.ClientName, b.Style, b.Date, b.TimeSlot)
		if err := uc.notifier.Send(ctx, b.ClientPhone, msg, notify.Channel(b.Method)); err != nil {
			// Stays reminder_sent=false; the next sweep retries.
			log.Printf("booking %s: reminder failed: %v", b.ID, err)
			continue
		}

		entry := &models.ReminderLog{
			BookingID:   b.ID,
			ClientName:  b.ClientName,
			ClientPhone: b.ClientPhone,
			Channel:     b.Method,
			Type:        "appointment",
			SentAt:      now,
		}
		if err := uc.repo.MarkReminderSent(ctx, b.ID, entry); err != nil {
			log.Printf("booking %s: marking reminder sent failed: %v", b.ID, err)
			continue
		}

		uc.dispatch(audit.Event{
			Action:   "reminder_sent",
			Entity:   "booking",
			EntityID: b.ID.String(),
			Metadata: map[string]any{"channel": b.Method},
		})
		sent++
	}

	return sent, nil
}

// ExpireStale fails bookings stuck unpaid since before the cutoff, closing
// the create-then-reserve gap left by abandoned checkouts.
func (uc *SendReminders) ExpireStale(ctx context.Context, cutoff time.Time) {
	n, err := uc.repo.ExpireStaleUnpaid(ctx, cutoff)
	if err != nil {
		log.Printf("expiring stale unpaid bookings failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("expired %d stale unpaid bookings", n)
	}
}
