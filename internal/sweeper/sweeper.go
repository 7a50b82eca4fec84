package sweeper

import (
	"context"
	"log"
	"time"

	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
)

// Sweeper drives the reminder use case on a fixed interval. Bookings whose
// reminder fails stay eligible, so every cycle retries them.
type Sweeper struct {
	uc         *ucBooking.SendReminders
	interval   time.Duration
	staleAfter time.Duration
}

func New(uc *ucBooking.SendReminders, interval, staleAfter time.Duration) *Sweeper {
	return &Sweeper{
		uc:         uc,
		interval:   interval,
		staleAfter: staleAfter,
	}
}

// Run blocks until ctx is cancelled. Call it from its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("reminder sweeper running every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("reminder sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one cycle: due reminders plus stale-booking reconciliation.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	sent, err := s.uc.Execute(ctx, now)
	if err != nil {
		log.Printf("reminder sweep failed: %v", err)
	} else if sent > 0 {
		log.Printf("reminder sweep sent %d reminders", sent)
	}

	s.uc.ExpireStale(ctx, now.Add(-s.staleAfter))
}
