package booking

import (
	"context"

	"github.com/LindiweBraids/booking-api/internal/notify"
)

// Messenger is the retry-wrapped delivery dependency; production wiring
// passes *notify.Notifier.
type Messenger interface {
	Send(ctx context.Context, to, body string, ch notify.Channel) error
}

var _ Messenger = (*notify.Notifier)(nil)
