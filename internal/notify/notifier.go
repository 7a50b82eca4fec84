package notify

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

func ValidChannel(method string) bool {
	return method == string(ChannelSMS) || method == string(ChannelWhatsApp)
}

// Sender performs exactly one outbound attempt.
type Sender interface {
	Send(ctx context.Context, to, body string, ch Channel) error
}

// Notifier wraps a Sender with the delivery retry policy: three attempts
// with 500ms·2^attempt waits between them (1s, 2s). The last error is
// surfaced after exhaustion so callers decide what a failed send means.
type Notifier struct {
	sender   Sender
	attempts int
	base     time.Duration
	wait     func(ctx context.Context, d time.Duration) error
}

func New(sender Sender) *Notifier {
	return &Notifier{
		sender:   sender,
		attempts: 3,
		base:     500 * time.Millisecond,
		wait:     sleepCtx,
	}
}

// sleepCtx waits out d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (n *Notifier) Send(ctx context.Context, to, body string, ch Channel) error {
	var last error

	for attempt := 1; attempt <= n.attempts; attempt++ {
		if attempt > 1 {
			if err := n.wait(ctx, n.base<<(attempt-1)); err != nil {
				return err
			}
		}

		if err := n.sender.Send(ctx, to, body, ch); err != nil {
			last = err
			log.Printf("notify: attempt %d/%d to %s failed: %v", attempt, n.attempts, to, err)
			continue
		}
		return nil
	}

	return fmt.Errorf("notification failed after %d attempts: %w", n.attempts, last)
}
