package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/LindiweBraids/booking-api/internal/notify"
	"github.com/google/uuid"
)

// In-memory Repository honoring the same transition rules as the gorm
// implementation.
type fakeRepo struct {
	bookings map[uuid.UUID]*models.Booking
	logs     []models.ReminderLog

	markFailedCalls  int
	markPendingCalls int
	markSentErr      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[uuid.UUID]*models.Booking{}}
}

func (f *fakeRepo) add(b *models.Booking) *models.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.bookings[b.ID] = b
	return b
}

func (f *fakeRepo) Create(ctx context.Context, b *models.Booking) error {
	f.add(b)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (f *fakeRepo) MarkPendingPayment(ctx context.Context, id uuid.UUID, ref string) error {
	f.markPendingCalls++
	b, ok := f.bookings[id]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	if b.Status != string(domain.StatusAwaitingGateway) {
		return nil
	}
	b.Status = string(domain.StatusPending)
	b.GatewayRef = ref
	return nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	f.markFailedCalls++
	b, ok := f.bookings[id]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	b.Status = string(domain.StatusFailed)
	return nil
}

func (f *fakeRepo) ConfirmPayment(
	ctx context.Context,
	id uuid.UUID,
	amountCents int64,
	now time.Time,
) (*models.Booking, bool, error) {

	b, ok := f.bookings[id]
	if !ok {
		return nil, false, httperr.ErrBusiness("booking_not_found")
	}
	if b.PaymentStatus == string(domain.PaymentPaid) {
		return b, true, nil
	}
	if err := domain.MarkPaid(b, amountCents, now); err != nil {
		return nil, false, err
	}
	return b, false, nil
}

func (f *fakeRepo) MarkConfirmationSent(ctx context.Context, id uuid.UUID) error {
	b, ok := f.bookings[id]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	b.ConfirmationSent = true
	return nil
}

func (f *fakeRepo) ListDueReminders(ctx context.Context, now time.Time) ([]models.Booking, error) {
	var due []models.Booking
	for _, b := range f.bookings {
		if b.Status == string(domain.StatusAccepted) && !b.ReminderSent && !b.ReminderAt.After(now) {
			due = append(due, *b)
		}
	}
	return due, nil
}

func (f *fakeRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, entry *models.ReminderLog) error {
	if f.markSentErr != nil {
		return f.markSentErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	if b.ReminderSent {
		return nil
	}
	b.ReminderSent = true
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeRepo) ExpireStaleUnpaid(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.PaymentStatus == string(domain.PaymentUnpaid) &&
			(b.Status == string(domain.StatusAwaitingGateway) || b.Status == string(domain.StatusPending)) &&
			b.CreatedAt.Before(cutoff) {
			b.Status = string(domain.StatusFailed)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) SetStylePhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	b, ok := f.bookings[id]
	if !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	b.StylePhotoURL = url
	return nil
}

func (f *fakeRepo) ListByDay(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.AppointmentAt.Before(start) && b.AppointmentAt.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// Recording Messenger.
type fakeMessenger struct {
	sent []sentMessage
	err  error
}

type sentMessage struct {
	to      string
	body    string
	channel notify.Channel
}

func (m *fakeMessenger) Send(ctx context.Context, to, body string, ch notify.Channel) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{to: to, body: body, channel: ch})
	return nil
}

var errSendFailed = errors.New("send failed")
