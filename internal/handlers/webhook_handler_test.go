package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/gateway"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/LindiweBraids/booking-api/internal/notify"
	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
)

// Minimal in-memory store for webhook tests.
type webhookRepo struct {
	booking *models.Booking
}

func (r *webhookRepo) Create(ctx context.Context, b *models.Booking) error { return nil }

func (r *webhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return r.booking, nil
}

func (r *webhookRepo) MarkPendingPayment(ctx context.Context, id uuid.UUID, ref string) error {
	return nil
}

func (r *webhookRepo) MarkFailed(ctx context.Context, id uuid.UUID) error { return nil }

func (r *webhookRepo) ConfirmPayment(
	ctx context.Context,
	id uuid.UUID,
	amountCents int64,
	now time.Time,
) (*models.Booking, bool, error) {

	if r.booking == nil || r.booking.ID != id {
		return nil, false, httperr.ErrBusiness("booking_not_found")
	}
	if r.booking.PaymentStatus == string(domain.PaymentPaid) {
		return r.booking, true, nil
	}
	if err := domain.MarkPaid(r.booking, amountCents, now); err != nil {
		return nil, false, err
	}
	return r.booking, false, nil
}

func (r *webhookRepo) MarkConfirmationSent(ctx context.Context, id uuid.UUID) error {
	r.booking.ConfirmationSent = true
	return nil
}

func (r *webhookRepo) ListDueReminders(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (r *webhookRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, entry *models.ReminderLog) error {
	return nil
}

func (r *webhookRepo) ExpireStaleUnpaid(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *webhookRepo) SetStylePhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	return nil
}

func (r *webhookRepo) ListByDay(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return nil, nil
}

var _ domain.Repository = (*webhookRepo)(nil)

type countingMessenger struct {
	sent int
	err  error
}

func (m *countingMessenger) Send(ctx context.Context, to, body string, ch notify.Channel) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

// ---------------------------------------------------------------

func newWebhookRouter(repo *webhookRepo, msgr ucBooking.Messenger) (*gin.Engine, *gateway.Client) {
	gin.SetMode(gin.TestMode)

	gw := gateway.New("http://unused", "sk_test", "whsec")
	uc := ucBooking.NewConfirmPayment(repo, msgr, nil, nil)
	h := NewWebhookHandler(gw, uc)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.POST("/api/webhooks/payments", h.Handle)
	return r, gw
}

func deliver(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payments", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func chargeSuccessBody(bookingID string, amount int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"charge.success","data":{"reference":"r1","amount":%d,"metadata":{"bookingId":"%s"}}}`,
		amount, bookingID,
	))
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		Style:         "Knotless box braids",
		ClientName:    "Thandi",
		ClientPhone:   "+27821234567",
		Date:          "2026-09-12",
		TimeSlot:      "10:00",
		Method:        "sms",
		Status:        string(domain.StatusPending),
		PaymentStatus: string(domain.PaymentUnpaid),
		DepositCents:  28500,
	}
}

// ---------------------------------------------------------------

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	msgr := &countingMessenger{}
	r, _ := newWebhookRouter(repo, msgr)

	body := chargeSuccessBody(repo.booking.ID.String(), 28500)

	w := deliver(r, body, "deadbeef")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if repo.booking.PaymentStatus != string(domain.PaymentUnpaid) {
		t.Fatalf("state mutated on bad signature")
	}
	if msgr.sent != 0 {
		t.Fatalf("notification sent on bad signature")
	}

	// Missing header entirely
	w = deliver(r, body, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing signature, got %d", w.Code)
	}
}

func TestWebhook_DuplicateDeliveryNotifiesOnce(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	msgr := &countingMessenger{}
	r, gw := newWebhookRouter(repo, msgr)

	body := chargeSuccessBody(repo.booking.ID.String(), 28500)
	sig := gw.Sign(body)

	for i := 0; i < 2; i++ {
		w := deliver(r, body, sig)
		if w.Code != http.StatusOK {
			t.Fatalf("delivery %d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	if repo.booking.PaymentStatus != string(domain.PaymentPaid) {
		t.Fatalf("booking not paid: %s", repo.booking.PaymentStatus)
	}
	if repo.booking.Status != string(domain.StatusAccepted) {
		t.Fatalf("booking not accepted: %s", repo.booking.Status)
	}
	if msgr.sent != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", msgr.sent)
	}
}

func TestWebhook_OtherEventsIgnored(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	msgr := &countingMessenger{}
	r, gw := newWebhookRouter(repo, msgr)

	body := []byte(`{"event":"charge.dispute.create","data":{"amount":100}}`)

	w := deliver(r, body, gw.Sign(body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for ignored event, got %d", w.Code)
	}
	if repo.booking.PaymentStatus != string(domain.PaymentUnpaid) || msgr.sent != 0 {
		t.Fatalf("ignored event caused side effects")
	}
}

func TestWebhook_MissingBookingID(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	r, gw := newWebhookRouter(repo, &countingMessenger{})

	body := []byte(`{"event":"charge.success","data":{"amount":28500,"metadata":{}}}`)

	w := deliver(r, body, gw.Sign(body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWebhook_UnknownBooking(t *testing.T) {
	repo := &webhookRepo{}
	r, gw := newWebhookRouter(repo, &countingMessenger{})

	body := chargeSuccessBody(uuid.New().String(), 28500)

	w := deliver(r, body, gw.Sign(body))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWebhook_WrongMethodRejected(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	r, _ := newWebhookRouter(repo, &countingMessenger{})

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/payments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestWebhook_AmountMismatch(t *testing.T) {
	repo := &webhookRepo{booking: testBooking()}
	msgr := &countingMessenger{}
	r, gw := newWebhookRouter(repo, msgr)

	body := chargeSuccessBody(repo.booking.ID.String(), 100)

	w := deliver(r, body, gw.Sign(body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if repo.booking.PaymentStatus != string(domain.PaymentUnpaid) || msgr.sent != 0 {
		t.Fatalf("mismatched amount caused side effects")
	}
}
