package booking

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/LindiweBraids/booking-api/internal/audit"
	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/gateway"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/LindiweBraids/booking-api/internal/notify"
	"github.com/LindiweBraids/booking-api/internal/timezone"
	"github.com/LindiweBraids/booking-api/internal/validators"
)

// Deposit charged up front, as a share of the quoted price.
const depositRate = 0.30

const reminderLead = 24 * time.Hour

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Style  string
	Length string
	Price  float64 // quoted price in rand

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date   string // YYYY-MM-DD
	Time   string // HH:mm
	Method string // sms | whatsapp
}

type CreateBookingOutput struct {
	Booking          *models.Booking
	AuthorizationURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo        domain.Repository
	gateway     *gateway.Client
	audit       *audit.Dispatcher
	callbackURL string
	tz          string
}

func NewCreateBooking(
	repo domain.Repository,
	gw *gateway.Client,
	audit *audit.Dispatcher,
	callbackURL string,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:        repo,
		gateway:     gw,
		audit:       audit,
		callbackURL: callbackURL,
		tz:          tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	if strings.TrimSpace(in.Style) == "" ||
		strings.TrimSpace(in.Length) == "" ||
		strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" ||
		strings.TrimSpace(in.ClientEmail) == "" ||
		strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(in.Method) == "" ||
		in.Price <= 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if !notify.ValidChannel(in.Method) {
		return nil, httperr.ErrBusiness("invalid_method")
	}

	// --------------------------------------------------
	// 2. Normalization
	// --------------------------------------------------
	phone, err := validators.NormalizePhone(in.ClientPhone)
	if err != nil {
		return nil, err
	}

	email, err := validators.ValidateEmail(in.ClientEmail)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Appointment moment in the salon timezone
	// --------------------------------------------------
	appointmentAt, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 4. Amounts: quote the deposit now, verify it at webhook time
	// --------------------------------------------------
	priceCents := int64(math.Round(in.Price * 100))
	depositCents := int64(math.Round(float64(priceCents) * depositRate))

	// --------------------------------------------------
	// 5. Persist (awaiting the checkout session)
	// --------------------------------------------------
	b := &models.Booking{
		Style:         in.Style,
		Length:        in.Length,
		PriceCents:    priceCents,
		DepositCents:  depositCents,
		ClientName:    in.ClientName,
		ClientPhone:   phone,
		ClientEmail:   email,
		Date:          in.Date,
		TimeSlot:      in.Time,
		AppointmentAt: appointmentAt,
		Method:        in.Method,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentUnpaid),
		ReminderAt:    appointmentAt.Add(-reminderLead),
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Hosted checkout session for the deposit
	// --------------------------------------------------
	session, err := uc.gateway.InitializeTransaction(ctx, gateway.InitializeRequest{
		Email:       email,
		AmountCents: depositCents,
		Reference:   b.ID.String(),
		CallbackURL: uc.callbackURL,
		Metadata: map[string]string{
			"bookingId": b.ID.String(),
		},
	})
	if err != nil {
		// Compensate so the record does not linger as a live booking.
		if ferr := uc.repo.MarkFailed(ctx, b.ID); ferr != nil {
			log.Printf("booking %s: compensating mark-failed failed: %v", b.ID, ferr)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 7. Promote to pending
	// --------------------------------------------------
	if err := uc.repo.MarkPendingPayment(ctx, b.ID, session.Reference); err != nil {
		return nil, err
	}
	b.Status = string(domain.StatusPending)
	b.GatewayRef = session.Reference

	uc.dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID.String(),
		Metadata: map[string]any{"deposit_cents": depositCents},
	})

	return &CreateBookingOutput{
		Booking:          b,
		AuthorizationURL: session.AuthorizationURL,
	}, nil
}
