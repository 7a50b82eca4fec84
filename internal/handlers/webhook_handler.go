package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LindiweBraids/booking-api/internal/gateway"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
)

// SignatureHeader carries the hex HMAC-SHA512 digest of the raw body.
const SignatureHeader = "X-Signature"

type WebhookHandler struct {
	gateway   *gateway.Client
	confirmUC *ucBooking.ConfirmPayment
}

func NewWebhookHandler(gw *gateway.Client, confirmUC *ucBooking.ConfirmPayment) *WebhookHandler {
	return &WebhookHandler{
		gateway:   gw,
		confirmUC: confirmUC,
	}
}

// Handle processes one delivery from the payment provider. Every rejection
// here is state-free, so the provider can safely redeliver.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Could not read request body.")
		return
	}

	if !h.gateway.VerifySignature(c.GetHeader(SignatureHeader), body) {
		httperr.BadRequest(c, "invalid_signature", "Webhook signature does not match.")
		return
	}

	ev, err := gateway.ParseEvent(body)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Event payload is not valid JSON.")
		return
	}

	if ev.Event != gateway.EventChargeSuccess {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	bookingID := ev.BookingID()
	if bookingID == "" {
		httperr.BadRequest(c, "missing_booking_id", "Event metadata has no booking id.")
		return
	}

	if err := h.confirmUC.Execute(c.Request.Context(), bookingID, ev.Data.Amount); err != nil {
		switch code, _ := httperr.BusinessCode(err); code {
		case "missing_booking_id":
			httperr.BadRequest(c, code, "Booking id is not valid.")
		case "amount_mismatch":
			httperr.BadRequest(c, code, "Event amount does not match the expected deposit.")
		case "booking_not_found":
			httperr.NotFound(c, code, "Booking not found.")
		default:
			httperr.Internal(c, "internal_error", "Failed to process event.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
