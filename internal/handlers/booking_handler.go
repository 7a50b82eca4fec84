package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LindiweBraids/booking-api/internal/httperr"
	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
}

func NewBookingHandler(createUC *ucBooking.CreateBooking) *BookingHandler {
	return &BookingHandler{createUC: createUC}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	Style       string  `json:"style"`
	Length      string  `json:"length"`
	Price       float64 `json:"price"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Email       string  `json:"email"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:mm
	Method      string  `json:"method"`
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON.")
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		Style:       req.Style,
		Length:      req.Length,
		Price:       req.Price,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.Email,
		Date:        req.Date,
		Time:        req.Time,
		Method:      req.Method,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"bookingId":        out.Booking.ID,
		"authorizationUrl": out.AuthorizationURL,
	})
}

func writeBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case "missing_fields":
		httperr.BadRequest(c, code, "All booking fields are required.")
	case "invalid_phone":
		httperr.BadRequest(c, code, "Phone number could not be normalized.")
	case "invalid_email":
		httperr.BadRequest(c, code, "Email address is not valid.")
	case "invalid_method":
		httperr.BadRequest(c, code, "Notification method must be sms or whatsapp.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, code, "Date or time is not valid.")
	case "gateway_error":
		httperr.BadGateway(c, code, "Payment provider is unavailable, try again shortly.")
	case "booking_not_found":
		httperr.NotFound(c, code, "Booking not found.")
	default:
		httperr.Internal(c, code, "Something went wrong.")
	}
}
