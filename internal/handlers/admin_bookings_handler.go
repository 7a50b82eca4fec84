package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/httpresp"
	"github.com/LindiweBraids/booking-api/internal/timezone"
	"github.com/google/uuid"
)

// Staff read surface over the booking store.
type AdminBookingsHandler struct {
	repo domain.Repository
	tz   string
}

func NewAdminBookingsHandler(repo domain.Repository, tz string) *AdminBookingsHandler {
	return &AdminBookingsHandler{repo: repo, tz: tz}
}

// ListByDate returns the day's bookings; defaults to today in the salon
// timezone.
func (h *AdminBookingsHandler) ListByDate(c *gin.Context) {
	loc := timezone.Location(h.tz)

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().In(loc).Format("2006-01-02")
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	bookings, err := h.repo.ListByDay(c.Request.Context(), day, day.AddDate(0, 0, 1))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *AdminBookingsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not load booking.")
		return
	}

	httpresp.OK(c, b)
}
