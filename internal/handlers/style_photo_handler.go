package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/media"
	"github.com/LindiweBraids/booking-api/internal/storage"
)

const maxPhotoBytes = 8 << 20

// StylePhotoHandler lets a client attach a reference photo of the braid
// style they want to an existing booking.
type StylePhotoHandler struct {
	repo    domain.Repository
	storage *storage.S3Storage // nil when no bucket is configured
}

func NewStylePhotoHandler(repo domain.Repository, st *storage.S3Storage) *StylePhotoHandler {
	return &StylePhotoHandler{repo: repo, storage: st}
}

func (h *StylePhotoHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "media_disabled", "Photo uploads are not configured.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a UUID.")
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Could not load booking.")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Multipart field 'photo' is required.")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo exceeds the 8MB limit.")
		return
	}

	encoded, err := media.ToWebP(file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Photo must be a JPEG or PNG image.")
			return
		}
		httperr.Internal(c, "failed_to_process_photo", "Could not process photo.")
		return
	}

	key := fmt.Sprintf("style-photos/%s.webp", id)
	url, err := h.storage.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Could not store photo.")
		return
	}

	if err := h.repo.SetStylePhotoURL(c.Request.Context(), id, url); err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not attach photo to booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stylePhotoUrl": url})
}
