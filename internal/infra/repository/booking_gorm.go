package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/LindiweBraids/booking-api/internal/domain/booking"
	"github.com/LindiweBraids/booking-api/internal/httperr"
	"github.com/LindiweBraids/booking-api/internal/models"
	"github.com/google/uuid"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Creation
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

// MarkPendingPayment promotes only from awaiting_gateway, so a booking a
// fast webhook already accepted (or the sweeper already failed) is never
// demoted back to pending.
func (r *BookingGormRepository) MarkPendingPayment(
	ctx context.Context,
	id uuid.UUID,
	gatewayRef string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(domain.StatusAwaitingGateway)).
		Updates(map[string]any{
			"status":      string(domain.StatusPending),
			"gateway_ref": gatewayRef,
		}).Error
}

func (r *BookingGormRepository) MarkFailed(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", string(domain.StatusFailed)).Error
}

// --------------------------------------------------
// Payment (webhook transition)
// --------------------------------------------------

// ConfirmPayment locks the booking row for the whole transaction. The first
// delivery observes unpaid and performs the transition; every later delivery
// sees paid and no-ops.
func (r *BookingGormRepository) ConfirmPayment(
	ctx context.Context,
	id uuid.UUID,
	amountCents int64,
	now time.Time,
) (*models.Booking, bool, error) {

	var b models.Booking
	alreadyPaid := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&b).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("booking_not_found")
			}
			return err
		}

		if b.PaymentStatus == string(domain.PaymentPaid) {
			alreadyPaid = true
			return nil
		}

		if err := domain.MarkPaid(&b, amountCents, now); err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{
				"payment_status":     b.PaymentStatus,
				"status":             b.Status,
				"deposit_paid_cents": b.DepositPaidCents,
				"paid_at":            b.PaidAt,
				"confirmation_sent":  false,
			}).Error
	})

	if err != nil {
		return nil, false, err
	}
	return &b, alreadyPaid, nil
}

func (r *BookingGormRepository) MarkConfirmationSent(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("confirmation_sent", true).Error
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *BookingGormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
) ([]models.Booking, error) {

	var due []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND reminder_sent = ? AND reminder_at <= ?",
			string(domain.StatusAccepted), false, now,
		).
		Order("reminder_at ASC").
		Find(&due).Error; err != nil {
		return nil, err
	}

	return due, nil
}

func (r *BookingGormRepository) MarkReminderSent(
	ctx context.Context,
	id uuid.UUID,
	entry *models.ReminderLog,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND reminder_sent = ?", id, false).
			Update("reminder_sent", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race with another sweep; skip the log row too.
			return nil
		}
		return tx.Create(entry).Error
	})
}

// --------------------------------------------------
// Reconciliation
// --------------------------------------------------

func (r *BookingGormRepository) ExpireStaleUnpaid(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"payment_status = ? AND status IN ? AND created_at < ?",
			string(domain.PaymentUnpaid),
			[]string{string(domain.StatusAwaitingGateway), string(domain.StatusPending)},
			cutoff,
		).
		Update("status", string(domain.StatusFailed))

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Media
// --------------------------------------------------

func (r *BookingGormRepository) SetStylePhotoURL(
	ctx context.Context,
	id uuid.UUID,
	url string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("style_photo_url", url).Error
}

// --------------------------------------------------
// Staff reads
// --------------------------------------------------

func (r *BookingGormRepository) ListByDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("appointment_at >= ? AND appointment_at < ?", start, end).
		Order("appointment_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
