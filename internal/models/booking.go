package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Intake fields, immutable after creation
	Style  string `gorm:"size:100;not null" json:"style"`
	Length string `gorm:"size:50" json:"length"`

	// Amounts in cents. DepositCents is the 30% deposit quoted at booking
	// time; DepositPaidCents is what the gateway actually confirmed.
	PriceCents   int64 `json:"price_cents"`
	DepositCents int64 `json:"deposit_cents"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	Date          string    `gorm:"size:10;not null" json:"date"`  // YYYY-MM-DD
	TimeSlot      string    `gorm:"size:5;not null" json:"time"`   // HH:mm
	AppointmentAt time.Time `json:"appointment_at"`
	Method        string    `gorm:"size:10;not null" json:"method"` // sms | whatsapp

	StylePhotoURL string `gorm:"size:255" json:"style_photo_url"`

	// Mutable state
	Status           string     `gorm:"size:20;default:'awaiting_gateway'" json:"status"`
	PaymentStatus    string     `gorm:"size:10;default:'unpaid'" json:"payment_status"`
	DepositPaidCents int64      `json:"deposit_paid_cents"`
	PaidAt           *time.Time `json:"paid_at"`
	ConfirmationSent bool       `gorm:"default:false" json:"confirmation_sent"`

	ReminderSent bool      `gorm:"default:false" json:"reminder_sent"`
	ReminderAt   time.Time `gorm:"index" json:"reminder_at"`

	GatewayRef string `gorm:"size:64;index" json:"gateway_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
