package model

import "time"

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
	PaymentCard   PaymentMethod = "card"
)

// PaymentStatus tracks settlement of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records money received against a booking.
type Payment struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	BookingID     int64         `gorm:"index;not null" json:"bookingId"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Method        PaymentMethod `gorm:"size:8;not null;default:cash" json:"method"`
	TransactionID string        `gorm:"size:100" json:"transactionId"`
	Status        PaymentStatus `gorm:"size:16;not null;default:pending" json:"status"`
	PaidAt        time.Time     `gorm:"not null" json:"paidAt"`

	// Associations
	Booking Booking `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
