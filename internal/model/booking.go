package model

import "time"

// BookingStatus is a state in the booking lifecycle.
// requested is the only initial state; ended, rejected and cancelled are terminal.
type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingActive    BookingStatus = "active"
	BookingEnded     BookingStatus = "ended"
	BookingCancelled BookingStatus = "cancelled"
)

// FoodOption is the meal plan chosen with a booking.
type FoodOption string

const (
	FoodVeg    FoodOption = "veg"
	FoodNonVeg FoodOption = "non-veg"
)

// Booking links a student to a room for a date range.
type Booking struct {
	ID           int64         `gorm:"primaryKey" json:"id"`
	StudentID    int64         `gorm:"index;not null" json:"studentId"`
	RoomID       int64         `gorm:"index;not null" json:"roomId"`
	BookingDate  time.Time     `gorm:"not null" json:"bookingDate"`
	CheckInDate  time.Time     `gorm:"not null" json:"checkInDate"`
	CheckOutDate time.Time     `gorm:"not null" json:"checkOutDate"`
	FoodOption   FoodOption    `gorm:"size:8;not null;default:veg" json:"foodOption"`
	TotalAmount  float64       `json:"totalAmount"`
	Status       BookingStatus `gorm:"size:16;index;not null;default:requested" json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Associations
	Student  Student   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Room     Room      `gorm:"constraint:OnDelete:CASCADE" json:"room,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID" json:"-"`
}
