package model

import "time"

// Room represents a hostel room available for booking.
// RoomNumber follows the "<block>-<floor><seq>" convention, e.g. "A-304".
type Room struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	RoomNumber  string    `gorm:"uniqueIndex;size:10;not null" json:"roomNumber"`
	Block       string    `gorm:"size:8" json:"block"`
	Floor       int       `json:"floor"`
	Seq         int       `json:"seq"`
	Capacity    int       `gorm:"not null" json:"capacity"` // 1-4 seater
	MonthlyFee  float64   `gorm:"not null" json:"monthlyFee"`
	Amenities   string    `json:"amenities"`
	IsAvailable bool      `gorm:"not null" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Bookings []Booking `gorm:"foreignKey:RoomID" json:"-"`
}
