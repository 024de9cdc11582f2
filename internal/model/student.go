package model

import "time"

// Student is the hostel profile attached one-to-one to a User.
type Student struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	UserID        int64      `gorm:"uniqueIndex;not null" json:"userId"`
	FullName      string     `gorm:"size:100;not null" json:"fullName"`
	EnrollmentNo  string     `gorm:"uniqueIndex;size:20;not null" json:"enrollmentNo"`
	Phone         string     `gorm:"size:15" json:"phone"`
	Address       string     `json:"address"`
	Stream        string     `gorm:"size:50" json:"stream"`
	Semester      int        `json:"semester"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	GuardianName  string     `gorm:"size:100" json:"guardianName"`
	GuardianPhone string     `gorm:"size:15" json:"guardianPhone"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Associations
	User       User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Bookings   []Booking   `gorm:"foreignKey:StudentID" json:"-"`
	Complaints []Complaint `gorm:"foreignKey:StudentID" json:"-"`
	Feedback   []Feedback  `gorm:"foreignKey:StudentID" json:"-"`
}
