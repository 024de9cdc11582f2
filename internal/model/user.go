package model

import "time"

// Role identifies what a user account is allowed to do.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleWarden  Role = "warden"
)

// User represents a login account.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:student" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Student *Student `gorm:"foreignKey:UserID" json:"student,omitempty"`
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsWarden reports whether the account has the warden role.
func (u *User) IsWarden() bool { return u.Role == RoleWarden }
