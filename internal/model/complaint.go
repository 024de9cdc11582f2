package model

import "time"

// ComplaintCategory is assigned by the complaint classifier.
type ComplaintCategory string

const (
	CategoryElectrical ComplaintCategory = "electrical"
	CategoryPlumbing   ComplaintCategory = "plumbing"
	CategoryCleaning   ComplaintCategory = "cleaning"
	CategoryFurniture  ComplaintCategory = "furniture"
	CategoryInternet   ComplaintCategory = "internet"
	CategoryOther      ComplaintCategory = "other"
)

// ComplaintPriority is assigned by the complaint classifier.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityMedium ComplaintPriority = "medium"
	PriorityHigh   ComplaintPriority = "high"
)

// ComplaintStatus tracks the handling of a complaint by staff.
type ComplaintStatus string

const (
	ComplaintNew        ComplaintStatus = "new"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
)

// Complaint is a maintenance issue raised by a student.
type Complaint struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	StudentID   int64             `gorm:"index;not null" json:"studentId"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Description string            `gorm:"not null" json:"description"`
	Category    ComplaintCategory `gorm:"size:16;index;not null;default:other" json:"category"`
	Priority    ComplaintPriority `gorm:"size:8;index;not null;default:medium" json:"priority"`
	Status      ComplaintStatus   `gorm:"size:16;index;not null;default:new" json:"status"`
	AdminNotes  string            `json:"adminNotes"`
	ResolvedAt  *time.Time        `json:"resolvedAt"`
	CreatedAt   time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Associations
	Student Student `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
