package model

import "time"

// SentimentLabel is assigned by the sentiment adapter.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// FeedbackCategory groups feedback by what it is about.
type FeedbackCategory string

const (
	FeedbackFacilities  FeedbackCategory = "facilities"
	FeedbackFood        FeedbackCategory = "food"
	FeedbackStaff       FeedbackCategory = "staff"
	FeedbackCleanliness FeedbackCategory = "cleanliness"
	FeedbackOverall     FeedbackCategory = "overall"
)

// Feedback is a rating plus free-form comments from a student.
type Feedback struct {
	ID             int64            `gorm:"primaryKey" json:"id"`
	StudentID      int64            `gorm:"index;not null" json:"studentId"`
	Rating         int              `gorm:"not null" json:"rating"` // 1-5
	Comments       string           `json:"comments"`
	Category       FeedbackCategory `gorm:"size:16;not null" json:"category"`
	SentimentLabel SentimentLabel   `gorm:"size:8;index" json:"sentimentLabel"`
	SentimentScore float64          `json:"sentimentScore"`
	CreatedAt      time.Time        `gorm:"not null" json:"createdAt"`

	// Associations
	Student Student `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
