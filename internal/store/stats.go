package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"hostel-management-backend/internal/model"
)

// DashboardStats is the aggregate view backing the admin dashboard.
type DashboardStats struct {
	TotalStudents     int64   `json:"totalStudents"`
	TotalRooms        int64   `json:"totalRooms"`
	AvailableRooms    int64   `json:"availableRooms"`
	TotalBookings     int64   `json:"totalBookings"`
	RequestedBookings int64   `json:"requestedBookings"`
	TotalComplaints   int64   `json:"totalComplaints"`
	OpenComplaints    int64   `json:"openComplaints"`
	TotalFeedback     int64   `json:"totalFeedback"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// ComplaintStats groups complaint counts by category and priority.
type ComplaintStats struct {
	Categories map[model.ComplaintCategory]int64 `json:"categories"`
	Priorities map[model.ComplaintPriority]int64 `json:"priorities"`
}

// FeedbackAnalysis summarizes feedback sentiment and ratings.
type FeedbackAnalysis struct {
	Total         int64                          `json:"total"`
	AverageRating float64                        `json:"averageRating"`
	BySentiment   map[model.SentimentLabel]int64 `json:"bySentiment"`
}

func (s *gormStore) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	counts := []struct {
		dst   *int64
		query func(dst *int64) error
	}{
		{&stats.TotalStudents, func(dst *int64) error {
			return db.Model(&model.Student{}).Count(dst).Error
		}},
		{&stats.TotalRooms, func(dst *int64) error {
			return db.Model(&model.Room{}).Count(dst).Error
		}},
		{&stats.AvailableRooms, func(dst *int64) error {
			return db.Model(&model.Room{}).Where("is_available = ?", true).Count(dst).Error
		}},
		{&stats.TotalBookings, func(dst *int64) error {
			return db.Model(&model.Booking{}).Count(dst).Error
		}},
		{&stats.RequestedBookings, func(dst *int64) error {
			return db.Model(&model.Booking{}).Where("status = ?", model.BookingRequested).Count(dst).Error
		}},
		{&stats.TotalComplaints, func(dst *int64) error {
			return db.Model(&model.Complaint{}).Count(dst).Error
		}},
		{&stats.OpenComplaints, func(dst *int64) error {
			return db.Model(&model.Complaint{}).
				Where("status IN ?", []model.ComplaintStatus{model.ComplaintNew, model.ComplaintInProgress}).
				Count(dst).Error
		}},
		{&stats.TotalFeedback, func(dst *int64) error {
			return db.Model(&model.Feedback{}).Count(dst).Error
		}},
	}
	for _, c := range counts {
		if err := c.query(c.dst); err != nil {
			return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
		}
	}

	// Revenue counts bookings that were at least approved.
	err := db.Model(&model.Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status IN ?", []model.BookingStatus{model.BookingApproved, model.BookingActive, model.BookingEnded}).
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	return &stats, nil
}

func (s *gormStore) SentimentCounts(ctx context.Context) (map[model.SentimentLabel]int64, error) {
	type row struct {
		SentimentLabel model.SentimentLabel
		Count          int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.Feedback{}).
		Select("sentiment_label, COUNT(*) as count").
		Group("sentiment_label").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sentiment counts: %w", err)
	}

	counts := make(map[model.SentimentLabel]int64, len(rows))
	for _, r := range rows {
		counts[r.SentimentLabel] = r.Count
	}
	return counts, nil
}

func (s *gormStore) ComplaintStats(ctx context.Context) (*ComplaintStats, error) {
	stats := &ComplaintStats{
		Categories: make(map[model.ComplaintCategory]int64),
		Priorities: make(map[model.ComplaintPriority]int64),
	}

	type catRow struct {
		Category model.ComplaintCategory
		Count    int64
	}
	var catRows []catRow
	err := s.db.WithContext(ctx).Model(&model.Complaint{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&catRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate complaint categories: %w", err)
	}
	for _, r := range catRows {
		stats.Categories[r.Category] = r.Count
	}

	type prioRow struct {
		Priority model.ComplaintPriority
		Count    int64
	}
	var prioRows []prioRow
	err = s.db.WithContext(ctx).Model(&model.Complaint{}).
		Select("priority, COUNT(*) as count").
		Group("priority").
		Scan(&prioRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate complaint priorities: %w", err)
	}
	for _, r := range prioRows {
		stats.Priorities[r.Priority] = r.Count
	}

	return stats, nil
}

func (s *gormStore) FeedbackAnalysis(ctx context.Context) (*FeedbackAnalysis, error) {
	analysis := &FeedbackAnalysis{BySentiment: make(map[model.SentimentLabel]int64)}

	if err := s.db.WithContext(ctx).Model(&model.Feedback{}).Count(&analysis.Total).Error; err != nil {
		return nil, err
	}
	if analysis.Total > 0 {
		err := s.db.WithContext(ctx).Model(&model.Feedback{}).
			Select("AVG(rating)").
			Scan(&analysis.AverageRating).Error
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate average rating: %w", err)
		}
	}

	counts, err := s.SentimentCounts(ctx)
	if err != nil {
		return nil, err
	}
	analysis.BySentiment = counts
	return analysis, nil
}

// --- Occupancy ---

// OccupancyRate computes the actual occupancy now: beds taken by active
// bookings against the total capacity of all rooms.
func (s *gormStore) OccupancyRate(ctx context.Context, now time.Time) (*model.OccupancySnapshot, error) {
	var activeBeds int64
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ?", model.BookingActive).
		Count(&activeBeds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}

	var totalCapacity int64
	err = s.db.WithContext(ctx).Model(&model.Room{}).
		Select("COALESCE(SUM(capacity), 0)").
		Scan(&totalCapacity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum room capacity: %w", err)
	}

	snapshot := &model.OccupancySnapshot{
		ObservedAt:    now,
		ActiveBeds:    int(activeBeds),
		TotalCapacity: int(totalCapacity),
	}
	if totalCapacity > 0 {
		snapshot.Rate = float64(activeBeds) / float64(totalCapacity) * 100
	}
	return snapshot, nil
}

func (s *gormStore) SaveOccupancySnapshot(ctx context.Context, snapshot *model.OccupancySnapshot) error {
	if err := s.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to save occupancy snapshot: %w", err)
	}
	return nil
}

func (s *gormStore) LatestOccupancySnapshot(ctx context.Context) (*model.OccupancySnapshot, error) {
	var snapshot model.OccupancySnapshot
	err := s.db.WithContext(ctx).Order("observed_at DESC").First(&snapshot).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &snapshot, nil
}

// --- Push subscriptions ---

func (s *gormStore) UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return nil
}

func (s *gormStore) DeletePushSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}

func (s *gormStore) SubscriptionsForUser(ctx context.Context, userID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
