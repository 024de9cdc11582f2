package store

import (
	"context"
	"fmt"
	"time"

	"hostel-management-backend/internal/model"
)

func (s *gormStore) CreateComplaint(ctx context.Context, complaint *model.Complaint) error {
	if err := s.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return fmt.Errorf("failed to create complaint for student %d: %w", complaint.StudentID, err)
	}
	return nil
}

func (s *gormStore) GetComplaint(ctx context.Context, id int64) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := s.db.WithContext(ctx).Preload("Student").First(&complaint, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &complaint, nil
}

func (s *gormStore) ListComplaintsByStudent(ctx context.Context, studentID int64) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *gormStore) ListComplaints(ctx context.Context) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *gormStore) UpdateComplaintStatus(ctx context.Context, id int64, status model.ComplaintStatus, notes string, resolvedAt *time.Time) error {
	updates := map[string]any{
		"status":      status,
		"admin_notes": notes,
	}
	if resolvedAt != nil {
		updates["resolved_at"] = *resolvedAt
	}

	res := s.db.WithContext(ctx).Model(&model.Complaint{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update complaint %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Feedback ---

func (s *gormStore) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback for student %d: %w", feedback.StudentID, err)
	}
	return nil
}

func (s *gormStore) ListFeedbackByStudent(ctx context.Context, studentID int64) ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *gormStore) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	var feedback []model.Feedback
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// --- Payments ---

func (s *gormStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment for booking %d: %w", payment.BookingID, err)
	}
	return nil
}

func (s *gormStore) ListPaymentsByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
