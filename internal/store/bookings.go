package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hostel-management-backend/internal/model"
)

func (s *gormStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking for student %d: %w", booking.StudentID, err)
	}
	return nil
}

func (s *gormStore) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	if err := s.db.WithContext(ctx).Preload("Room").Preload("Student").First(&booking, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &booking, nil
}

func (s *gormStore) ListBookingsByStudent(ctx context.Context, studentID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).Preload("Room").
		Where("student_id = ?", studentID).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *gormStore) ListBookings(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Preload("Room").Order("booking_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// TransitionBooking moves a booking from one lifecycle state to another.
// The update is guarded on the expected current state so two admins acting
// on the same booking cannot both win. Room availability is adjusted in the
// same transaction: approving or activating takes the room off the market,
// ending, rejecting or cancelling a non-requested booking releases it.
func (s *gormStore) TransitionBooking(ctx context.Context, id int64, from, to model.BookingStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("failed to transition booking %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("booking %d is not in state %q: %w", id, from, ErrConflict)
		}

		var booking model.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}

		switch to {
		case model.BookingApproved:
			return setRoomAvailability(tx, booking.RoomID, false)
		case model.BookingEnded, model.BookingRejected:
			return setRoomAvailability(tx, booking.RoomID, true)
		case model.BookingCancelled:
			// A cancelled request never held the room.
			if from != model.BookingRequested {
				return setRoomAvailability(tx, booking.RoomID, true)
			}
		}
		return nil
	})
}

func setRoomAvailability(tx *gorm.DB, roomID int64, available bool) error {
	err := tx.Model(&model.Room{}).
		Where("id = ?", roomID).
		Update("is_available", available).Error
	if err != nil {
		return fmt.Errorf("failed to update availability of room %d: %w", roomID, err)
	}
	return nil
}

// SweepBookings advances time-driven transitions in one transaction:
// approved bookings whose check-in date has arrived become active, and
// active bookings whose check-out date has passed are ended (releasing
// their rooms). It returns what changed so callers can notify students.
func (s *gormStore) SweepBookings(ctx context.Context, now time.Time) (activated, ended []model.Booking, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Student").
			Where("status = ? AND check_in_date <= ?", model.BookingApproved, now).
			Find(&activated).Error; err != nil {
			return err
		}
		for i := range activated {
			if err := tx.Model(&activated[i]).Update("status", model.BookingActive).Error; err != nil {
				return fmt.Errorf("failed to activate booking %d: %w", activated[i].ID, err)
			}
			activated[i].Status = model.BookingActive
		}

		if err := tx.Preload("Student").
			Where("status = ? AND check_out_date < ?", model.BookingActive, now).
			Find(&ended).Error; err != nil {
			return err
		}
		for i := range ended {
			if err := tx.Model(&ended[i]).Update("status", model.BookingEnded).Error; err != nil {
				return fmt.Errorf("failed to end booking %d: %w", ended[i].ID, err)
			}
			ended[i].Status = model.BookingEnded
			if err := setRoomAvailability(tx, ended[i].RoomID, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return activated, ended, nil
}
