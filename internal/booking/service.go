package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"hostel-management-backend/internal/ml"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/store"
)

var (
	// ErrInvalidDates is returned when check-out is not after check-in.
	ErrInvalidDates = errors.New("booking: check-out date must be after check-in date")

	// ErrRoomUnavailable is returned when the requested room is off the market.
	ErrRoomUnavailable = errors.New("booking: room is not available")

	// ErrNotOwner is returned when a student acts on someone else's booking.
	ErrNotOwner = errors.New("booking: booking belongs to another student")
)

// Service implements the booking operations on top of the store.
type Service struct {
	store  store.Store
	engine *ml.Engine

	autoApprove bool
	maxRate     float64
}

// NewService creates a booking service. When autoApprove is set, freshly
// requested bookings are approved immediately if the occupancy forecast
// stays under maxRate percent.
func NewService(s store.Store, engine *ml.Engine, autoApprove bool, maxRate float64) *Service {
	return &Service{
		store:       s,
		engine:      engine,
		autoApprove: autoApprove,
		maxRate:     maxRate,
	}
}

// Request creates a booking in the requested state, pricing the stay from
// the room's monthly fee. If auto-approval is enabled and the forecast
// allows it, the booking is approved in the same call.
func (svc *Service) Request(ctx context.Context, studentID, roomID int64, checkIn, checkOut time.Time, food model.FoodOption) (*model.Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	room, err := svc.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	days := checkOut.Sub(checkIn).Hours() / 24
	if food == "" {
		food = model.FoodVeg
	}

	b := &model.Booking{
		StudentID:    studentID,
		RoomID:       roomID,
		BookingDate:  time.Now().UTC(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		FoodOption:   food,
		TotalAmount:  room.MonthlyFee / 30 * days,
		Status:       Initial,
	}
	if err := svc.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	if svc.autoApprove && svc.shouldAutoApprove(ctx) {
		if err := svc.transition(ctx, b, model.BookingApproved); err != nil {
			log.Printf("auto-approval of booking %d failed, leaving it requested: %v", b.ID, err)
		}
	}

	return b, nil
}

// shouldAutoApprove consults the occupancy forecast for the coming week.
// When the predictor is degraded it falls back to the latest recorded
// actual rate; with no data at all it declines, leaving the request for
// manual review.
func (svc *Service) shouldAutoApprove(ctx context.Context) bool {
	rate, ok := svc.engine.PredictOccupancy(time.Now().UTC().AddDate(0, 0, 7))
	if !ok {
		snapshot, err := svc.store.LatestOccupancySnapshot(ctx)
		if err != nil {
			return false
		}
		rate = snapshot.Rate
	}
	return rate < svc.maxRate
}

// Approve moves a requested booking to approved, taking the room off the
// market.
func (svc *Service) Approve(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return svc.adminTransition(ctx, bookingID, model.BookingApproved)
}

// Reject moves a requested booking to rejected.
func (svc *Service) Reject(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return svc.adminTransition(ctx, bookingID, model.BookingRejected)
}

// Cancel withdraws a booking on behalf of its owning student. Only
// requested and approved bookings may be cancelled.
func (svc *Service) Cancel(ctx context.Context, studentID, bookingID int64) (*model.Booking, error) {
	b, err := svc.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if err := svc.transition(ctx, b, model.BookingCancelled); err != nil {
		return nil, err
	}
	return b, nil
}

// ApproveRequested sweeps all requested bookings through the auto-approval
// check, returning how many were approved.
func (svc *Service) ApproveRequested(ctx context.Context) (int, error) {
	requested, err := svc.store.ListBookings(ctx, model.BookingRequested)
	if err != nil {
		return 0, err
	}

	approved := 0
	for i := range requested {
		if !svc.shouldAutoApprove(ctx) {
			break
		}
		if err := svc.transition(ctx, &requested[i], model.BookingApproved); err != nil {
			log.Printf("auto-approval of booking %d failed: %v", requested[i].ID, err)
			continue
		}
		approved++
	}
	return approved, nil
}

func (svc *Service) adminTransition(ctx context.Context, bookingID int64, to model.BookingStatus) (*model.Booking, error) {
	b, err := svc.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := svc.transition(ctx, b, to); err != nil {
		return nil, err
	}
	return b, nil
}

func (svc *Service) transition(ctx context.Context, b *model.Booking, to model.BookingStatus) error {
	if err := ValidateTransition(b.Status, to); err != nil {
		return err
	}
	if err := svc.store.TransitionBooking(ctx, b.ID, b.Status, to); err != nil {
		return err
	}
	b.Status = to
	return nil
}
