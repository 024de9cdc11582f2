// Package booking owns the booking lifecycle: validation of state
// transitions and the business rules around requesting, approving and
// ending a stay.
package booking

import (
	"errors"
	"fmt"

	"hostel-management-backend/internal/model"
)

// ErrInvalidTransition is returned for a lifecycle move the state machine
// does not allow.
var ErrInvalidTransition = errors.New("booking: invalid status transition")

// transitions is the complete lifecycle. Every booking starts as requested;
// ended, rejected and cancelled have no exits.
var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingRequested: {model.BookingApproved, model.BookingRejected, model.BookingCancelled},
	model.BookingApproved:  {model.BookingActive, model.BookingCancelled},
	model.BookingActive:    {model.BookingEnded},
	model.BookingRejected:  nil,
	model.BookingCancelled: nil,
	model.BookingEnded:     nil,
}

// Initial is the state every new booking is created in.
const Initial = model.BookingRequested

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to model.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status model.BookingStatus) bool {
	next, known := transitions[status]
	return known && len(next) == 0
}

// ValidateTransition returns ErrInvalidTransition (with both states named)
// when the move is not allowed.
func ValidateTransition(from, to model.BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
