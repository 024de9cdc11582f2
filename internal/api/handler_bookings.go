package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/notification"
)

type bookingRequest struct {
	RoomID       int64  `json:"roomId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`  // 2006-01-02
	CheckOutDate string `json:"checkOutDate" binding:"required"` // 2006-01-02
	FoodOption   string `json:"foodOption"`
}

// CreateBooking places a booking request for the authenticated student.
func (h *Handler) CreateBooking(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkInDate must be YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOutDate must be YYYY-MM-DD"})
		return
	}

	food := model.FoodOption(req.FoodOption)
	if food != "" && food != model.FoodVeg && food != model.FoodNonVeg {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodOption must be veg or non-veg"})
		return
	}

	b, err := h.bookings.Request(c.Request.Context(), student.ID, req.RoomID, checkIn, checkOut, food)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookings returns the authenticated student's bookings, newest first.
func (h *Handler) ListMyBookings(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}
	bookings, err := h.store.ListBookingsByStudent(c.Request.Context(), student.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking withdraws one of the authenticated student's bookings.
func (h *Handler) CancelBooking(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.bookings.Cancel(c.Request.Context(), student.ID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings returns all bookings; pass ?status= to filter by state.
func (h *Handler) ListBookings(c *gin.Context) {
	status := model.BookingStatus(c.Query("status"))
	bookings, err := h.store.ListBookings(c.Request.Context(), status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ApproveBooking moves a requested booking to approved and notifies the
// student.
func (h *Handler) ApproveBooking(c *gin.Context) {
	h.decideBooking(c, true)
}

// RejectBooking moves a requested booking to rejected and notifies the
// student.
func (h *Handler) RejectBooking(c *gin.Context) {
	h.decideBooking(c, false)
}

func (h *Handler) decideBooking(c *gin.Context, approve bool) {
	id, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var b *model.Booking
	if approve {
		b, err = h.bookings.Approve(c.Request.Context(), id)
	} else {
		b, err = h.bookings.Reject(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, err)
		return
	}

	title, body := "Booking approved", fmt.Sprintf("Your booking #%d for room %s has been approved.", b.ID, b.Room.RoomNumber)
	if !approve {
		title, body = "Booking rejected", fmt.Sprintf("Your booking #%d for room %s has been rejected.", b.ID, b.Room.RoomNumber)
	}
	h.notify.Dispatch(notification.Event{UserID: b.Student.UserID, Title: title, Body: body})

	c.JSON(http.StatusOK, b)
}

// AutoApproveBookings sweeps requested bookings through the occupancy
// forecast gate.
func (h *Handler) AutoApproveBookings(c *gin.Context) {
	approved, err := h.bookings.ApproveRequested(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": approved})
}

type paymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method" binding:"required,oneof=cash online card"`
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending completed failed"`
}

// CreatePayment records a payment against a booking.
func (h *Handler) CreatePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.GetBooking(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	status := model.PaymentStatus(req.Status)
	if status == "" {
		status = model.PaymentCompleted
	}
	payment := &model.Payment{
		BookingID:     id,
		Amount:        req.Amount,
		Method:        model.PaymentMethod(req.Method),
		TransactionID: req.TransactionID,
		Status:        status,
		PaidAt:        time.Now().UTC(),
	}
	if err := h.store.CreatePayment(c.Request.Context(), payment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ListPayments returns payments recorded against a booking.
func (h *Handler) ListPayments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	payments, err := h.store.ListPaymentsByBooking(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
