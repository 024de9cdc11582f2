package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/booking"
	"hostel-management-backend/internal/ml"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
	"hostel-management-backend/internal/notification"
	"hostel-management-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg      *config.Config
	store    store.Store
	engine   *ml.Engine
	bookings *booking.Service
	tokens   *mw.TokenIssuer
	notify   *notification.WorkerPool
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, s store.Store, engine *ml.Engine, bookings *booking.Service, tokens *mw.TokenIssuer, notify *notification.WorkerPool) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    s,
		engine:   engine,
		bookings: bookings,
		tokens:   tokens,
		notify:   notify,
	}
}

// currentStudent resolves the authenticated user's student profile. When
// none exists yet it writes the error response and returns false, so
// handlers can bail out with a plain early return.
func (h *Handler) currentStudent(c *gin.Context) (*model.Student, bool) {
	student, err := h.store.GetStudentByUserID(c.Request.Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "complete your profile first"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load student profile"})
		}
		return nil, false
	}
	return student, true
}

// fail maps domain errors onto HTTP responses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict),
		errors.Is(err, booking.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrRoomUnavailable):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "room is not available"})
	case errors.Is(err, booking.ErrInvalidDates):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "check-out date must be after check-in date"})
	case errors.Is(err, booking.ErrNotOwner):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "booking belongs to another student"})
	case errors.Is(err, ml.ErrEmptyInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
