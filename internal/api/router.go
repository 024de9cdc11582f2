package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = h.cfg.Uploads.MaxSizeBytes

	rateLimiter := mw.RateLimiter(rate.Limit(h.cfg.Server.RateLimitPerSec), h.cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(h.cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	student := api.Group("/student")
	student.Use(h.tokens.Auth())
	{
		student.GET("/profile", h.GetProfile)
		student.PUT("/profile", h.PutProfile)

		student.GET("/rooms", h.ListAvailableRooms)

		student.POST("/bookings", h.CreateBooking)
		student.GET("/bookings", h.ListMyBookings)
		student.POST("/bookings/:booking_id/cancel", h.CancelBooking)

		student.POST("/complaints", h.CreateComplaint)
		student.GET("/complaints", h.ListMyComplaints)

		student.POST("/feedback", h.CreateFeedback)
		student.GET("/feedback", h.ListMyFeedback)

		student.POST("/uploads/:kind", h.Upload)

		student.PUT("/subscriptions", h.PutSubscription)
		student.DELETE("/subscriptions", h.DeleteSubscription)
	}

	admin := api.Group("/admin")
	admin.Use(h.tokens.Auth(), mw.RequireRole(model.RoleAdmin, model.RoleWarden))
	{
		// Read-only staff surface: available to wardens as well.
		admin.GET("/dashboard", caching, h.Dashboard)
		admin.GET("/students", h.ListStudents)
		admin.GET("/rooms", h.ListRooms)
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/complaints", h.ListComplaints)
		admin.GET("/feedback-analysis", caching, h.FeedbackAnalysis)
		admin.GET("/ml-insights", caching, h.MLInsights)
		admin.GET("/occupancy-trend", caching, h.OccupancyTrend)
		admin.GET("/sentiment-stats", caching, h.SentimentStats)
		admin.GET("/complaint-stats", caching, h.ComplaintStats)

		// Mutations require the admin role proper.
		adminOnly := admin.Group("")
		adminOnly.Use(mw.RequireRole(model.RoleAdmin))
		{
			adminOnly.POST("/rooms", h.CreateRoom)
			adminOnly.PUT("/rooms/:room_id", h.UpdateRoom)
			adminOnly.POST("/bookings/:booking_id/approve", h.ApproveBooking)
			adminOnly.POST("/bookings/:booking_id/reject", h.RejectBooking)
			adminOnly.POST("/bookings/auto-approve", h.AutoApproveBookings)
			adminOnly.POST("/bookings/:booking_id/payments", h.CreatePayment)
			adminOnly.GET("/bookings/:booking_id/payments", h.ListPayments)
			adminOnly.POST("/complaints/:complaint_id/status", h.UpdateComplaintStatus)
			adminOnly.GET("/reports/summary.pdf", h.SummaryReportPDF)
		}
	}

	return r
}
