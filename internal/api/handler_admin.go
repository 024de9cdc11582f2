package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/report"
)

// Dashboard returns the aggregate counts backing the admin dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.store.DashboardStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListStudents returns all student profiles.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.store.ListStudents(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// MLInsights reports adapter health and the occupancy outlook for the
// coming week.
func (h *Handler) MLInsights(c *gin.Context) {
	out := gin.H{"models": h.engine.Status()}

	forecastAt := time.Now().UTC().AddDate(0, 0, 7)
	if rate, ok := h.engine.PredictOccupancy(forecastAt); ok {
		out["occupancyForecast"] = gin.H{
			"date":          forecastAt.Format("2006-01-02"),
			"occupancyRate": rate,
			"source":        "model",
		}
	} else if snapshot, err := h.store.LatestOccupancySnapshot(c.Request.Context()); err == nil {
		out["occupancyForecast"] = gin.H{
			"date":          snapshot.ObservedAt.Format("2006-01-02"),
			"occupancyRate": snapshot.Rate,
			"source":        "snapshot",
		}
	}

	if counts, err := h.store.SentimentCounts(c.Request.Context()); err == nil {
		out["sentiment"] = counts
	}

	c.JSON(http.StatusOK, out)
}

// OccupancyTrend returns a daily occupancy forecast; ?days= controls the
// horizon (default 30, max 365). When the predictor is degraded the latest
// recorded snapshot is returned instead.
func (h *Handler) OccupancyTrend(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = parsed
	}

	if points, ok := h.engine.OccupancyTrend(time.Now().UTC(), days); ok {
		c.JSON(http.StatusOK, gin.H{"source": "model", "points": points})
		return
	}

	snapshot, err := h.store.LatestOccupancySnapshot(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source": "snapshot",
		"points": []gin.H{{
			"date":          snapshot.ObservedAt.Format("2006-01-02"),
			"occupancyRate": snapshot.Rate,
		}},
	})
}

// SentimentStats returns feedback counts grouped by sentiment label.
func (h *Handler) SentimentStats(c *gin.Context) {
	counts, err := h.store.SentimentCounts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// ComplaintStats returns complaint counts grouped by category and priority.
func (h *Handler) ComplaintStats(c *gin.Context) {
	stats, err := h.store.ComplaintStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// reportRecent caps how many bookings and complaints the PDF report lists.
const reportRecent = 10

// SummaryReportPDF renders the dashboard stats plus recent activity as a
// downloadable PDF.
func (h *Handler) SummaryReportPDF(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.store.DashboardStats(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	bookings, err := h.store.ListBookings(ctx, "")
	if err != nil {
		fail(c, err)
		return
	}
	if len(bookings) > reportRecent {
		bookings = bookings[:reportRecent]
	}
	complaints, err := h.store.ListComplaints(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if len(complaints) > reportRecent {
		complaints = complaints[:reportRecent]
	}

	pdf, err := report.BuildPDF(report.Summary{
		GeneratedAt:      time.Now().UTC(),
		Stats:            stats,
		RecentBookings:   bookings,
		RecentComplaints: complaints,
	})
	if err != nil {
		fail(c, err)
		return
	}

	filename := fmt.Sprintf("hostel-report-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
