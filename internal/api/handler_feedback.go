package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/ml"
	"hostel-management-backend/internal/model"
)

type feedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
	Category string `json:"category" binding:"required,oneof=facilities food staff cleanliness overall"`
}

// CreateFeedback records a rating with optional comments. Comments are run
// through the sentiment adapter; feedback without comments stays neutral.
func (h *Handler) CreateFeedback(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sentiment := ml.Sentiment{Label: model.SentimentNeutral}
	if strings.TrimSpace(req.Comments) != "" {
		var err error
		sentiment, err = h.engine.AnalyzeSentiment(req.Comments)
		if err != nil {
			fail(c, err)
			return
		}
	}

	feedback := &model.Feedback{
		StudentID:      student.ID,
		Rating:         req.Rating,
		Comments:       req.Comments,
		Category:       model.FeedbackCategory(req.Category),
		SentimentLabel: sentiment.Label,
		SentimentScore: sentiment.Score,
	}
	if err := h.store.CreateFeedback(c.Request.Context(), feedback); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

// ListMyFeedback returns the authenticated student's feedback entries.
func (h *Handler) ListMyFeedback(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}
	feedback, err := h.store.ListFeedbackByStudent(c.Request.Context(), student.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// FeedbackAnalysis returns totals, the average rating and the sentiment
// breakdown across all feedback.
func (h *Handler) FeedbackAnalysis(c *gin.Context) {
	analysis, err := h.store.FeedbackAnalysis(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
