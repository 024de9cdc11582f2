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

type complaintRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

// CreateComplaint files a complaint for the authenticated student. Category
// and priority are assigned by the classifier.
func (h *Handler) CreateComplaint(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}

	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.engine.ClassifyComplaint(req.Title, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	complaint := &model.Complaint{
		StudentID:   student.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    class.Category,
		Priority:    class.Priority,
		Status:      model.ComplaintNew,
	}
	if err := h.store.CreateComplaint(c.Request.Context(), complaint); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListMyComplaints returns the authenticated student's complaints.
func (h *Handler) ListMyComplaints(c *gin.Context) {
	student, ok := h.currentStudent(c)
	if !ok {
		return
	}
	complaints, err := h.store.ListComplaintsByStudent(c.Request.Context(), student.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// ListComplaints returns all complaints, newest first.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.store.ListComplaints(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type complaintStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=new in_progress resolved closed"`
	AdminNotes string `json:"adminNotes"`
}

// UpdateComplaintStatus moves a complaint through its workflow and notifies
// the student. Resolving or closing stamps the resolution time.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("complaint_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	var req complaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := model.ComplaintStatus(req.Status)
	var resolvedAt *time.Time
	if status == model.ComplaintResolved || status == model.ComplaintClosed {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	if err := h.store.UpdateComplaintStatus(c.Request.Context(), id, status, req.AdminNotes, resolvedAt); err != nil {
		fail(c, err)
		return
	}

	complaint, err := h.store.GetComplaint(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.notify.Dispatch(notification.Event{
		UserID: complaint.Student.UserID,
		Title:  "Complaint update",
		Body:   fmt.Sprintf("Complaint %q is now %s.", complaint.Title, complaint.Status),
	})
	c.JSON(http.StatusOK, complaint)
}
