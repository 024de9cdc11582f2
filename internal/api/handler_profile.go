package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
)

// GetProfile returns the authenticated student's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	student, err := h.store.GetStudentByUserID(c.Request.Context(), mw.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

type profileRequest struct {
	FullName      string `json:"fullName" binding:"required,max=100"`
	EnrollmentNo  string `json:"enrollmentNo" binding:"required,max=20"`
	Phone         string `json:"phone" binding:"max=15"`
	Address       string `json:"address"`
	Stream        string `json:"stream" binding:"max=50"`
	Semester      int    `json:"semester" binding:"min=0,max=12"`
	DateOfBirth   string `json:"dateOfBirth"` // 2006-01-02
	GuardianName  string `json:"guardianName" binding:"max=100"`
	GuardianPhone string `json:"guardianPhone" binding:"max=15"`
}

// PutProfile creates or replaces the authenticated student's profile.
func (h *Handler) PutProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := &model.Student{
		UserID:        mw.UserID(c),
		FullName:      req.FullName,
		EnrollmentNo:  req.EnrollmentNo,
		Phone:         req.Phone,
		Address:       req.Address,
		Stream:        req.Stream,
		Semester:      req.Semester,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfBirth must be YYYY-MM-DD"})
			return
		}
		student.DateOfBirth = &dob
	}

	if err := h.store.UpsertStudent(c.Request.Context(), student); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}
