package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/booking"
	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/ml"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
	"hostel-management-backend/internal/notification"
	"hostel-management-backend/internal/store"
)

type testAPI struct {
	router *gin.Engine
	store  store.Store
	tokens *mw.TokenIssuer
	notify *notification.WorkerPool
}

// setupAPI wires a full router against an isolated in-memory database.
// The ML engine runs on its keyword fallbacks (no artifacts on disk) so
// classifications are deterministic.
func setupAPI(t *testing.T, name string) *testAPI {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Auth.Issuer = "hostel-backend"
	cfg.Models.Dir = t.TempDir()
	cfg.Models.SentimentFile = "sentiment_model.json"
	cfg.Models.OccupancyFile = "occupancy_model.json"
	cfg.Models.ComplaintFile = "complaint_classifier.json"
	cfg.Uploads.Dir = t.TempDir()
	cfg.Uploads.MaxSizeBytes = 1 << 20

	appStore := store.NewGormStore(testDB)
	engine := ml.LoadEngine(&cfg.Models)
	tokens := mw.NewTokenIssuer(&cfg.Auth)
	notify := notification.NewWorkerPool(4, appStore, &webpush.Options{})
	bookings := booking.NewService(appStore, engine, false, 90)

	handler := NewHandler(cfg, appStore, engine, bookings, tokens, notify)
	return &testAPI{
		router: NewRouter(handler),
		store:  appStore,
		tokens: tokens,
		notify: notify,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// seedStaff creates a staff account directly and returns a token for it.
func (a *testAPI) seedStaff(t *testing.T, username string, role model.Role) string {
	hash, err := bcrypt.GenerateFromPassword([]byte("staff-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, a.store.CreateUser(context.Background(), user))

	token, err := a.tokens.Issue(user.ID, role)
	require.NoError(t, err)
	return token
}

// registerStudent signs up a student, fills in the profile, and returns
// the token.
func (a *testAPI) registerStudent(t *testing.T, username string) string {
	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = a.do(t, http.MethodPut, "/api/student/profile", resp.Token, gin.H{
		"fullName":     "Student " + username,
		"enrollmentNo": "EN-" + username,
		"semester":     3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return resp.Token
}

func TestAuthFlow(t *testing.T) {
	a := setupAPI(t, "auth_flow")

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "ravi",
		"email":    "ravi@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate username is a conflict.
	w = a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "ravi",
		"email":    "other@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ravi",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role model.Role `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleStudent, resp.User.Role)

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ravi",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No token, no entry.
	w = a.do(t, http.MethodGet, "/api/student/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGuards(t *testing.T) {
	a := setupAPI(t, "role_guards")

	studentToken := a.registerStudent(t, "guarded")
	wardenToken := a.seedStaff(t, "warden1", model.RoleWarden)
	adminToken := a.seedStaff(t, "admin1", model.RoleAdmin)

	// Students cannot reach the staff surface.
	w := a.do(t, http.MethodGet, "/api/admin/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Wardens may read but not mutate.
	w = a.do(t, http.MethodGet, "/api/admin/students", wardenToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodPost, "/api/admin/rooms", wardenToken, gin.H{
		"roomNumber": "A-101", "capacity": 2, "monthlyFee": 3000,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may do both.
	w = a.do(t, http.MethodPost, "/api/admin/rooms", adminToken, gin.H{
		"roomNumber": "A-101", "capacity": 2, "monthlyFee": 3000,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingLifecycleOverAPI(t *testing.T) {
	a := setupAPI(t, "booking_lifecycle")

	adminToken := a.seedStaff(t, "admin2", model.RoleAdmin)
	studentToken := a.registerStudent(t, "booker")

	w := a.do(t, http.MethodPost, "/api/admin/rooms", adminToken, gin.H{
		"roomNumber": "B-205", "capacity": 2, "monthlyFee": 4500, "amenities": "AC",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var room model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
	assert.Equal(t, "B", room.Block)
	assert.Equal(t, 2, room.Floor)
	assert.Equal(t, 5, room.Seq)

	// A booking without a profile is refused.
	bare := a.seedStaff(t, "profileless", model.RoleStudent)
	w = a.do(t, http.MethodPost, "/api/student/bookings", bare, gin.H{
		"roomId": room.ID, "checkInDate": "2026-09-01", "checkOutDate": "2026-09-30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bad dates are rejected up front.
	w = a.do(t, http.MethodPost, "/api/student/bookings", studentToken, gin.H{
		"roomId": room.ID, "checkInDate": "2026-09-30", "checkOutDate": "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/student/bookings", studentToken, gin.H{
		"roomId": room.ID, "checkInDate": "2026-09-01", "checkOutDate": "2026-09-30", "foodOption": "non-veg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b model.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, model.BookingRequested, b.Status)
	assert.InDelta(t, 4500.0/30*29, b.TotalAmount, 0.001)

	// Approve it; the student is notified and the room leaves the market.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/bookings/%d/approve", b.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, model.BookingApproved, b.Status)

	select {
	case event := <-a.notify.Jobs():
		assert.Equal(t, "Booking approved", event.Title)
	default:
		t.Fatal("expected a notification event to be queued")
	}

	w = a.do(t, http.MethodGet, "/api/student/rooms", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var available []model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &available))
	assert.Empty(t, available)

	// Approving twice is a conflict, not a silent no-op.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/bookings/%d/approve", b.ID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Record a payment against the approved booking.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/bookings/%d/payments", b.ID), adminToken, gin.H{
		"amount": b.TotalAmount, "method": "online", "transactionId": "TXN-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The student cancels; the room is released again.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/student/bookings/%d/cancel", b.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, model.BookingCancelled, b.Status)

	w = a.do(t, http.MethodGet, "/api/student/rooms", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &available))
	assert.Len(t, available, 1)

	// Cancelling someone else's booking is forbidden.
	other := a.registerStudent(t, "intruder")
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/student/bookings/%d/cancel", b.ID), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestComplaintClassificationOverAPI(t *testing.T) {
	a := setupAPI(t, "complaint_api")

	adminToken := a.seedStaff(t, "admin3", model.RoleAdmin)
	studentToken := a.registerStudent(t, "complainer")

	w := a.do(t, http.MethodPost, "/api/student/complaints", studentToken, gin.H{
		"title":       "Fan not working",
		"description": "The ceiling fan in my room stopped working and the switch sparks.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var complaint model.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &complaint))
	assert.Equal(t, model.CategoryElectrical, complaint.Category)
	assert.Equal(t, model.PriorityMedium, complaint.Priority)
	assert.Equal(t, model.ComplaintNew, complaint.Status)

	w = a.do(t, http.MethodPost, "/api/student/complaints", studentToken, gin.H{
		"title":       "Gas smell near kitchen",
		"description": "There is an urgent gas smell in the corridor, please send someone now.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var urgent model.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &urgent))
	assert.Equal(t, model.PriorityHigh, urgent.Priority)

	// Staff resolves the first complaint; the student gets a notification
	// and the resolution time is stamped.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/complaints/%d/status", complaint.ID), adminToken, gin.H{
		"status":     "resolved",
		"adminNotes": "Replaced the regulator.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &complaint))
	assert.Equal(t, model.ComplaintResolved, complaint.Status)
	require.NotNil(t, complaint.ResolvedAt)

	select {
	case event := <-a.notify.Jobs():
		assert.Equal(t, "Complaint update", event.Title)
	default:
		t.Fatal("expected a notification event to be queued")
	}

	// Unknown status values are rejected by validation.
	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/complaints/%d/status", complaint.ID), adminToken, gin.H{
		"status": "escalated",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/student/complaints", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []model.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 2)
}

func TestFeedbackSentimentOverAPI(t *testing.T) {
	a := setupAPI(t, "feedback_api")

	adminToken := a.seedStaff(t, "admin4", model.RoleAdmin)
	studentToken := a.registerStudent(t, "reviewer")

	w := a.do(t, http.MethodPost, "/api/student/feedback", studentToken, gin.H{
		"rating":   5,
		"comments": "Great rooms, clean bathrooms and friendly staff.",
		"category": "facilities",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var fb model.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	assert.Equal(t, model.SentimentPositive, fb.SentimentLabel)

	w = a.do(t, http.MethodPost, "/api/student/feedback", studentToken, gin.H{
		"rating":   1,
		"comments": "The food is terrible and the kitchen is dirty.",
		"category": "food",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	assert.Equal(t, model.SentimentNegative, fb.SentimentLabel)

	// No comments stays neutral rather than tripping the empty-input check.
	w = a.do(t, http.MethodPost, "/api/student/feedback", studentToken, gin.H{
		"rating":   3,
		"category": "overall",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fb))
	assert.Equal(t, model.SentimentNeutral, fb.SentimentLabel)

	// Out-of-range ratings are rejected.
	w = a.do(t, http.MethodPost, "/api/student/feedback", studentToken, gin.H{
		"rating":   6,
		"category": "overall",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/admin/feedback-analysis", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analysis store.FeedbackAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, int64(3), analysis.Total)
	assert.InDelta(t, 3.0, analysis.AverageRating, 0.001)
	assert.Equal(t, int64(1), analysis.BySentiment[model.SentimentPositive])
	assert.Equal(t, int64(1), analysis.BySentiment[model.SentimentNegative])
}

func TestAdminDashboardAndSubscriptions(t *testing.T) {
	a := setupAPI(t, "dashboard_api")

	adminToken := a.seedStaff(t, "admin5", model.RoleAdmin)
	studentToken := a.registerStudent(t, "dasher")

	w := a.do(t, http.MethodPost, "/api/admin/rooms", adminToken, gin.H{
		"roomNumber": "D-401", "capacity": 1, "monthlyFee": 6000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.TotalRooms)
	assert.Equal(t, int64(1), stats.AvailableRooms)

	// Push subscription round trip.
	w = a.do(t, http.MethodPut, "/api/student/subscriptions", studentToken, gin.H{
		"endpoint": "https://push.example.com/sub-1",
		"keys":     gin.H{"p256dh": "key", "auth": "secret"},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodDelete, "/api/student/subscriptions", studentToken, gin.H{
		"endpoint": "https://push.example.com/sub-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The degraded predictor answers trend requests from the snapshot store.
	snapshot := &model.OccupancySnapshot{ObservedAt: time.Now().UTC(), Rate: 25, ActiveBeds: 1, TotalCapacity: 4}
	require.NoError(t, a.store.SaveOccupancySnapshot(context.Background(), snapshot))

	w = a.do(t, http.MethodGet, "/api/admin/occupancy-trend", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trend struct {
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trend))
	assert.Equal(t, "snapshot", trend.Source)

	w = a.do(t, http.MethodGet, "/api/admin/reports/summary.pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")), "report should be a PDF document")
}
