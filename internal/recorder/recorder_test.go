package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/notification"
	"hostel-management-backend/internal/store"
)

func TestRecordOnce(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:recorder_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	ctx := context.Background()
	now := time.Now().UTC()
	appStore := store.NewGormStore(testDB)

	user := &model.User{Username: "recorded", Email: "recorded@example.com", PasswordHash: "x", Role: model.RoleStudent, IsActive: true}
	require.NoError(t, appStore.CreateUser(ctx, user))
	student := &model.Student{UserID: user.ID, FullName: "Recorded Student", EnrollmentNo: "EN-REC"}
	require.NoError(t, appStore.UpsertStudent(ctx, student))

	room := &model.Room{RoomNumber: "E-501", Block: "E", Floor: 5, Seq: 1, Capacity: 2, MonthlyFee: 3000, IsAvailable: false}
	require.NoError(t, appStore.CreateRoom(ctx, room))

	// Approved and overdue for check-in: RecordOnce should activate it.
	require.NoError(t, appStore.CreateBooking(ctx, &model.Booking{
		StudentID: student.ID, RoomID: room.ID,
		BookingDate: now, CheckInDate: now.Add(-time.Hour), CheckOutDate: now.Add(24 * time.Hour),
		FoodOption: model.FoodVeg, Status: model.BookingApproved,
	}))

	cfg := &config.Config{}
	cfg.Recorder.Enabled = true
	cfg.Recorder.Interval = time.Hour

	workerPool := notification.NewWorkerPool(2, appStore, &webpush.Options{})
	svc := NewService(cfg, appStore, workerPool)

	svc.RecordOnce(ctx)

	// The booking moved to active and the student was queued a notification.
	bookings, err := appStore.ListBookings(ctx, model.BookingActive)
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	select {
	case event := <-workerPool.Jobs():
		assert.Equal(t, user.ID, event.UserID)
		assert.Equal(t, "Your stay has started", event.Title)
	default:
		t.Fatal("expected an activation notification to be queued")
	}

	// A snapshot of the resulting occupancy was persisted.
	snapshot, err := appStore.LatestOccupancySnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.ActiveBeds)
	assert.Equal(t, 2, snapshot.TotalCapacity)
	assert.InDelta(t, 50.0, snapshot.Rate, 0.001)
}

func TestRunRespectsDisabledFlag(t *testing.T) {
	cfg := &config.Config{}
	cfg.Recorder.Enabled = false

	svc := NewService(cfg, nil, nil)

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when the recorder is disabled")
	}
}
