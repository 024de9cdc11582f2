package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-management-backend/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrConflict is returned when a guarded update matched no rows,
	// typically because another request changed the record first.
	ErrConflict = errors.New("store: conflicting update")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	UpsertStudent(ctx context.Context, student *model.Student) error
	GetStudentByUserID(ctx context.Context, userID int64) (*model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)

	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	ListRooms(ctx context.Context, onlyAvailable bool) ([]model.Room, error)

	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	ListBookingsByStudent(ctx context.Context, studentID int64) ([]model.Booking, error)
	ListBookings(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	TransitionBooking(ctx context.Context, id int64, from, to model.BookingStatus) error
	SweepBookings(ctx context.Context, now time.Time) (activated, ended []model.Booking, err error)

	CreateComplaint(ctx context.Context, complaint *model.Complaint) error
	GetComplaint(ctx context.Context, id int64) (*model.Complaint, error)
	ListComplaintsByStudent(ctx context.Context, studentID int64) ([]model.Complaint, error)
	ListComplaints(ctx context.Context) ([]model.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id int64, status model.ComplaintStatus, notes string, resolvedAt *time.Time) error

	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
	ListFeedbackByStudent(ctx context.Context, studentID int64) ([]model.Feedback, error)
	ListFeedback(ctx context.Context) ([]model.Feedback, error)

	CreatePayment(ctx context.Context, payment *model.Payment) error
	ListPaymentsByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)
	SentimentCounts(ctx context.Context) (map[model.SentimentLabel]int64, error)
	ComplaintStats(ctx context.Context) (*ComplaintStats, error)
	FeedbackAnalysis(ctx context.Context) (*FeedbackAnalysis, error)

	OccupancyRate(ctx context.Context, now time.Time) (*model.OccupancySnapshot, error)
	SaveOccupancySnapshot(ctx context.Context, snapshot *model.OccupancySnapshot) error
	LatestOccupancySnapshot(ctx context.Context) (*model.OccupancySnapshot, error)

	UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for transactional call sites.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- Users ---

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// --- Students ---

func (s *gormStore) UpsertStudent(ctx context.Context, student *model.Student) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "enrollment_no", "phone", "address", "stream",
			"semester", "date_of_birth", "guardian_name", "guardian_phone", "updated_at",
		}),
	}).Create(student).Error
	if err != nil {
		return fmt.Errorf("failed to upsert student profile for user %d: %w", student.UserID, err)
	}
	return nil
}

func (s *gormStore) GetStudentByUserID(ctx context.Context, userID int64) (*model.Student, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &student, nil
}

func (s *gormStore) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := s.db.WithContext(ctx).Order("full_name").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// --- Rooms ---

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room %q: %w", room.RoomNumber, err)
	}
	return nil
}

func (s *gormStore) UpdateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room %d: %w", room.ID, err)
	}
	return nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &room, nil
}

func (s *gormStore) ListRooms(ctx context.Context, onlyAvailable bool) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Order("room_number")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var rooms []model.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
