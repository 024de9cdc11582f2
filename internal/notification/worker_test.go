package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-management-backend/internal/store"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// A helper function to create a mock database connection.
func newTestStore(t *testing.T) (store.Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return store.NewGormStore(gormDB), mock
}

func TestWorkerPool_Dispatch(t *testing.T) {
	s, _ := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	wp.Dispatch(Event{UserID: 123, Title: "Booking approved", Body: "Your booking #1 has been approved."})

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job.UserID)
		assert.Equal(t, "Booking approved", job.Title)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchNeverBlocks(t *testing.T) {
	s, _ := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	// No worker is running; overfill the queue and make sure the extra
	// events are dropped instead of hanging the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(wp.jobs)+10; i++ {
			wp.Dispatch(Event{UserID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
	assert.Equal(t, cap(wp.jobs), len(wp.jobs))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	s, mock := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	t.Run("sends notification for one subscription", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.JSONEq(t, `{"title":"Booking approved","body":"Your booking #7 for room A-304 has been approved."}`, string(payload))
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE user_id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "user_id", "p256dh", "auth", "created_at"}).
				AddRow("https://example.com/push", 42, "test_p256dh", "test_auth", time.Now()))

		wp.Dispatch(Event{
			UserID: 42,
			Title:  "Booking approved",
			Body:   "Your booking #7 for room A-304 has been approved.",
		})
		wg.Wait()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusGone,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE user_id = \$1`).
			WithArgs(int64(43)).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "user_id", "p256dh", "auth", "created_at"}).
				AddRow("https://example.com/expired", 43, "test_p256dh_expired", "test_auth_expired", time.Now()))

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "push_subscriptions" WHERE "push_subscriptions"."endpoint" = \$1`).
			WithArgs("https://example.com/expired").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		wp.Dispatch(Event{UserID: 43, Title: "Complaint update", Body: "Complaint \"No hot water\" is now resolved."})

		// A short sleep to allow the worker to process the job
		time.Sleep(100 * time.Millisecond)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no subscriptions means no send", func(t *testing.T) {
		sent := false
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				sent = true
				return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(bytes.NewBufferString(""))}, nil
			},
		}

		mock.ExpectQuery(`SELECT .* FROM "push_subscriptions" WHERE user_id = \$1`).
			WithArgs(int64(44)).
			WillReturnRows(sqlmock.NewRows([]string{"endpoint", "user_id", "p256dh", "auth", "created_at"}))

		wp.Dispatch(Event{UserID: 44, Title: "noop", Body: "noop"})

		time.Sleep(100 * time.Millisecond)

		assert.False(t, sent, "nothing should be pushed without a subscription")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
