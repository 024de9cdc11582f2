// Package notification delivers web-push messages to students when
// something they care about changes: a booking decision, a complaint
// status update, a stay beginning or ending.
package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/store"
)

// Event is one notification job: a message addressed to a user account.
type Event struct {
	UserID int64  `json:"-"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender implementation using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Event
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size*4),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case event := <-wp.jobs:
			wp.deliver(ctx, event)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an event for delivery. It never blocks the caller: when
// the queue is full the event is dropped with a log line, since push
// notifications are best-effort.
func (wp *WorkerPool) Dispatch(event Event) {
	select {
	case wp.jobs <- event:
	default:
		log.Printf("notification queue full, dropping event for user %d", event.UserID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

// deliver fetches the user's subscriptions and pushes the event to each.
func (wp *WorkerPool) deliver(ctx context.Context, event Event) {
	subscriptions, err := wp.store.SubscriptionsForUser(ctx, event.UserID)
	if err != nil {
		log.Printf("error fetching subscriptions for user %d: %v", event.UserID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling notification payload: %v", err)
		return
	}

	for _, sub := range subscriptions {
		wp.push(ctx, sub, payload)
	}
}

// push sends a single web push notification.
func (wp *WorkerPool) push(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions.
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription for endpoint %s is expired, deleting", sub.Endpoint)
		if err := wp.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
