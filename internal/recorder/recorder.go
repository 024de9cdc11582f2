// Package recorder runs the periodic bookkeeping loop: advancing
// time-driven booking transitions and persisting occupancy snapshots.
package recorder

import (
	"context"
	"fmt"
	"log"
	"time"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/notification"
	"hostel-management-backend/internal/store"
)

// Service orchestrates the periodic occupancy recording cycle.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
}

// NewService creates and initializes a new recorder service.
func NewService(cfg *config.Config, s store.Store, wp *notification.WorkerPool) *Service {
	return &Service{cfg: cfg, store: s, workerPool: wp}
}

// Run starts the recording loop. It ticks immediately, then on the
// configured interval, until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Recorder.Enabled {
		log.Println("Occupancy recorder is disabled. Not starting.")
		return
	}
	log.Println("Starting occupancy recorder...")

	s.RecordOnce(ctx)

	timer := time.NewTimer(s.cfg.Recorder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Occupancy recorder shutting down.")
			return
		case <-timer.C:
			s.RecordOnce(ctx)
			timer.Reset(s.cfg.Recorder.Interval)
		}
	}
}

// RecordOnce performs a single bookkeeping cycle: sweep bookings whose
// check-in or check-out date has passed, then snapshot the resulting
// occupancy rate.
func (s *Service) RecordOnce(ctx context.Context) {
	now := time.Now().UTC()

	activated, ended, err := s.store.SweepBookings(ctx, now)
	if err != nil {
		log.Printf("Error sweeping bookings: %v", err)
		return
	}

	for _, b := range activated {
		s.workerPool.Dispatch(notification.Event{
			UserID: b.Student.UserID,
			Title:  "Your stay has started",
			Body:   fmt.Sprintf("Booking #%d is now active. Welcome!", b.ID),
		})
	}
	for _, b := range ended {
		s.workerPool.Dispatch(notification.Event{
			UserID: b.Student.UserID,
			Title:  "Your stay has ended",
			Body:   fmt.Sprintf("Booking #%d has ended. We hope you enjoyed your stay.", b.ID),
		})
	}

	snapshot, err := s.store.OccupancyRate(ctx, now)
	if err != nil {
		log.Printf("Error computing occupancy rate: %v", err)
		return
	}
	if err := s.store.SaveOccupancySnapshot(ctx, snapshot); err != nil {
		log.Printf("Error saving occupancy snapshot: %v", err)
		return
	}

	log.Printf("Occupancy recorded: %.1f%% (%d/%d beds), %d bookings activated, %d ended",
		snapshot.Rate, snapshot.ActiveBeds, snapshot.TotalCapacity, len(activated), len(ended))
}
