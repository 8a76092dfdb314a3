package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrSyncInProgress is returned by SyncNow when a pass is already running.
var ErrSyncInProgress = errors.New("sync already in progress")

// SyncStatus is the externally visible scheduler state.
type SyncStatus struct {
	IsRunning       bool `json:"isRunning"`
	ProcessedOrders int  `json:"processedOrders"`
}

// Scheduler owns the repeating sync timer. A single instance is assumed;
// overlapping ticks are skipped rather than run concurrently, and the
// manual SyncNow path shares the same guard.
type Scheduler struct {
	svc *SyncService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	syncing atomic.Bool
}

func NewScheduler(svc *SyncService) *Scheduler {
	return &Scheduler{svc: svc}
}

// Start begins periodic syncing. Calling Start on a running scheduler logs
// and no-ops.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.Info().Msg("Digital menu sync already running")
		return
	}

	s.running = true
	s.stopCh = make(chan struct{})

	go s.run(interval, s.stopCh)
	logger.Info().Dur("interval", interval).Msg("Digital menu sync started")
}

func (s *Scheduler) run(interval time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	if !s.syncing.CompareAndSwap(false, true) {
		logger.Warn().Msg("Previous sync pass still running, skipping tick")
		return
	}
	defer s.syncing.Store(false)

	if _, err := s.svc.SyncOrders(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Digital menu sync pass failed")
	}
}

// Stop clears the timer. No in-flight pass is aborted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
	logger.Info().Msg("Digital menu sync stopped")
}

// SyncNow runs one manual sync pass on the caller's goroutine, sharing the
// scheduler's re-entrancy guard.
func (s *Scheduler) SyncNow(ctx context.Context) (int, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return 0, ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	return s.svc.SyncOrders(ctx)
}

// Status reports whether the scheduler is running and how many external
// orders have been processed.
func (s *Scheduler) Status() SyncStatus {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return SyncStatus{
		IsRunning:       running,
		ProcessedOrders: s.svc.State().Count(),
	}
}
