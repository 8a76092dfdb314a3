package service

import (
	"sync"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// SyncState tracks which external orders have been ingested and the last
// status / payment status observed for each. It lives for the process
// lifetime and is rehydrated on startup from the syncedToPOS flags on the
// external documents, which remain the single source of truth.
type SyncState struct {
	mu          sync.Mutex
	processed   map[string]struct{}
	lastStatus  map[string]string
	lastPayment map[string]string
}

func NewSyncState() *SyncState {
	return &SyncState{
		processed:   make(map[string]struct{}),
		lastStatus:  make(map[string]string),
		lastPayment: make(map[string]string),
	}
}

// Hydrate seeds the processed set and the observation maps from every
// embedded order already flagged syncedToPOS.
func (s *SyncState) Hydrate(customers []entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cust := range customers {
		for _, ord := range cust.Orders {
			if !ord.SyncedToPOS {
				continue
			}
			s.processed[ord.ID] = struct{}{}
			s.lastStatus[ord.ID] = entity.NormalizeStatus(ord.Status)
			s.lastPayment[ord.ID] = entity.NormalizeStatus(ord.PaymentStatus)
		}
	}
}

func (s *SyncState) IsProcessed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.processed[id]
	return ok
}

func (s *SyncState) MarkProcessed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[id] = struct{}{}
}

// LastObserved returns the normalized status and payment status recorded for
// an order. ok is false when the maps were never warmed for this identifier.
func (s *SyncState) LastObserved(id string) (status, payment string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, okS := s.lastStatus[id]
	payment, okP := s.lastPayment[id]
	return status, payment, okS && okP
}

// Observe records the latest normalized status and payment status. Called
// only after the corresponding reconciliation action has completed.
func (s *SyncState) Observe(id, status, payment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus[id] = entity.NormalizeStatus(status)
	s.lastPayment[id] = entity.NormalizeStatus(payment)
}

// Count returns the number of processed external orders.
func (s *SyncState) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processed)
}
