package memory

import (
	"context"
	"sync"

	id "prodauth/pkg/domain"
	audit "prodauth/pkg/platform/audit"
)

// Store keeps audit events in memory, ordered by append. Used by tests and by
// deployments without a durable audit sink configured.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListByProduct(_ context.Context, productID id.ProductID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []audit.Event{}
	for _, event := range s.events {
		if event.Product == productID {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

// All returns every event in append order; test helper.
func (s *Store) All() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...)
}
