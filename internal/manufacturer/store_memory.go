package manufacturer

import (
	"context"
	"sync"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
)

// InMemoryStore keeps the allow-list in process memory. It intentionally
// favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.AccountID]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.AccountID]Record)}
}

func (s *InMemoryStore) Register(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Account]; ok {
		return sentinel.ErrConflict
	}
	s.records[record.Account] = record
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, account id.AccountID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[account]; ok {
		return record, nil
	}
	return Record{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) IsRegistered(_ context.Context, account id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[account]
	return ok, nil
}
