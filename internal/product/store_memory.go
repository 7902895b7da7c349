package product

import (
	"context"
	"sync"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
)

// InMemoryStore keeps product records in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.ProductID]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.ProductID]Record)}
}

func (s *InMemoryStore) Create(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ProductID]; ok {
		return sentinel.ErrConflict
	}
	s.records[record.ProductID] = record
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, productID id.ProductID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[productID]; ok {
		return record, nil
	}
	return Record{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Exists(_ context.Context, productID id.ProductID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[productID]
	return ok, nil
}
