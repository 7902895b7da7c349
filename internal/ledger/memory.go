package ledger

import (
	"context"
	"sync"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/requestcontext"
)

// InMemoryLog keeps the log in process memory. It favors clarity over
// performance: a single mutex serializes appends across all keys, which is
// stricter than the per-key requirement and trivially correct.
type InMemoryLog struct {
	mu      sync.RWMutex
	entries map[id.ProductID][]Entry
}

func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{entries: make(map[id.ProductID][]Entry)}
}

func (l *InMemoryLog) Append(ctx context.Context, key id.ProductID, account id.AccountID, guard Guard) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prior := l.entries[key]
	if guard != nil {
		// Guards get a copy so they cannot mutate committed history.
		if err := guard(append([]Entry{}, prior...)); err != nil {
			return Entry{}, err
		}
	}
	entry := Entry{
		Key:        key,
		Seq:        uint64(len(prior)) + 1,
		Account:    account,
		RecordedAt: requestcontext.Now(ctx),
	}
	l.entries[key] = append(prior, entry)
	return entry, nil
}

func (l *InMemoryLog) History(_ context.Context, key id.ProductID) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry{}, l.entries[key]...), nil
}

func (l *InMemoryLog) Latest(_ context.Context, key id.ProductID) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.entries[key]
	if len(entries) == 0 {
		return Entry{}, sentinel.ErrNotFound
	}
	return entries[len(entries)-1], nil
}
