// Package ledger models the append-only substrate the registries live on.
//
// A Log is a keyed, append-only sequence of entries with per-key monotonic
// sequence numbers. Appends are guarded: the guard sees the committed history
// for the key and may veto the append, and the guard-then-append pair is
// atomic with respect to other appends on the same key. This is what keeps
// authorization decisions (for example "caller is the current owner") from
// racing with the append they authorize.
package ledger

import (
	"context"
	"time"

	id "prodauth/pkg/domain"
)

// Entry is one committed element of an append-only log.
type Entry struct {
	Key        id.ProductID
	Seq        uint64 // 1-based, monotonic per key, assigned at commit
	Account    id.AccountID
	RecordedAt time.Time
}

// Guard inspects the committed history for a key before an append commits.
// Returning a non-nil error aborts the append and leaves the log unchanged;
// the error is surfaced to the caller verbatim so guards can return coded
// domain errors.
type Guard func(prior []Entry) error

// Log is an append-only keyed event log.
//
// Implementations must serialize Append calls per key: the guard of a later
// append observes the entry committed by an earlier one. History and Latest
// are snapshot reads and never block appenders.
type Log interface {
	// Append runs guard over the key's committed history and, when it
	// passes, commits a new entry for account with the next sequence number.
	Append(ctx context.Context, key id.ProductID, account id.AccountID, guard Guard) (Entry, error)

	// History returns the key's entries in append order. A key with no
	// entries yields an empty slice, not an error.
	History(ctx context.Context, key id.ProductID) ([]Entry, error)

	// Latest returns the most recent entry for the key, or
	// sentinel.ErrNotFound when the key has no entries.
	Latest(ctx context.Context, key id.ProductID) (Entry, error)
}
