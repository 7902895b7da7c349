package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and ledger implementations
// return these (optionally wrapped) so services can translate them into domain
// errors with the right code.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: a create collided with an existing key
// - ErrGuardRejected: a guarded append was vetoed by its guard
// - ErrUnavailable: the backing substrate is unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrGuardRejected = errors.New("guard rejected")
	ErrUnavailable   = errors.New("unavailable")
)
