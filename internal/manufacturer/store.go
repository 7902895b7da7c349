package manufacturer

import (
	"context"

	id "prodauth/pkg/domain"
)

// Store persists the manufacturer allow-list. Implementations return
// sentinel.ErrConflict from Register when the account is already present and
// sentinel.ErrNotFound from Find when it is not; the service translates.
type Store interface {
	Register(ctx context.Context, record Record) error
	Find(ctx context.Context, account id.AccountID) (Record, error)
	IsRegistered(ctx context.Context, account id.AccountID) (bool, error)
}
