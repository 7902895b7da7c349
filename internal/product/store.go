package product

import (
	"context"

	id "prodauth/pkg/domain"
)

// Store persists product records. Records are write-once: Create returns
// sentinel.ErrConflict when the product id is already taken, and nothing ever
// mutates or removes a committed record. Find returns sentinel.ErrNotFound
// for unknown ids.
type Store interface {
	Create(ctx context.Context, record Record) error
	Find(ctx context.Context, productID id.ProductID) (Record, error)
	Exists(ctx context.Context, productID id.ProductID) (bool, error)
}
