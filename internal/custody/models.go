package custody

import (
	"time"

	id "prodauth/pkg/domain"
)

// Event records a hand-off of a product to a distributor. Events are
// append-only and ordered by Seq; nothing ever rewrites or removes one.
type Event struct {
	ProductID   id.ProductID
	Distributor id.AccountID
	Seq         uint64
	RecordedAt  time.Time
}
