package ownership

import (
	"time"

	id "prodauth/pkg/domain"
)

// Event is one step in a product's ownership history. The current owner is
// always the owner of the event with the highest sequence number.
type Event struct {
	ProductID  id.ProductID
	Owner      id.AccountID
	Seq        uint64
	RecordedAt time.Time
}
