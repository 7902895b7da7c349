package manufacturer

import (
	"time"

	id "prodauth/pkg/domain"
)

// Record marks an account as a registered manufacturer. There is no
// un-registration; once present the account may create product records.
type Record struct {
	Account      id.AccountID
	RegisteredBy id.AccountID
	RegisteredAt time.Time
}
