package audit

import (
	"time"

	id "prodauth/pkg/domain"
)

// Action labels what happened. One action per successful mutation in the core.
type Action string

const (
	ActionManufacturerRegistered Action = "manufacturer_registered"
	ActionProductRegistered      Action = "product_registered"
	ActionCustodyTracked         Action = "custody_tracked"
	ActionOwnershipTransferred   Action = "ownership_transferred"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Timestamp time.Time
	Action    Action
	Product   id.ProductID // empty for manufacturer registration
	Actor     id.AccountID // the authenticated caller
	Subject   id.AccountID // the account acted on (manufacturer, distributor, new owner)
	RequestID string
}
