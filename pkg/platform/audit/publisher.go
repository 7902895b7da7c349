package audit

import (
	"context"

	"github.com/google/uuid"

	id "prodauth/pkg/domain"
	"prodauth/pkg/requestcontext"
)

// Sink accepts audit events for delivery. Stores, the channel worker, and the
// Kafka publisher all satisfy it.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a Sink that can also be read back, for the trail queries and tests.
type Store interface {
	Sink
	ListByProduct(ctx context.Context, productID id.ProductID) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and delegates
// persistence to the sink so tests can swap destinations easily.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit stamps the event with an ID, timestamp, and request correlation before
// handing it to the sink. A nil publisher is a no-op so services can treat
// auditing as optional wiring.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil || p.sink == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	return p.sink.Append(ctx, event)
}
