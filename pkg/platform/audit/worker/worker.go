package worker

import (
	"context"
	"log"

	audit "prodauth/pkg/platform/audit"
)

// Worker drains audit events from a channel into a sink, keeping mutation
// latency independent of the sink (Kafka, postgres). Events that fail to
// deliver are logged and dropped; the trail is best-effort by this path,
// while the domain registries remain the source of truth.
type Worker struct {
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *log.Logger
}

func New(sink audit.Sink, inbox <-chan audit.Event, logger *log.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run consumes until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				if w.logger != nil {
					w.logger.Printf("audit delivery failed for %s: %v", event.Action, err)
				}
			}
		}
	}
}

// ChannelSink adapts a channel to the Sink interface so the publisher can feed
// the worker without blocking mutations on slow delivery.
type ChannelSink struct {
	Events chan<- audit.Event
}

func (c *ChannelSink) Append(ctx context.Context, event audit.Event) error {
	select {
	case c.Events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
