package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	id "prodauth/pkg/domain"
	audit "prodauth/pkg/platform/audit"
	auditmemory "prodauth/pkg/platform/audit/store/memory"
	"prodauth/pkg/requestcontext"
)

func TestEmitStampsEvent(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), fixed), "req-42")

	store := auditmemory.New()
	publisher := audit.NewPublisher(store)

	err := publisher.Emit(ctx, audit.Event{
		Action:  audit.ActionProductRegistered,
		Product: id.MustProductID("P1"),
		Actor:   id.MustAccountID("0x1111111111111111111111111111111111111111"),
	})
	require.NoError(t, err)

	events := store.All()
	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].ID)
	require.Equal(t, fixed, events[0].Timestamp)
	require.Equal(t, "req-42", events[0].RequestID)
}

func TestEmitKeepsCallerStamps(t *testing.T) {
	store := auditmemory.New()
	publisher := audit.NewPublisher(store)

	stamped := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := publisher.Emit(context.Background(), audit.Event{
		ID:        "evt-1",
		Timestamp: stamped,
		Action:    audit.ActionManufacturerRegistered,
	})
	require.NoError(t, err)

	events := store.All()
	require.Len(t, events, 1)
	require.Equal(t, "evt-1", events[0].ID)
	require.Equal(t, stamped, events[0].Timestamp)
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var publisher *audit.Publisher
	require.NoError(t, publisher.Emit(context.Background(), audit.Event{Action: audit.ActionCustodyTracked}))
}

func TestListByProduct(t *testing.T) {
	ctx := context.Background()
	store := auditmemory.New()
	publisher := audit.NewPublisher(store)

	widget := id.MustProductID("P1")
	other := id.MustProductID("P2")
	require.NoError(t, publisher.Emit(ctx, audit.Event{Action: audit.ActionProductRegistered, Product: widget}))
	require.NoError(t, publisher.Emit(ctx, audit.Event{Action: audit.ActionProductRegistered, Product: other}))
	require.NoError(t, publisher.Emit(ctx, audit.Event{Action: audit.ActionOwnershipTransferred, Product: widget}))

	events, err := store.ListByProduct(ctx, widget)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, audit.ActionProductRegistered, events[0].Action)
	require.Equal(t, audit.ActionOwnershipTransferred, events[1].Action)
}
