//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	id "prodauth/pkg/domain"
	audit "prodauth/pkg/platform/audit"
	"prodauth/pkg/platform/audit/store/postgres"
	"prodauth/pkg/testutil/containers"
)

func TestStoreAppendAndListByProduct(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t, "../../../../../migrations")
	store := postgres.New(pg.DB)

	widget := id.MustProductID("P1")
	actor := id.MustAccountID("0x1111111111111111111111111111111111111111")
	subject := id.MustAccountID("0x2222222222222222222222222222222222222222")
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	events := []audit.Event{
		{
			ID:        uuid.NewString(),
			Timestamp: base,
			Action:    audit.ActionProductRegistered,
			Product:   widget,
			Actor:     actor,
			RequestID: "req-1",
		},
		{
			ID:        uuid.NewString(),
			Timestamp: base.Add(time.Minute),
			Action:    audit.ActionOwnershipTransferred,
			Product:   widget,
			Actor:     actor,
			Subject:   subject,
			RequestID: "req-2",
		},
		{
			ID:        uuid.NewString(),
			Timestamp: base,
			Action:    audit.ActionProductRegistered,
			Product:   id.MustProductID("P2"),
			Actor:     actor,
		},
	}
	for _, event := range events {
		require.NoError(t, store.Append(ctx, event))
	}

	listed, err := store.ListByProduct(ctx, widget)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	require.Equal(t, audit.ActionProductRegistered, listed[0].Action)
	require.Equal(t, "req-1", listed[0].RequestID)
	require.Equal(t, audit.ActionOwnershipTransferred, listed[1].Action)
	require.Equal(t, subject, listed[1].Subject)
	require.True(t, base.Add(time.Minute).Equal(listed[1].Timestamp))
}

func TestListByProductEmpty(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t, "../../../../../migrations")
	store := postgres.New(pg.DB)

	listed, err := store.ListByProduct(ctx, id.MustProductID("missing"))
	require.NoError(t, err)
	require.Empty(t, listed)
}
