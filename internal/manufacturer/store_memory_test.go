package manufacturer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
)

func TestInMemoryStore_RegisterConflict(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	record := Record{
		Account:      id.MustAccountID("0x1111111111111111111111111111111111111111"),
		RegisteredBy: id.MustAccountID("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		RegisteredAt: time.Now(),
	}

	require.NoError(t, store.Register(ctx, record))
	assert.ErrorIs(t, store.Register(ctx, record), sentinel.ErrConflict)
}

func TestInMemoryStore_FindNotFound(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Find(context.Background(), id.MustAccountID("0x2222222222222222222222222222222222222222"))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
