package core_test

import (
	"context"
	"testing"

	"storefront-seeder/internal/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_DeleteGeneratedDataMatchesDomainLiterally(t *testing.T) {
	ctx := context.Background()
	store := core.NewMemoryStore(nil, nil)
	run := uuid.New()
	gen := core.Customer{ID: uuid.New(), Email: "a@Gen.Example.test", RunID: &run}
	lookalike := core.Customer{ID: uuid.New(), Email: "b@genXexample.test"}
	store.AddCustomers(gen, lookalike)
	require.NoError(t, store.InsertOrders(ctx, []core.Order{{UserID: gen.ID}, {UserID: lookalike.ID}}))

	res, err := store.DeleteGeneratedData(ctx, "gen_example.test", nil)
	require.NoError(t, err)
	assert.Equal(t, core.PurgeResult{}, res)

	other := uuid.New()
	res, err = store.DeleteGeneratedData(ctx, "gen.example.test", &other)
	require.NoError(t, err)
	assert.Equal(t, core.PurgeResult{}, res)

	res, err = store.DeleteGeneratedData(ctx, "gen.example.test", &run)
	require.NoError(t, err)
	assert.Equal(t, core.PurgeResult{OrdersDeleted: 1, CustomersDeleted: 1}, res)

	require.Len(t, store.Customers(), 1)
	assert.Equal(t, lookalike.ID, store.Customers()[0].ID)
	assert.Len(t, store.Orders(), 1)
}
