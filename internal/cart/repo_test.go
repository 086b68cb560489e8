package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/db/dbtest"
)

func TestPGRepo_ConcurrentAddsMergeIntoOneRow(t *testing.T) {
	repo := NewPGRepo(dbtest.NewTestPool(t))
	ctx := context.Background()

	c, err := repo.ForUser(ctx, uuid.New())
	require.NoError(t, err)
	vehicle := uuid.New()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddItem(ctx, c.ID, vehicle, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, workers, got.Items[0].Quantity)
}

func TestPGRepo_Lifecycle(t *testing.T) {
	repo := NewPGRepo(dbtest.NewTestPool(t))
	ctx := context.Background()
	user := uuid.New()

	c, err := repo.ForUser(ctx, user)
	require.NoError(t, err)
	again, err := repo.ForUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID, "one cart per user")

	it, err := repo.AddItem(ctx, c.ID, uuid.New(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Quantity)

	it, err = repo.UpdateQuantity(ctx, it.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, it.Quantity)

	_, err = repo.UpdateQuantity(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	cartID, err := repo.RemoveItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, cartID)
	cartID, err = repo.RemoveItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, cartID)

	_, err = repo.AddItem(ctx, c.ID, uuid.New(), 1)
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx, c.ID))
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	_, err = repo.AddItem(ctx, uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPGRepo_QuantityOutOfRangeIsValidation(t *testing.T) {
	repo := NewPGRepo(dbtest.NewTestPool(t))
	ctx := context.Background()

	c, err := repo.ForUser(ctx, uuid.New())
	require.NoError(t, err)
	vehicle := uuid.New()

	it, err := repo.AddItem(ctx, c.ID, vehicle, MaxQuantity-1)
	require.NoError(t, err)

	_, err = repo.AddItem(ctx, c.ID, vehicle, 2)
	assert.ErrorIs(t, err, apperr.ErrValidation, "increment past the cap")
	assert.NotErrorIs(t, err, apperr.ErrStorage)

	_, err = repo.UpdateQuantity(ctx, it.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation, "check constraint")

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, MaxQuantity-1, got.Items[0].Quantity)
}
