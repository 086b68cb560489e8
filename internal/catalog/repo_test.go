package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/db/dbtest"
)

func TestVehicleValidate(t *testing.T) {
	ok := Vehicle{Brand: "Volta", Model: "E", Year: 2024, Price: decimal.RequireFromString("45000.00")}
	require.NoError(t, ok.Validate())

	bad := []Vehicle{
		{Model: "E", Year: 2024},
		{Brand: "Volta", Year: 2024},
		{Brand: "Volta", Model: "E", Year: 1800},
		{Brand: "Volta", Model: "E", Year: 2024, Price: decimal.NewFromInt(-1)},
		{Brand: "Volta", Model: "E", Year: 2024, RangeKm: -5},
	}
	for _, v := range bad {
		assert.ErrorIs(t, v.Validate(), apperr.ErrValidation, "%+v", v)
	}
}

func TestPGRepo_CRUD(t *testing.T) {
	repo := NewPGRepo(dbtest.NewTestPool(t))
	ctx := context.Background()

	v := &Vehicle{Brand: "Volta", Model: "Model E", Year: 2024, Price: decimal.RequireFromString("45000.00"), RangeKm: 480}
	require.NoError(t, repo.Create(ctx, v))
	require.NotEqual(t, uuid.Nil, v.ID)

	require.NoError(t, repo.AddImage(ctx, &Image{VehicleID: v.ID, URL: "https://cdn/2.jpg", Position: 2}))
	require.NoError(t, repo.AddImage(ctx, &Image{VehicleID: v.ID, URL: "https://cdn/1.jpg", Position: 1}))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Volta", got.Brand)
	assert.True(t, v.Price.Equal(got.Price))
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://cdn/1.jpg", got.Images[0].URL)

	got.Price = decimal.RequireFromString("43999.99")
	require.NoError(t, repo.Update(ctx, got, true))
	again, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "43999.99", again.Price.StringFixed(2))

	list, err := repo.List(ctx, Query{Q: "volta"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := repo.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	err = repo.AddImage(ctx, &Image{VehicleID: v.ID, URL: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
