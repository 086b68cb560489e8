package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/cart"
	"github.com/evstore/storefront/internal/db/dbtest"
)

func TestPGRepo_Checkout(t *testing.T) {
	pool := dbtest.NewTestPool(t)
	ctx := context.Background()
	carts := cart.NewPGRepo(pool)
	repo := NewPGRepo(pool)

	user := uuid.New()
	c, err := carts.ForUser(ctx, user)
	require.NoError(t, err)

	a := VehicleSnapshot{ID: uuid.New(), Brand: "Volta", Model: "A", Year: 2025, Price: decimal.RequireFromString("30000.00")}
	b := VehicleSnapshot{ID: uuid.New(), Brand: "Volta", Model: "B", Year: 2026, Price: decimal.RequireFromString("45000.00")}
	_, err = carts.AddItem(ctx, c.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, c.ID, b.ID, 1)
	require.NoError(t, err)

	catalog := &stubCatalog{vehicles: map[uuid.UUID]VehicleSnapshot{a.ID: a, b.ID: b}}
	svc := NewService(repo, catalog, FlatRate{Rate: decimal.RequireFromString("0.08")}, nil)

	t.Run("price failure rolls back", func(t *testing.T) {
		catalog.err = errors.New("catalog down")
		defer func() { catalog.err = nil }()

		_, err := svc.CreateOrder(ctx, user, c.ID, validBilling(), validShipping(), validPayment())
		assert.ErrorIs(t, err, apperr.ErrStorage)

		got, err := carts.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)
		list, err := repo.ListByUser(ctx, user, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	o, err := svc.CreateOrder(ctx, user, c.ID, validBilling(), validShipping(), validPayment())
	require.NoError(t, err)
	assert.Equal(t, "113400.00", o.TotalAmount.StringFixed(2))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, got.OrderNumber)
	assert.Equal(t, "105000.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "8400.00", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "ada@example.com", got.Billing.Email)
	assert.Equal(t, "4242", got.CardLastFour)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "A", got.Items[0].VehicleModel)
	assert.Equal(t, "60000.00", got.Items[0].TotalPrice.StringFixed(2))

	byNum, err := repo.GetByNumber(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNum.ID)

	emptied, err := carts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Items)
	assert.Equal(t, c.ID, emptied.ID, "cart survives checkout")

	_, err = svc.CreateOrder(ctx, user, c.ID, validBilling(), validShipping(), validPayment())
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)

	_, err = svc.CreateOrder(ctx, uuid.New(), c.ID, validBilling(), validShipping(), validPayment())
	assert.ErrorIs(t, err, apperr.ErrNotFound, "cart of another user")
}

func TestPGRepo_DuplicateOrderNumber(t *testing.T) {
	pool := dbtest.NewTestPool(t)
	ctx := context.Background()
	carts := cart.NewPGRepo(pool)
	repo := NewPGRepo(pool)

	v := VehicleSnapshot{ID: uuid.New(), Brand: "Volta", Model: "A", Year: 2025, Price: decimal.NewFromInt(100)}
	svc := NewService(repo, &stubCatalog{vehicles: map[uuid.UUID]VehicleSnapshot{v.ID: v}}, FlatRate{}, nil)
	svc.NewNumber = func(time.Time) string { return "EV-20260314-SAMESAME" }

	checkout := func() (uuid.UUID, uuid.UUID, error) {
		user := uuid.New()
		c, err := carts.ForUser(ctx, user)
		require.NoError(t, err)
		_, err = carts.AddItem(ctx, c.ID, v.ID, 1)
		require.NoError(t, err)
		_, err = svc.CreateOrder(ctx, user, c.ID, validBilling(), validShipping(), validPayment())
		return user, c.ID, err
	}

	_, _, err := checkout()
	require.NoError(t, err)
	loser, loserCart, err := checkout()
	var ce *apperr.ConflictError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "order_number", ce.Field)

	// the losing checkout rolled back: its cart still holds the item and it owns no order
	got, err := carts.Get(ctx, loserCart)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, v.ID, got.Items[0].VehicleID)

	list, err := repo.ListByUser(ctx, loser, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	var orders, items int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM purchase_orders`).Scan(&orders))
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM order_items`).Scan(&items))
	assert.Equal(t, 1, orders)
	assert.Equal(t, 1, items)
}

func TestPGRepo_UpdateLifecycle(t *testing.T) {
	pool := dbtest.NewTestPool(t)
	ctx := context.Background()
	carts := cart.NewPGRepo(pool)
	repo := NewPGRepo(pool)

	v := VehicleSnapshot{ID: uuid.New(), Brand: "Volta", Model: "A", Year: 2025, Price: decimal.NewFromInt(100)}
	svc := NewService(repo, &stubCatalog{vehicles: map[uuid.UUID]VehicleSnapshot{v.ID: v}}, FlatRate{}, nil)

	user := uuid.New()
	c, err := carts.ForUser(ctx, user)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, c.ID, v.ID, 1)
	require.NoError(t, err)
	o, err := svc.CreateOrder(ctx, user, c.ID, validBilling(), validShipping(), validPayment())
	require.NoError(t, err)

	o, err = svc.UpdateStatus(ctx, o.ID, StatusProcessing)
	require.NoError(t, err)
	require.NotNil(t, o.ProcessedAt)

	// a writer that still believes the order is pending loses
	next, err := Transition(Lifecycle{Status: StatusPending}, StatusCancelled, time.Now())
	require.NoError(t, err)
	err = repo.UpdateLifecycle(ctx, o.ID, StatusPending, next)
	var te *apperr.TransitionError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "processing", te.From)

	err = repo.UpdateLifecycle(ctx, uuid.New(), StatusPending, next)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	stored, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, stored.Status)
	assert.NotNil(t, stored.ProcessedAt)

	notes := "call before delivery"
	require.NoError(t, repo.SetAdminNotes(ctx, o.ID, &notes))
	stored, err = repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AdminNotes)
	assert.Equal(t, notes, *stored.AdminNotes)
	assert.ErrorIs(t, repo.SetAdminNotes(ctx, uuid.New(), nil), apperr.ErrNotFound)
}
