package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/db"
)

type Repository interface {
	// ForUser returns the cart of userID, creating it on first use.
	ForUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Get(ctx context.Context, cartID uuid.UUID) (*Cart, error)
	// AddItem increments the quantity of (cartID, vehicleID) or creates the item.
	AddItem(ctx context.Context, cartID, vehicleID uuid.UUID, quantity int) (*Item, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error)
	// RemoveItem deletes the item and returns its cart id, or uuid.Nil when
	// the item did not exist.
	RemoveItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error)
	Clear(ctx context.Context, cartID uuid.UUID) error
}

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so item
// reads and clears can run inside a caller's transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const foreignKeyViolation = "23503"

func (r *PGRepo) ForUser(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.db.Exec(ctx, `
		INSERT INTO shopping_carts (id, user_id, created_at, updated_at)
		VALUES ($1,$2,NOW(),NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID); err != nil {
		return nil, apperr.Storage("create cart", err)
	}

	var c Cart
	if err := r.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at FROM shopping_carts WHERE user_id=$1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, apperr.Storage("get cart", err)
	}
	items, err := ListItems(ctx, r.db, c.ID, false)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *PGRepo) Get(ctx context.Context, cartID uuid.UUID) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at FROM shopping_carts WHERE id=$1
	`, cartID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("cart", cartID.String())
	}
	if err != nil {
		return nil, apperr.Storage("get cart", err)
	}
	items, err := ListItems(ctx, r.db, c.ID, false)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *PGRepo) AddItem(ctx context.Context, cartID, vehicleID uuid.UUID, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperr.Storage("begin add item", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// the unique (cart_id, vehicle_id) constraint serializes concurrent adds;
	// an increment past MaxQuantity updates nothing and returns no row
	var it Item
	err = tx.QueryRow(ctx, `
		INSERT INTO cart_items (id, cart_id, vehicle_id, quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		ON CONFLICT (cart_id, vehicle_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		WHERE cart_items.quantity + EXCLUDED.quantity <= $5
		RETURNING id, cart_id, vehicle_id, quantity, created_at, updated_at
	`, uuid.New(), cartID, vehicleID, quantity, MaxQuantity).Scan(&it.ID, &it.CartID, &it.VehicleID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperr.Invalid("quantity", fmt.Sprintf("total for one vehicle must be <= %d", MaxQuantity))
		case errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation:
			return nil, apperr.NotFound("cart", cartID.String())
		case db.InvalidInput(err):
			return nil, apperr.Invalid("quantity", "is out of range")
		}
		return nil, apperr.Storage("add item", err)
	}
	if err := touchCart(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Storage("commit add item", err)
	}
	return &it, nil
}

func (r *PGRepo) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		UPDATE cart_items SET quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, cart_id, vehicle_id, quantity, created_at, updated_at
	`, itemID, quantity).Scan(&it.ID, &it.CartID, &it.VehicleID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("cart item", itemID.String())
	}
	if db.InvalidInput(err) {
		return nil, apperr.Invalid("quantity", "is out of range")
	}
	if err != nil {
		return nil, apperr.Storage("update item quantity", err)
	}
	return &it, nil
}

func (r *PGRepo) RemoveItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cartID uuid.UUID
	err := r.db.QueryRow(ctx, `DELETE FROM cart_items WHERE id=$1 RETURNING cart_id`, itemID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, apperr.Storage("remove item", err)
	}
	return cartID, nil
}

func (r *PGRepo) Clear(ctx context.Context, cartID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return ClearItems(ctx, r.db, cartID)
}

// ListItems returns the items of a cart. With forUpdate the rows are locked
// until the surrounding transaction ends.
func ListItems(ctx context.Context, q Querier, cartID uuid.UUID, forUpdate bool) ([]Item, error) {
	sql := `
		SELECT id, cart_id, vehicle_id, quantity, created_at, updated_at
		FROM cart_items WHERE cart_id=$1
		ORDER BY created_at, id`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, sql, cartID)
	if err != nil {
		return nil, apperr.Storage("list cart items", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.VehicleID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, apperr.Storage("scan cart item", err)
		}
		items = append(items, it)
	}
	return items, apperr.Storage("list cart items", rows.Err())
}

// LockCart takes a row lock on cartID, which must belong to userID.
func LockCart(ctx context.Context, q Querier, cartID, userID uuid.UUID) error {
	var id uuid.UUID
	err := q.QueryRow(ctx, `
		SELECT id FROM shopping_carts WHERE id=$1 AND user_id=$2 FOR UPDATE
	`, cartID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("cart", cartID.String())
	}
	return apperr.Storage("lock cart", err)
}

// ClearItems deletes every item of a cart.
func ClearItems(ctx context.Context, q Querier, cartID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return apperr.Storage("clear cart", err)
	}
	return touchCart(ctx, q, cartID)
}

func touchCart(ctx context.Context, q Querier, cartID uuid.UUID) error {
	if _, err := q.Exec(ctx, `UPDATE shopping_carts SET updated_at = NOW() WHERE id=$1`, cartID); err != nil {
		return apperr.Storage("touch cart", err)
	}
	return nil
}
