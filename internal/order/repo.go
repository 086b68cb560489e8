package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/cart"
	"github.com/evstore/storefront/internal/db"
)

// BuildFunc turns the locked items of a cart into a new order. It runs inside
// the checkout transaction; returning an error rolls everything back.
type BuildFunc func(ctx context.Context, items []cart.Item) (*PurchaseOrder, error)

type Repository interface {
	// Checkout locks the cart, builds the order from its items, stores the
	// order with its items and clears the cart, all in one transaction.
	Checkout(ctx context.Context, userID, cartID uuid.UUID, build BuildFunc) (*PurchaseOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PurchaseOrder, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	// UpdateLifecycle writes next only if the order is still in status from.
	UpdateLifecycle(ctx context.Context, id uuid.UUID, from Status, next Lifecycle) error
	SetAdminNotes(ctx context.Context, id uuid.UUID, notes *string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `
	id, user_id, order_number, subtotal::text, tax_amount::text, total_amount::text, status,
	billing_first_name, billing_last_name, billing_email, billing_phone, billing_address,
	billing_city, billing_state, billing_zip_code, billing_country,
	shipping_first_name, shipping_last_name, shipping_phone, shipping_address,
	shipping_city, shipping_state, shipping_zip_code, shipping_country,
	card_type, card_last_four, admin_notes, processed_at, shipped_at, delivered_at,
	created_at, updated_at`

func scanOrder(row pgx.Row, o *PurchaseOrder) error {
	b, s := &o.Billing, &o.Shipping
	return row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.Status,
		&b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.Address,
		&b.City, &b.State, &b.ZipCode, &b.Country,
		&s.FirstName, &s.LastName, &s.Phone, &s.Address,
		&s.City, &s.State, &s.ZipCode, &s.Country,
		&o.CardType, &o.CardLastFour, &o.AdminNotes, &o.ProcessedAt, &o.ShippedAt, &o.DeliveredAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *PGRepo) Checkout(ctx context.Context, userID, cartID uuid.UUID, build BuildFunc) (*PurchaseOrder, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperr.Storage("begin checkout", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := cart.LockCart(ctx, tx, cartID, userID); err != nil {
		return nil, err
	}
	items, err := cart.ListItems(ctx, tx, cartID, true)
	if err != nil {
		return nil, err
	}
	o, err := build(ctx, items)
	if err != nil {
		return nil, err
	}
	if err := insertOrder(ctx, tx, o); err != nil {
		return nil, err
	}
	if err := cart.ClearItems(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Storage("commit checkout", err)
	}
	return o, nil
}

func insertOrder(ctx context.Context, tx pgx.Tx, o *PurchaseOrder) error {
	b, s := o.Billing, o.Shipping
	err := tx.QueryRow(ctx, `
		INSERT INTO purchase_orders (
			id, user_id, order_number, subtotal, tax_amount, total_amount, status,
			billing_first_name, billing_last_name, billing_email, billing_phone, billing_address,
			billing_city, billing_state, billing_zip_code, billing_country,
			shipping_first_name, shipping_last_name, shipping_phone, shipping_address,
			shipping_city, shipping_state, shipping_zip_code, shipping_country,
			card_type, card_last_four, admin_notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,
		        $17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,NOW(),NOW())
		RETURNING created_at, updated_at
	`,
		o.ID, o.UserID, o.OrderNumber, o.Subtotal.StringFixed(2), o.TaxAmount.StringFixed(2), o.TotalAmount.StringFixed(2), string(o.Status),
		b.FirstName, b.LastName, b.Email, b.Phone, b.Address,
		b.City, b.State, b.ZipCode, b.Country,
		s.FirstName, s.LastName, s.Phone, s.Address,
		s.City, s.State, s.ZipCode, s.Country,
		o.CardType, o.CardLastFour, o.AdminNotes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if constraint, ok := db.UniqueViolation(err); ok && constraint == "purchase_orders_order_number_key" {
			return &apperr.ConflictError{Field: "order_number", Value: o.OrderNumber}
		}
		if db.InvalidInput(err) {
			return apperr.Invalid("order", "amounts are out of range")
		}
		return apperr.Storage("insert order", err)
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, vehicle_id, quantity, unit_price, total_price,
			                         vehicle_brand, vehicle_model, vehicle_year)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, it.ID, o.ID, it.VehicleID, it.Quantity, it.UnitPrice.StringFixed(2), it.TotalPrice.StringFixed(2),
			it.VehicleBrand, it.VehicleModel, it.VehicleYear); err != nil {
			if db.InvalidInput(err) {
				return apperr.Invalid("items", "are out of range")
			}
			return apperr.Storage("insert order item", err)
		}
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id=$1`, id, id.String())
}

func (r *PGRepo) GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE order_number=$1`, number, number)
}

func (r *PGRepo) getOne(ctx context.Context, sql string, arg any, label string) (*PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o PurchaseOrder
	err := scanOrder(r.db.QueryRow(ctx, sql, arg), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order", label)
	}
	if err != nil {
		return nil, apperr.Storage("get order", err)
	}
	items, err := r.GetItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM purchase_orders WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, apperr.Storage("list orders", err)
	}
	defer rows.Close()

	out := []PurchaseOrder{}
	for rows.Next() {
		var o PurchaseOrder
		if err := scanOrder(rows, &o); err != nil {
			return nil, apperr.Storage("scan order", err)
		}
		out = append(out, o)
	}
	return out, apperr.Storage("list orders", rows.Err())
}

func (r *PGRepo) GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, vehicle_id, quantity, unit_price::text, total_price::text,
		       vehicle_brand, vehicle_model, vehicle_year
		FROM order_items
		WHERE order_id = $1
		ORDER BY vehicle_brand, vehicle_model, id
	`, orderID)
	if err != nil {
		return nil, apperr.Storage("list order items", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.VehicleID, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
			&it.VehicleBrand, &it.VehicleModel, &it.VehicleYear); err != nil {
			return nil, apperr.Storage("scan order item", err)
		}
		items = append(items, it)
	}
	return items, apperr.Storage("list order items", rows.Err())
}

func (r *PGRepo) UpdateLifecycle(ctx context.Context, id uuid.UUID, from Status, next Lifecycle) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE purchase_orders
		SET status = $3, processed_at = $4, shipped_at = $5, delivered_at = $6, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, string(from), string(next.Status), next.ProcessedAt, next.ShippedAt, next.DeliveredAt)
	if err != nil {
		return apperr.Storage("update order status", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// lost the race or the order is gone
	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM purchase_orders WHERE id=$1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("order", id.String())
	}
	if err != nil {
		return apperr.Storage("read order status", err)
	}
	return &apperr.TransitionError{From: current, To: string(next.Status)}
}

func (r *PGRepo) SetAdminNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE purchase_orders SET admin_notes = $2, updated_at = NOW() WHERE id = $1
	`, id, notes)
	if err != nil {
		return apperr.Storage("update admin notes", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("order", id.String())
	}
	return nil
}
