// Package catalog provides the vehicle catalog: its model and the PostgreSQL
// repository behind the catalog service.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evstore/storefront/internal/apperr"
)

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	List(ctx context.Context, q Query) ([]Vehicle, error)
	Update(ctx context.Context, v *Vehicle, updatePrice bool) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, vehicleID uuid.UUID) ([]Image, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const vehicleColumns = `id, brand, model, year, price::text, range_km, description, created_at, updated_at`

func scanVehicle(row pgx.Row, v *Vehicle) error {
	return row.Scan(&v.ID, &v.Brand, &v.Model, &v.Year, &v.Price, &v.RangeKm, &v.Description, &v.CreatedAt, &v.UpdatedAt)
}

func (r *PGRepo) Create(ctx context.Context, v *Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO vehicles (id, brand, model, year, price, range_km, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, v.ID, v.Brand, v.Model, v.Year, v.Price.StringFixed(2), v.RangeKm, v.Description).Scan(&v.CreatedAt, &v.UpdatedAt)
	return apperr.Storage("insert vehicle", err)
}

func (r *PGRepo) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v Vehicle
	err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id), &v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("vehicle", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get vehicle", err)
	}
	images, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Images = images
	return &v, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE ($1 = '' OR brand ILIKE '%'||$1||'%' OR model ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, apperr.Storage("list vehicles", err)
	}
	defer rows.Close()

	out := []Vehicle{}
	for rows.Next() {
		var v Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, apperr.Storage("scan vehicle", err)
		}
		out = append(out, v)
	}
	return out, apperr.Storage("list vehicles", rows.Err())
}

func (r *PGRepo) Update(ctx context.Context, v *Vehicle, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var price any
	if updatePrice {
		price = v.Price.StringFixed(2)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET brand = COALESCE(NULLIF($2,''), brand),
		    model = COALESCE(NULLIF($3,''), model),
		    year = CASE WHEN $4 > 0 THEN $4 ELSE year END,
		    price = COALESCE($5::numeric, price),
		    range_km = $6,
		    description = COALESCE(NULLIF($7,''), description),
		    updated_at = NOW()
		WHERE id = $1
	`, v.ID, v.Brand, v.Model, v.Year, price, v.RangeKm, v.Description)
	if err != nil {
		return apperr.Storage("update vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("vehicle", v.ID.String())
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return false, apperr.Storage("delete vehicle", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) AddImage(ctx context.Context, img *Image) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	tag, err := r.db.Exec(ctx, `
		INSERT INTO vehicle_images (id, vehicle_id, url, alt_text, position, created_at)
		SELECT $1,$2,$3,$4,$5,NOW()
		WHERE EXISTS (SELECT 1 FROM vehicles WHERE id=$2)
	`, img.ID, img.VehicleID, img.URL, img.AltText, img.Position)
	if err != nil {
		return apperr.Storage("insert vehicle image", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("vehicle", img.VehicleID.String())
	}
	return nil
}

func (r *PGRepo) ListImages(ctx context.Context, vehicleID uuid.UUID) ([]Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, vehicle_id, url, alt_text, position, created_at
		FROM vehicle_images WHERE vehicle_id=$1
		ORDER BY position, created_at
	`, vehicleID)
	if err != nil {
		return nil, apperr.Storage("list vehicle images", err)
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.VehicleID, &img.URL, &img.AltText, &img.Position, &img.CreatedAt); err != nil {
			return nil, apperr.Storage("scan vehicle image", err)
		}
		out = append(out, img)
	}
	return out, apperr.Storage("list vehicle images", rows.Err())
}
