package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/evstore/storefront/internal/apperr"
)

// Vehicle is a catalog entry. Cart items reference it by id only; order items
// copy Brand, Model, Year and Price at checkout.
type Vehicle struct {
	ID          uuid.UUID       `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	Price       decimal.Decimal `json:"price"` // NUMERIC(12,2), serialized as a string
	RangeKm     int             `json:"range_km"`
	Description string          `json:"description,omitempty"`
	Images      []Image         `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Image struct {
	ID        uuid.UUID `json:"id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields a vehicle must carry before it is stored.
func (v *Vehicle) Validate() error {
	switch {
	case strings.TrimSpace(v.Brand) == "":
		return apperr.Invalid("brand", "is required")
	case strings.TrimSpace(v.Model) == "":
		return apperr.Invalid("model", "is required")
	case v.Year < 1900:
		return apperr.Invalid("year", "must be >= 1900")
	case v.Price.IsNegative():
		return apperr.Invalid("price", "must be >= 0")
	case v.RangeKm < 0:
		return apperr.Invalid("range_km", "must be >= 0")
	}
	return nil
}

// ListResponse represents the paginated response of vehicles.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	Items  []Vehicle `json:"items"`
}

// CreateVehicleRequest payload of creation.
// swagger:model CreateVehicleRequest
type CreateVehicleRequest struct {
	Brand       string `json:"brand"       example:"Volta"`
	Model       string `json:"model"       example:"Model E"`
	Year        int    `json:"year"        example:"2024"`
	Price       string `json:"price"       example:"45000.00"`
	RangeKm     int    `json:"range_km"    example:"480"`
	Description string `json:"description" example:"Long range AWD"`
}

// UpdateVehicleRequest payload of partial update. Empty fields keep their value.
// swagger:model UpdateVehicleRequest
type UpdateVehicleRequest struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Price       string `json:"price"`
	RangeKm     *int   `json:"range_km"`
	Description string `json:"description"`
}

// AddImageRequest attaches an image to a vehicle.
// swagger:model AddImageRequest
type AddImageRequest struct {
	URL      string `json:"url"      example:"https://cdn.example.com/volta-e.jpg"`
	AltText  string `json:"alt_text" example:"Volta Model E, front"`
	Position int    `json:"position" example:"0"`
}
