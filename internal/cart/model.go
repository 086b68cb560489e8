package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evstore/storefront/internal/apperr"
)

// DefaultQuantity is used when an add request does not name a quantity.
const DefaultQuantity = 1

// Cart is the single shopping cart of a user. It survives checkout; only its
// items are removed.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a quantity of one vehicle held in a cart. It carries no price:
// prices are resolved from the catalog at checkout.
type Item struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxQuantity caps the quantity of one vehicle in a cart, including the sum
// reached by repeated adds.
const MaxQuantity = 1000

// ValidateQuantity rejects quantities outside 1..MaxQuantity.
func ValidateQuantity(q int) error {
	switch {
	case q < 1:
		return apperr.Invalid("quantity", "must be >= 1")
	case q > MaxQuantity:
		return apperr.Invalid("quantity", fmt.Sprintf("must be <= %d", MaxQuantity))
	}
	return nil
}

// AddItemRequest payload for adding a vehicle to a cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	VehicleID string `json:"vehicle_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	// defaults to 1 when omitted
	Quantity *int `json:"quantity" example:"1"`
}

// UpdateQuantityRequest payload for setting an item quantity.
// swagger:model UpdateQuantityRequest
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" example:"2"`
}
