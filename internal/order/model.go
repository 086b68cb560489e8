package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is the aggregate root of a checkout: it owns its items and is
// persisted together with them.
type PurchaseOrder struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	OrderNumber  string          `json:"order_number"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       Status          `json:"status"`
	Billing      BillingInfo     `json:"billing"`
	Shipping     ShippingInfo    `json:"shipping"`
	CardType     string          `json:"card_type"`
	CardLastFour string          `json:"card_last_four"`
	AdminNotes   *string         `json:"admin_notes,omitempty"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
	ShippedAt    *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Items        []OrderItem     `json:"items,omitempty"`
}

// OrderItem is a purchased vehicle line. Brand, model, year and unit price are
// copied from the catalog at checkout and never change afterwards.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	VehicleID    uuid.UUID       `json:"vehicle_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	VehicleBrand string          `json:"vehicle_brand"`
	VehicleModel string          `json:"vehicle_model"`
	VehicleYear  int             `json:"vehicle_year"`
}

// BillingInfo is the payer's contact and address.
// swagger:model BillingInfo
type BillingInfo struct {
	FirstName string `json:"first_name" validate:"required,max=100" example:"Ada"`
	LastName  string `json:"last_name"  validate:"required,max=100" example:"Lovelace"`
	Email     string `json:"email"      validate:"required,email"   example:"ada@example.com"`
	Phone     string `json:"phone"      validate:"omitempty,max=32" example:"+1 555 0100"`
	Address   string `json:"address"    validate:"required,max=255" example:"12 Volt St"`
	City      string `json:"city"       validate:"required,max=100" example:"Austin"`
	State     string `json:"state"      validate:"omitempty,max=100" example:"TX"`
	ZipCode   string `json:"zip_code"   validate:"required,max=16"  example:"73301"`
	Country   string `json:"country"    validate:"required,max=100" example:"US"`
}

// ShippingInfo is the delivery address.
// swagger:model ShippingInfo
type ShippingInfo struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=32"`
	Address   string `json:"address"    validate:"required,max=255"`
	City      string `json:"city"       validate:"required,max=100"`
	State     string `json:"state"      validate:"omitempty,max=100"`
	ZipCode   string `json:"zip_code"   validate:"required,max=16"`
	Country   string `json:"country"    validate:"required,max=100"`
}

// PaymentInfo holds only non-sensitive card data. Full card numbers are never
// accepted or stored.
// swagger:model PaymentInfo
type PaymentInfo struct {
	CardType     string `json:"card_type"      validate:"required,max=32"    example:"visa"`
	CardLastFour string `json:"card_last_four" validate:"required,len=4,number" example:"4242"`
}

// VehicleSnapshot is the catalog data copied into an OrderItem.
type VehicleSnapshot struct {
	ID    uuid.UUID
	Brand string
	Model string
	Year  int
	Price decimal.Decimal
}

// Lifecycle is the part of an order that status transitions change.
type Lifecycle struct {
	Status      Status
	ProcessedAt *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

func (o *PurchaseOrder) Lifecycle() Lifecycle {
	return Lifecycle{
		Status:      o.Status,
		ProcessedAt: o.ProcessedAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
	}
}

func (o *PurchaseOrder) apply(l Lifecycle) {
	o.Status = l.Status
	o.ProcessedAt = l.ProcessedAt
	o.ShippedAt = l.ShippedAt
	o.DeliveredAt = l.DeliveredAt
}
