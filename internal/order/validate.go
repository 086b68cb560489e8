package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/evstore/storefront/internal/apperr"
	"github.com/evstore/storefront/internal/cart"
)

// MaxAmount is the largest money value a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so errors match request fields
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(prefix string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Invalid(prefix+"."+fe.Field(), reason(fe))
	}
	return apperr.Invalid(prefix, err.Error())
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "number":
		return "must contain digits only"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// ValidateCheckout checks the billing, shipping and payment data of a checkout.
func ValidateCheckout(b BillingInfo, s ShippingInfo, p PaymentInfo) error {
	if err := validateStruct("billing", b); err != nil {
		return err
	}
	if err := validateStruct("shipping", s); err != nil {
		return err
	}
	return validateStruct("payment", p)
}

// NewOrderItem snapshots v into an order line. The unit price is rounded to
// cents and TotalPrice is UnitPrice * quantity.
func NewOrderItem(orderID uuid.UUID, v VehicleSnapshot, quantity int) (OrderItem, error) {
	switch {
	case quantity < 1:
		return OrderItem{}, apperr.Invalid("quantity", "must be >= 1")
	case quantity > cart.MaxQuantity:
		return OrderItem{}, apperr.Invalid("quantity", fmt.Sprintf("must be <= %d", cart.MaxQuantity))
	case v.Price.IsNegative():
		return OrderItem{}, apperr.Invalid("unit_price", "must be >= 0")
	case strings.TrimSpace(v.Brand) == "":
		return OrderItem{}, apperr.Invalid("vehicle_brand", "is required")
	case strings.TrimSpace(v.Model) == "":
		return OrderItem{}, apperr.Invalid("vehicle_model", "is required")
	}
	unit := v.Price.Round(2)
	it := OrderItem{
		ID:           uuid.New(),
		OrderID:      orderID,
		VehicleID:    v.ID,
		Quantity:     quantity,
		UnitPrice:    unit,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(quantity))),
		VehicleBrand: v.Brand,
		VehicleModel: v.Model,
		VehicleYear:  v.Year,
	}
	if it.TotalPrice.GreaterThan(MaxAmount) {
		return OrderItem{}, apperr.Invalid("total_price", "exceeds "+MaxAmount.StringFixed(2))
	}
	return it, nil
}

// Validate checks the line invariants.
func (it OrderItem) Validate() error {
	switch {
	case it.Quantity < 1:
		return apperr.Invalid("quantity", "must be >= 1")
	case it.UnitPrice.IsNegative():
		return apperr.Invalid("unit_price", "must be >= 0")
	case !it.TotalPrice.Equal(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))):
		return apperr.Invalid("total_price", "must equal unit_price * quantity")
	}
	return nil
}

// Validate checks the aggregate invariants: at least one item, item totals
// summing to Subtotal, and TotalAmount == Subtotal + TaxAmount.
func (o *PurchaseOrder) Validate() error {
	if len(o.Items) == 0 {
		return apperr.Invalid("items", "must not be empty")
	}
	sum := decimal.Zero
	for _, it := range o.Items {
		if it.OrderID != o.ID {
			return apperr.Invalid("items", "belong to another order")
		}
		if err := it.Validate(); err != nil {
			return err
		}
		sum = sum.Add(it.TotalPrice)
	}
	switch {
	case strings.TrimSpace(o.OrderNumber) == "":
		return apperr.Invalid("order_number", "is required")
	case !o.Status.Valid():
		return apperr.Invalid("status", "is unknown")
	case o.Subtotal.IsNegative(), o.TaxAmount.IsNegative(), o.TotalAmount.IsNegative():
		return apperr.Invalid("amounts", "must be >= 0")
	case o.TotalAmount.GreaterThan(MaxAmount):
		return apperr.Invalid("total_amount", "exceeds "+MaxAmount.StringFixed(2))
	case !sum.Equal(o.Subtotal):
		return apperr.Invalid("subtotal", "must equal the sum of item totals")
	case !o.Subtotal.Add(o.TaxAmount).Equal(o.TotalAmount):
		return apperr.Invalid("total_amount", "must equal subtotal + tax_amount")
	}
	return ValidateCheckout(o.Billing, o.Shipping, PaymentInfo{CardType: o.CardType, CardLastFour: o.CardLastFour})
}
