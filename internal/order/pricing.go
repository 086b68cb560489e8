package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxPolicy computes the tax owed on a subtotal, already rounded to cents.
type TaxPolicy interface {
	Tax(subtotal decimal.Decimal) decimal.Decimal
}

// FlatRate taxes every subtotal at Rate (0.08 == 8%), rounded half away from
// zero to cents.
type FlatRate struct {
	Rate decimal.Decimal
}

func (f FlatRate) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(f.Rate).Round(2)
}

// NewOrderNumber returns a human-readable order number such as
// EV-20260314-9F86D081. Uniqueness is enforced by the database.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("EV-%s-%s", now.UTC().Format("20060102"), suffix)
}
