package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFlatRate(t *testing.T) {
	rate := FlatRate{Rate: decimal.RequireFromString("0.08")}

	assert.Equal(t, "8400.00", rate.Tax(decimal.RequireFromString("105000.00")).StringFixed(2))
	// 0.08 * 10.06 = 0.8048
	assert.Equal(t, "0.80", rate.Tax(decimal.RequireFromString("10.06")).StringFixed(2))
	// 0.08 * 0.0625 rounds half up at the cent
	assert.Equal(t, "0.01", rate.Tax(decimal.RequireFromString("0.0625")).StringFixed(2))
	assert.True(t, FlatRate{}.Tax(decimal.NewFromInt(500)).IsZero())
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("X", -5*3600))
	n := NewOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^EV-20260315-[0-9A-F]{8}$`), n)
	assert.NotEqual(t, n, NewOrderNumber(now))
}
