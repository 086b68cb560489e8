package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstore/storefront/internal/apperr"
)

var allStatuses = []Status{
	StatusPending, StatusProcessing, StatusConfirmed, StatusShipped,
	StatusDelivered, StatusCancelled, StatusRefunded,
}

func TestCanTransition_EdgeSet(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusProcessing}:   true,
		{StatusPending, StatusCancelled}:    true,
		{StatusProcessing, StatusConfirmed}: true,
		{StatusProcessing, StatusCancelled}: true,
		{StatusConfirmed, StatusShipped}:    true,
		{StatusShipped, StatusDelivered}:    true,
		{StatusDelivered, StatusRefunded}:   true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition_PendingToShippedRejected(t *testing.T) {
	cur := Lifecycle{Status: StatusPending}
	next, err := Transition(cur, StatusShipped, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	var te *apperr.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "pending", te.From)
	assert.Equal(t, "shipped", te.To)
	assert.Equal(t, cur, next)
	assert.Nil(t, next.ShippedAt)
}

func TestTransition_HappyPathStampsEachOnce(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l := Lifecycle{Status: StatusPending}

	steps := []Status{StatusProcessing, StatusConfirmed, StatusShipped, StatusDelivered}
	for i, to := range steps {
		var err error
		l, err = Transition(l, to, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err, "-> %s", to)
		assert.Equal(t, to, l.Status)
	}

	require.NotNil(t, l.ProcessedAt)
	require.NotNil(t, l.ShippedAt)
	require.NotNil(t, l.DeliveredAt)
	assert.Equal(t, base, *l.ProcessedAt)
	assert.Equal(t, base.Add(2*time.Hour), *l.ShippedAt)
	assert.Equal(t, base.Add(3*time.Hour), *l.DeliveredAt)
}

func TestTransition_ConfirmedDoesNotTouchStamps(t *testing.T) {
	processed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := Lifecycle{Status: StatusProcessing, ProcessedAt: &processed}

	next, err := Transition(l, StatusConfirmed, processed.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, &processed, next.ProcessedAt)
	assert.Nil(t, next.ShippedAt)
	assert.Nil(t, next.DeliveredAt)
}

func TestTransition_TimestampsNeverGoBackwards(t *testing.T) {
	processed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l := Lifecycle{Status: StatusConfirmed, ProcessedAt: &processed}

	// clock skew: "now" is before processed_at
	next, err := Transition(l, StatusShipped, processed.Add(-time.Hour))
	require.NoError(t, err)
	require.NotNil(t, next.ShippedAt)
	assert.False(t, next.ShippedAt.Before(*next.ProcessedAt))
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	l := Lifecycle{Status: StatusPending}
	_, err := Transition(l, StatusProcessing, time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, l.Status)
	assert.Nil(t, l.ProcessedAt)
}

func TestTransition_Cancel(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusProcessing} {
		next, err := Transition(Lifecycle{Status: from}, StatusCancelled, time.Now())
		require.NoError(t, err, "from %s", from)
		assert.Equal(t, StatusCancelled, next.Status)
	}
	for _, from := range []Status{StatusConfirmed, StatusShipped, StatusDelivered, StatusRefunded, StatusCancelled} {
		_, err := Transition(Lifecycle{Status: from}, StatusCancelled, time.Now())
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "from %s", from)
	}
}

func TestTransition_RefundOnlyFromDelivered(t *testing.T) {
	next, err := Transition(Lifecycle{Status: StatusDelivered}, StatusRefunded, time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, next.Status)

	for _, from := range []Status{StatusPending, StatusProcessing, StatusConfirmed, StatusShipped} {
		_, err := Transition(Lifecycle{Status: from}, StatusRefunded, time.Now())
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "from %s", from)
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	_, err := Transition(Lifecycle{Status: StatusPending}, Status("wtf"), time.Now())
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
	assert.False(t, Status("bogus").IsTerminal())

	s, err := ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("canceled")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
