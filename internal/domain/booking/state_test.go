package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)

			err := ValidateTransition(from, to)
			if want {
				assert.NoError(t, err)
				continue
			}
			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, from, te.From)
			assert.Equal(t, to, te.To)
			assert.True(t, errors.Is(err, ErrInvalidStatusTransition))
			assert.Contains(t, err.Error(), string(from))
			assert.Contains(t, err.Error(), string(to))
		}
	}
}

func TestApplyStatusStampsOnce(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{Status: StatusPending}

	require.NoError(t, b.ApplyStatus(StatusConfirmed, "", now))
	assert.Nil(t, b.CompletedAt)
	require.NoError(t, b.ApplyStatus(StatusCompleted, "", now))
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, now, *b.CompletedAt)

	err := b.ApplyStatus(StatusCancelled, "late", now)
	assert.True(t, errors.Is(err, ErrInvalidStatusTransition))
	assert.Equal(t, StatusCompleted, b.Status)

	earlier := now.Add(-time.Hour)
	c := &Booking{Status: StatusPending, CancelledAt: &earlier}
	require.NoError(t, c.ApplyStatus(StatusCancelled, "customer asked", now))
	assert.Equal(t, earlier, *c.CancelledAt)
	assert.Equal(t, "customer asked", c.CancelReason)
}

func TestCancellableByCustomer(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, CancellableByCustomer(now.Add(24*time.Hour), now, 24*time.Hour))
	assert.NoError(t, CancellableByCustomer(now.Add(48*time.Hour), now, 24*time.Hour))
	assert.True(t, errors.Is(CancellableByCustomer(now.Add(23*time.Hour), now, 24*time.Hour), ErrTooLateToCancel))
	assert.True(t, errors.Is(CancellableByCustomer(now.Add(-time.Hour), now, 24*time.Hour), ErrTooLateToCancel))
}

func TestSlotHoldFollowsStatus(t *testing.T) {
	b := &Booking{Status: StatusPending}
	require.NoError(t, b.BeforeSave(nil))
	require.NotNil(t, b.SlotHold)
	assert.Equal(t, 1, *b.SlotHold)

	b.Status = StatusCancelled
	require.NoError(t, b.BeforeSave(nil))
	assert.Nil(t, b.SlotHold)
}
