package booking

import (
	"fmt"
	"time"
)

// Transitions lists the allowed next statuses; completed and cancelled are terminal.
var Transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func CanTransition(from, to Status) bool {
	for _, s := range Transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStatusTransition }

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// ApplyStatus moves the booking to `to` and stamps completedAt or cancelledAt when unset.
func (b *Booking) ApplyStatus(to Status, reason string, now time.Time) error {
	if err := ValidateTransition(b.Status, to); err != nil {
		return err
	}
	b.Status = to
	switch to {
	case StatusCompleted:
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	case StatusCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = &now
		}
		if reason != "" {
			b.CancelReason = reason
		}
	}
	return nil
}

// CancellableByCustomer rejects cancellations made less than lead before the appointment.
func CancellableByCustomer(appointment, now time.Time, lead time.Duration) error {
	if appointment.Sub(now) < lead {
		return ErrTooLateToCancel
	}
	return nil
}
