package consultation

import (
	"fmt"
	"time"
)

// Transitions lists the allowed next statuses; completed and cancelled are terminal.
var Transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

// ActiveStatuses occupy the doctor's time.
var ActiveStatuses = []Status{StatusScheduled, StatusInProgress}

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
	return fmt.Sprintf("cannot change consultation status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStatusTransition }

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// Outcome is the clinical result recorded on completion.
type Outcome struct {
	Diagnosis   string
	Treatment   string
	Medications []Medication
}

func (o Outcome) empty() bool {
	return o.Diagnosis == "" && o.Treatment == "" && len(o.Medications) == 0
}

// ApplyStatus moves the consultation to `to`. The outcome is only accepted when completing.
func (c *Consultation) ApplyStatus(to Status, out Outcome, reason string, now time.Time) error {
	if err := ValidateTransition(c.Status, to); err != nil {
		return err
	}
	if to != StatusCompleted && !out.empty() {
		return ErrCompletionFieldsOnly
	}

	switch to {
	case StatusInProgress:
		c.StartedAt = &now
	case StatusCompleted:
		if out.Diagnosis == "" {
			return ErrDiagnosisRequired
		}
		c.Diagnosis = out.Diagnosis
		c.Treatment = out.Treatment
		c.Medications = out.Medications
		c.CompletedAt = &now
	case StatusCancelled:
		c.CancelledAt = &now
		if reason != "" {
			c.CancelReason = reason
		}
	}
	c.Status = to
	return nil
}
