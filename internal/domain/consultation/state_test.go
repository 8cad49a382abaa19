package consultation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	all := []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}
	legal := map[[2]Status]bool{
		{StatusScheduled, StatusInProgress}: true,
		{StatusScheduled, StatusCancelled}:  true,
		{StatusInProgress, StatusCompleted}: true,
		{StatusInProgress, StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	err := ValidateTransition(StatusScheduled, StatusCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStatusTransition))
	assert.Contains(t, err.Error(), "scheduled")
	assert.Contains(t, err.Error(), "completed")
}

func TestApplyStatusOutcome(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	out := Outcome{Diagnosis: "mild bloat", Medications: []Medication{{Name: "simethicone"}}}

	c := &Consultation{Status: StatusScheduled}
	assert.True(t, errors.Is(c.ApplyStatus(StatusInProgress, out, "", now), ErrCompletionFieldsOnly))
	assert.Equal(t, StatusScheduled, c.Status)

	require.NoError(t, c.ApplyStatus(StatusInProgress, Outcome{}, "", now))
	assert.NotNil(t, c.StartedAt)

	assert.True(t, errors.Is(c.ApplyStatus(StatusCompleted, Outcome{Treatment: "rest"}, "", now), ErrDiagnosisRequired))
	assert.Equal(t, StatusInProgress, c.Status)

	require.NoError(t, c.ApplyStatus(StatusCompleted, out, "", now))
	assert.Equal(t, StatusCompleted, c.Status)
	assert.Equal(t, "mild bloat", c.Diagnosis)
	assert.Len(t, c.Medications, 1)
	assert.Equal(t, now, *c.CompletedAt)
}
