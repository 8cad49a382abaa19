package customer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHerdAddValidatesAndOwns(t *testing.T) {
	h := NewHerd(9, nil)

	a, err := h.Add(CreateAnimalRequest{Name: "  Najla ", Type: "camel"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.CustomerID)
	assert.Equal(t, "Najla", a.Name)
	assert.Equal(t, 1, a.Count)
	assert.True(t, a.Active())

	_, err = h.Add(CreateAnimalRequest{Name: "X", Type: "dragon"})
	assert.True(t, errors.Is(err, ErrInvalidAnimal))
}

func TestHerdUpdateAndDeactivate(t *testing.T) {
	animals := []Animal{
		{ID: 3, CustomerID: 9, Name: "Goats", Type: AnimalGoat, Count: 4},
		{ID: 1, CustomerID: 9, Name: "Sheep", Type: AnimalSheep, Count: 10},
	}
	for i := range animals {
		animals[i].Activate()
	}
	h := NewHerd(9, animals)

	name, bad, count := " Flock ", "dragon", 12
	a, err := h.Update(1, UpdateAnimalRequest{Name: &name, Count: &count})
	require.NoError(t, err)
	assert.Equal(t, "Flock", a.Name)
	assert.Equal(t, 12, a.Count)

	_, err = h.Update(1, UpdateAnimalRequest{Type: &bad})
	assert.True(t, errors.Is(err, ErrInvalidAnimal))
	_, err = h.Update(42, UpdateAnimalRequest{Name: &name})
	assert.True(t, errors.Is(err, ErrAnimalNotFound))

	active := h.Active()
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)

	removed, err := h.Deactivate(3)
	require.NoError(t, err)
	assert.False(t, removed.Active())
	_, ok := h.GetActive(3)
	assert.False(t, ok)
	_, err = h.Deactivate(3)
	assert.True(t, errors.Is(err, ErrAnimalNotFound))
	assert.Len(t, h.Active(), 1)
}
