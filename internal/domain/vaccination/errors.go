package vaccination

import "errors"

var (
	ErrVaccinationNotFound = errors.New("vaccination not found")
	ErrVaccinationInactive = errors.New("vaccination is not active")
	ErrInvalidAnimalType   = errors.New("invalid animal type")
	ErrInvalidAgeRange     = errors.New("age range min must not exceed max")
	ErrFrequencyMonths     = errors.New("frequencyMonths is required for custom frequency")
)
