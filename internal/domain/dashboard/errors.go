package dashboard

import "errors"

var (
	ErrInvalidPeriod = errors.New("period must be day or month")
	ErrInvalidPoints = errors.New("points out of range")
)
