package offer

import "errors"

var (
	ErrOfferNotFound   = errors.New("offer not found")
	ErrOfferNotValid   = errors.New("offer is not valid")
	ErrOfferExhausted  = errors.New("offer usage limit reached")
	ErrBelowMinimum    = errors.New("amount is below the offer minimum")
	ErrInvalidDiscount = errors.New("invalid discount")
	ErrInvalidPeriod   = errors.New("end date must not be before start date")
)
