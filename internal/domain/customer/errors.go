package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAnimalNotFound   = errors.New("animal not found")
	ErrPhoneExists      = errors.New("phone number already registered")
	ErrInvalidPhone     = errors.New("invalid Saudi mobile number")
	ErrInvalidAnimal    = errors.New("invalid animal type")
	ErrCustomerInactive = errors.New("customer account is not active")
)
