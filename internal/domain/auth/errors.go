package auth

import "errors"

var (
	ErrCustomerNotRegistered = errors.New("no customer registered with this phone")
	ErrCustomerInactive      = errors.New("customer account is not active")
)
