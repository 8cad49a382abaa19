package auth

import (
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CustomerLoginRequest struct {
	Phone string `json:"phone" validate:"required,saphone"`
}

type RegisterCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Phone   string `json:"phone" validate:"required,saphone"`
	Email   string `json:"email" validate:"omitempty,email"`
	City    string `json:"city" validate:"omitempty,max=100"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

type StaffLoginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type CustomerLoginResponse struct {
	Token    string             `json:"token"`
	Customer *customer.Customer `json:"customer"`
}
