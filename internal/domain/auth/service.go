package auth

import (
	"context"
	"errors"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
)

type Users interface {
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	Get(ctx context.Context, id int64) (*user.User, error)
}

type Customers interface {
	Register(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*customer.Customer, error)
	Get(ctx context.Context, id int64) (*customer.Customer, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string, branchID int64) (string, error)
}

// Service issues tokens for dashboard users and for customers of the mobile app.
type Service struct {
	users     Users
	customers Customers
	tokens    TokenIssuer
}

func NewService(users Users, customers Customers, tokens TokenIssuer) *Service {
	return &Service{users: users, customers: customers, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*StaffLoginResponse, error) {
	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateToken(u.ID, u.Role, u.BranchRef())
	if err != nil {
		return nil, err
	}
	return &StaffLoginResponse{Token: token, User: u}, nil
}

func (s *Service) RegisterCustomer(ctx context.Context, req *RegisterCustomerRequest) (*CustomerLoginResponse, error) {
	c, err := s.customers.Register(ctx, &customer.CreateCustomerRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		City:    req.City,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	return s.customerToken(c)
}

// CustomerLogin signs a customer in by registered phone number.
func (s *Service) CustomerLogin(ctx context.Context, req *CustomerLoginRequest) (*CustomerLoginResponse, error) {
	c, err := s.customers.GetByPhone(ctx, req.Phone)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return nil, ErrCustomerNotRegistered
	}
	if err != nil {
		return nil, err
	}
	if !c.Active() {
		return nil, ErrCustomerInactive
	}
	return s.customerToken(c)
}

// Me returns the profile behind the token: a *user.User or a *customer.Customer.
func (s *Service) Me(ctx context.Context, id int64, role string) (any, error) {
	if role == access.RoleCustomer {
		return s.customers.Get(ctx, id)
	}
	return s.users.Get(ctx, id)
}

func (s *Service) customerToken(c *customer.Customer) (*CustomerLoginResponse, error) {
	token, err := s.tokens.GenerateToken(c.ID, access.RoleCustomer, 0)
	if err != nil {
		return nil, err
	}
	return &CustomerLoginResponse{Token: token, Customer: c}, nil
}
