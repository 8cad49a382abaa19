package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/pkg/validator"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a customer, optionally with an initial herd.
func (s *Service) Register(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	if !validator.IsSaudiMobile(req.Phone) {
		return nil, ErrInvalidPhone
	}
	phone := validator.NormalizePhone(req.Phone)

	if _, err := s.repo.GetByPhone(ctx, phone); err == nil {
		return nil, ErrPhoneExists
	} else if !errors.Is(err, ErrCustomerNotFound) {
		return nil, err
	}

	c := &Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   phone,
		Email:   strings.TrimSpace(strings.ToLower(req.Email)),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Notes:   req.Notes,
	}
	c.Activate()
	herd := c.Herd()
	for _, ar := range req.Animals {
		a, err := herd.Add(ar)
		if err != nil {
			return nil, err
		}
		c.Animals = append(c.Animals, *a)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByPhone accepts any accepted phone form.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	if !validator.IsSaudiMobile(phone) {
		return nil, ErrInvalidPhone
	}
	return s.repo.GetByPhone(ctx, validator.NormalizePhone(phone))
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Customer, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateCustomerRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		if !validator.IsSaudiMobile(*req.Phone) {
			return nil, ErrInvalidPhone
		}
		phone := validator.NormalizePhone(*req.Phone)
		if phone != c.Phone {
			if other, err := s.repo.GetByPhone(ctx, phone); err == nil && other.ID != c.ID {
				return nil, ErrPhoneExists
			}
			c.Phone = phone
		}
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		c.City = strings.TrimSpace(*req.City)
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.IsActive != nil {
		if *req.IsActive {
			c.Activate()
		} else {
			c.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete permanently removes a customer. Admin only.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddAnimal(ctx context.Context, customerID int64, req *CreateAnimalRequest) (*Animal, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	a, err := c.Herd().Add(*req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAnimal(ctx, a); err != nil {
		return nil, fmt.Errorf("save animal: %w", err)
	}
	return a, nil
}

// GetAnimal returns an active animal of the customer.
func (s *Service) GetAnimal(ctx context.Context, customerID, animalID int64) (*Customer, *Animal, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	a, ok := c.Herd().GetActive(animalID)
	if !ok {
		return nil, nil, ErrAnimalNotFound
	}
	return c, a, nil
}

func (s *Service) UpdateAnimal(ctx context.Context, customerID, animalID int64, req *UpdateAnimalRequest) (*Animal, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	a, err := c.Herd().Update(animalID, *req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAnimal(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveAnimal archives the animal; past bookings keep their snapshot.
func (s *Service) RemoveAnimal(ctx context.Context, customerID, animalID int64) error {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	a, err := c.Herd().Deactivate(animalID)
	if err != nil {
		return err
	}
	return s.repo.SaveAnimal(ctx, a)
}

// RecordBooking updates the customer's booking counters.
func (s *Service) RecordBooking(ctx context.Context, customerID int64, at time.Time) error {
	return s.repo.IncrementBookings(ctx, customerID, at)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
