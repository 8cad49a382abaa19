package branch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetclinic/internal/access"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns the branches visible to the caller.
func (s *Service) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Branch, error) {
	return s.repo.List(ctx, scope, f)
}

// ListPublic returns active branches for customers choosing where to book.
func (s *Service) ListPublic(ctx context.Context) ([]Branch, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Branch, error) {
	return s.repo.GetByID(ctx, id)
}

// GetScoped loads a branch and checks the caller may see it.
func (s *Service) GetScoped(ctx context.Context, scope access.Scope, id int64) (*Branch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsBranch(b.ID) {
		return nil, ErrForbiddenBranch
	}
	return b, nil
}

// GetActive loads a branch that can accept bookings.
func (s *Service) GetActive(ctx context.Context, id int64) (*Branch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return nil, ErrBranchInactive
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, req *CreateBranchRequest) (*Branch, error) {
	hours := WorkingHours{Start: "08:00", End: "16:00"}
	if req.WorkingHours.Start != "" {
		hours.Start = req.WorkingHours.Start
	}
	if req.WorkingHours.End != "" {
		hours.End = req.WorkingHours.End
	}
	if err := validateHours(hours); err != nil {
		return nil, err
	}
	days, err := normalizeDays(req.WorkingDays)
	if err != nil {
		return nil, err
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	b := &Branch{
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		City:         strings.TrimSpace(req.City),
		Phone:        strings.TrimSpace(req.Phone),
		WorkingHours: hours,
		WorkingDays:  days,
		Capacity:     capacity,
	}
	b.Activate()

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateBranchRequest) (*Branch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		b.Location = strings.TrimSpace(*req.Location)
	}
	if req.City != nil {
		b.City = strings.TrimSpace(*req.City)
	}
	if req.Phone != nil {
		b.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.WorkingHours != nil {
		if req.WorkingHours.Start != "" {
			b.WorkingHours.Start = req.WorkingHours.Start
		}
		if req.WorkingHours.End != "" {
			b.WorkingHours.End = req.WorkingHours.End
		}
		if err := validateHours(b.WorkingHours); err != nil {
			return nil, err
		}
	}
	if req.WorkingDays != nil {
		days, err := normalizeDays(req.WorkingDays)
		if err != nil {
			return nil, err
		}
		b.WorkingDays = days
	}
	if req.Capacity != nil {
		b.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		if *req.IsActive {
			b.Activate()
		} else {
			b.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("update branch: %w", err)
	}
	return b, nil
}

// Deactivate archives the branch; existing bookings keep referencing it.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Deactivate()
	return s.repo.Save(ctx, b)
}

func validateHours(h WorkingHours) error {
	// zero-padded HH:MM compares correctly as strings
	if h.Start >= h.End {
		return ErrInvalidHours
	}
	return nil
}

func normalizeDays(days []string) ([]string, error) {
	if days == nil {
		return []string{}, nil
	}
	out := make([]string, 0, len(days))
	seen := map[string]bool{}
	for _, d := range days {
		if !ValidDay(d) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
		d = strings.ToLower(strings.TrimSpace(d))
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

// Exists reports whether a branch with id exists, active or not.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrBranchNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
