package vaccination

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Vaccination, error) {
	list, err := s.repo.List(ctx, f.ActiveOnly, strings.TrimSpace(f.Search))
	if err != nil {
		return nil, err
	}
	if f.AnimalType == "" {
		return list, nil
	}

	out := make([]Vaccination, 0, len(list))
	for _, v := range list {
		for _, t := range v.AnimalTypes {
			if t == f.AnimalType || t == AllAnimals {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Vaccination, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActive loads a vaccination that can still be booked.
func (s *Service) GetActive(ctx context.Context, id int64) (*Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Active() {
		return nil, ErrVaccinationInactive
	}
	return v, nil
}

// ForAnimal lists active vaccinations applicable to an animal of the given type and age.
func (s *Service) ForAnimal(ctx context.Context, animalType string, age float64) ([]Vaccination, error) {
	list, err := s.repo.List(ctx, true, "")
	if err != nil {
		return nil, err
	}
	out := make([]Vaccination, 0, len(list))
	for _, v := range list {
		if v.Applies(animalType, age) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req *CreateVaccinationRequest) (*Vaccination, error) {
	duration := req.Duration
	if duration == 0 {
		duration = 30
	}
	v := &Vaccination{
		NameAr:          strings.TrimSpace(req.NameAr),
		NameEn:          strings.TrimSpace(req.NameEn),
		Description:     req.Description,
		AnimalTypes:     dedupe(req.AnimalTypes),
		Price:           req.Price,
		Duration:        duration,
		Frequency:       Frequency(req.Frequency),
		FrequencyMonths: req.FrequencyMonths,
		AgeRange:        AgeRange{Min: req.AgeRange.Min, Max: req.AgeRange.Max},
		SideEffects:     nonNil(req.SideEffects),
	}
	v.Activate()
	if err := validate(v); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create vaccination: %w", err)
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateVaccinationRequest) (*Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NameAr != nil {
		v.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.NameEn != nil {
		v.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.AnimalTypes != nil {
		v.AnimalTypes = dedupe(req.AnimalTypes)
	}
	if req.Price != nil {
		v.Price = *req.Price
	}
	if req.Duration != nil {
		v.Duration = *req.Duration
	}
	if req.Frequency != nil {
		v.Frequency = Frequency(*req.Frequency)
	}
	if req.FrequencyMonths != nil {
		v.FrequencyMonths = req.FrequencyMonths
	}
	if req.AgeRange != nil {
		v.AgeRange = AgeRange{Min: req.AgeRange.Min, Max: req.AgeRange.Max}
	}
	if req.SideEffects != nil {
		v.SideEffects = req.SideEffects
	}
	if req.IsActive != nil {
		if *req.IsActive {
			v.Activate()
		} else {
			v.Deactivate()
		}
	}
	if err := validate(v); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("update vaccination: %w", err)
	}
	return v, nil
}

// Deactivate archives the vaccination; bookings keep their snapshot.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.Deactivate()
	return s.repo.Save(ctx, v)
}

func validate(v *Vaccination) error {
	if v.AgeRange.Min != nil && v.AgeRange.Max != nil && *v.AgeRange.Min > *v.AgeRange.Max {
		return ErrInvalidAgeRange
	}
	if v.Frequency == FrequencyCustom && (v.FrequencyMonths == nil || *v.FrequencyMonths < 1) {
		return ErrFrequencyMonths
	}
	if len(v.AnimalTypes) == 0 {
		return ErrInvalidAnimalType
	}
	return nil
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
