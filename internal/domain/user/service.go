package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vetclinic/internal/access"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// BranchChecker confirms a branch exists before users are attached to it.
type BranchChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo     *Repository
	branches BranchChecker
	now      func() time.Time
}

func NewService(repo *Repository, branches BranchChecker) *Service {
	return &Service{repo: repo, branches: branches, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req.Role == access.RoleDoctor && req.BranchID == nil {
		return nil, ErrBranchRequired
	}
	if err := s.checkBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:           strings.TrimSpace(req.Name),
		Email:          normalizeEmail(req.Email),
		PasswordHash:   hash,
		Phone:          strings.TrimSpace(req.Phone),
		Role:           req.Role,
		BranchID:       req.BranchID,
		Specialization: strings.TrimSpace(req.Specialization),
	}
	if req.Role == access.RoleAdmin {
		u.BranchID = nil
	}
	u.Activate()

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetWithReviews(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]User, int64, error) {
	return s.repo.List(ctx, f)
}

// Doctors lists active doctors, optionally of one branch.
func (s *Service) Doctors(ctx context.Context, branchID *int64) ([]DoctorSummary, error) {
	active := true
	list, _, err := s.repo.List(ctx, ListFilter{Role: access.RoleDoctor, BranchID: branchID, Active: &active})
	if err != nil {
		return nil, err
	}
	out := make([]DoctorSummary, 0, len(list))
	for i := range list {
		out = append(out, summarize(&list[i]))
	}
	return out, nil
}

// GetDoctor returns an active doctor; used by booking and consultation assignment.
func (s *Service) GetDoctor(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsDoctor() || !u.Active() {
		return nil, ErrNotDoctor
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *UpdateUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = normalizeEmail(*req.Email)
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.BranchID != nil {
		if err := s.checkBranch(ctx, req.BranchID); err != nil {
			return nil, err
		}
		u.BranchID = req.BranchID
	}
	if req.Specialization != nil {
		u.Specialization = strings.TrimSpace(*req.Specialization)
	}
	if req.IsActive != nil {
		if !*req.IsActive && actorID == u.ID {
			return nil, ErrCannotDeactivate
		}
		if *req.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}
	if u.Role == access.RoleDoctor && u.BranchID == nil {
		return nil, ErrBranchRequired
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Deactivate(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrCannotDeactivate
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Deactivate()
	return s.repo.Save(ctx, u)
}

// AddReview stores a review and refreshes the doctor's cached rating in one transaction.
func (s *Service) AddReview(ctx context.Context, doctorID int64, customerID *int64, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var created *Review
	err := s.repo.Tx(ctx, func(tx *Repository) error {
		doc, err := tx.GetByID(ctx, doctorID)
		if err != nil {
			return err
		}
		if !doc.IsDoctor() {
			return ErrNotDoctor
		}

		rv := &Review{
			DoctorID:     doctorID,
			CustomerID:   customerID,
			ReviewerName: strings.TrimSpace(req.ReviewerName),
			Rating:       req.Rating,
			Comment:      strings.TrimSpace(req.Comment),
		}
		if err := tx.CreateReview(ctx, rv); err != nil {
			return err
		}
		created = rv
		return tx.refreshRating(ctx, doctorID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) RemoveReview(ctx context.Context, doctorID, reviewID int64) error {
	return s.repo.Tx(ctx, func(tx *Repository) error {
		if err := tx.DeleteReview(ctx, doctorID, reviewID); err != nil {
			return err
		}
		return tx.refreshRating(ctx, doctorID)
	})
}

func (s *Service) Reviews(ctx context.Context, doctorID int64) ([]Review, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, doctorID)
}

func (r *Repository) refreshRating(ctx context.Context, doctorID int64) error {
	reviews, err := r.ListReviews(ctx, doctorID)
	if err != nil {
		return err
	}
	rating, total := RecomputeRating(reviews)
	return r.SetRating(ctx, doctorID, rating, total)
}

// Authenticate checks credentials and applies the failed-attempt lockout.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if u.IsLocked(now) {
		return nil, ErrAccountLocked
	}
	if !u.Active() {
		return nil, ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		u.FailedLoginAttempts++
		if u.FailedLoginAttempts >= maxFailedLoginAttempts {
			until := now.Add(lockoutDuration)
			u.LockedUntil = &until
			u.FailedLoginAttempts = 0
		}
		if err := s.repo.Save(ctx, u); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *Service) checkBranch(ctx context.Context, id *int64) error {
	if id == nil || s.branches == nil {
		return nil
	}
	ok, err := s.branches.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBranchNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
