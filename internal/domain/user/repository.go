package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vetclinic/internal/database"
	"vetclinic/internal/pkg/archive"
	"vetclinic/internal/pkg/params"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetWithReviews loads a user and its reviews, newest first.
func (r *Repository) GetWithReviews(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]User, int64, error) {
	q := r.db.WithContext(ctx).Model(&User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.Active != nil {
		q = q.Where(archive.OnlyActive, *f.Active)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(params.Offset(f.Page, f.Limit))
	}
	var list []User
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *Repository) Save(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
	if database.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

// Tx runs fn in a transaction with a repository bound to it.
func (r *Repository) Tx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) CreateReview(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *Repository) DeleteReview(ctx context.Context, doctorID, reviewID int64) error {
	res := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Delete(&Review{}, reviewID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *Repository) ListReviews(ctx context.Context, doctorID int64) ([]Review, error) {
	var list []Review
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// SetRating persists the cached rating columns.
func (r *Repository) SetRating(ctx context.Context, doctorID int64, rating float64, total int) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", doctorID).
		UpdateColumns(map[string]any{"rating": rating, "total_reviews": total}).Error
}
