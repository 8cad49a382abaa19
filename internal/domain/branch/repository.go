package branch

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/archive"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Branch, error) {
	var b Branch
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

type ListFilter struct {
	City       string
	ActiveOnly bool
}

func (r *Repository) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Branch, error) {
	q := r.db.WithContext(ctx).Model(&Branch{}).Scopes(scope.Narrow("id", ""))
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.ActiveOnly {
		q = q.Where(archive.OnlyActive, true)
	}

	var list []Branch
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]Branch, error) {
	var list []Branch
	err := r.db.WithContext(ctx).Where(archive.OnlyActive, true).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Save(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}
