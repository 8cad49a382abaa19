package offer

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vetclinic/internal/pkg/archive"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, o *Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Offer, error) {
	var o Offer
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) List(ctx context.Context) ([]Offer, error) {
	var list []Offer
	err := r.db.WithContext(ctx).Order("start_date DESC, id DESC").Find(&list).Error
	return list, err
}

// ListCurrent returns active offers whose period contains at. Usage is checked by the caller.
func (r *Repository) ListCurrent(ctx context.Context, at time.Time) ([]Offer, error) {
	var list []Offer
	err := r.db.WithContext(ctx).
		Where(archive.OnlyActive, true).
		Where("start_date <= ? AND end_date >= ?", at, at).
		Order("end_date ASC").
		Find(&list).Error
	return list, err
}

func (r *Repository) Save(ctx context.Context, o *Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Offer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// Consume increments used_count by one unless the usage limit is already reached.
func (r *Repository) Consume(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&Offer{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOfferExhausted
	}
	return nil
}

// Release undoes a Consume.
func (r *Repository) Release(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&Offer{}).
		Where("id = ? AND used_count > 0", id).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
