package customer

import (
	"context"
	"errors"
	"time"

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

func activeAnimals(db *gorm.DB) *gorm.DB {
	return db.Where(archive.OnlyActive, true).Order("id ASC")
}

func (r *Repository) Create(ctx context.Context, c *Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if database.IsUniqueViolation(err) {
		return ErrPhoneExists
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Preload("Animals", activeAnimals).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Preload("Animals", activeAnimals).Where("phone = ?", phone).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&Customer{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Active != nil {
		q = q.Where(archive.OnlyActive, *f.Active)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Customer
	err := q.Preload("Animals", activeAnimals).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(params.Offset(f.Page, f.Limit)).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Save updates the customer row only; animals are written through SaveAnimal.
func (r *Repository) Save(ctx context.Context, c *Customer) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
	if database.IsUniqueViolation(err) {
		return ErrPhoneExists
	}
	return err
}

// Delete removes the customer and its animals.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&Animal{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Customer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCustomerNotFound
		}
		return nil
	})
}

func (r *Repository) SaveAnimal(ctx context.Context, a *Animal) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// IncrementBookings bumps the booking counter and moves lastBookingDate forward.
func (r *Repository) IncrementBookings(ctx context.Context, customerID int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Customer{}).
		Where("id = ?", customerID).
		UpdateColumns(map[string]any{
			"total_bookings":    gorm.Expr("total_bookings + 1"),
			"last_booking_date": at,
		}).Error
}

// Count returns the number of customers, used by the dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Customer{}).Count(&n).Error
	return n, err
}
