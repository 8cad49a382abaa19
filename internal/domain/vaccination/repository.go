package vaccination

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vetclinic/internal/pkg/archive"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, v *Vaccination) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Vaccination, error) {
	var v Vaccination
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVaccinationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns the catalog ordered by English name. animalTypes is a JSON column,
// so species filtering happens in the service.
func (r *Repository) List(ctx context.Context, activeOnly bool, search string) ([]Vaccination, error) {
	q := r.db.WithContext(ctx).Model(&Vaccination{})
	if activeOnly {
		q = q.Where(archive.OnlyActive, true)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name_en LIKE ? OR name_ar LIKE ?", like, like)
	}
	var list []Vaccination
	err := q.Order("name_en ASC").Find(&list).Error
	return list, err
}

func (r *Repository) Save(ctx context.Context, v *Vaccination) error {
	return r.db.WithContext(ctx).Save(v).Error
}
