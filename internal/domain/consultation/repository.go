package consultation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/sequence"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create numbers and inserts the consultation in one transaction.
func (r *Repository) Create(ctx context.Context, c *Consultation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := sequence.Next(ctx, tx, sequence.Consultations)
		if err != nil {
			return err
		}
		c.ConsultationNumber = sequence.Format("CON", n, 6)
		return tx.Create(c).Error
	})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Consultation, error) {
	var c Consultation
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Consultation, int64, error) {
	q := r.db.WithContext(ctx).Model(&Consultation{}).Scopes(scope.Narrow("branch_id", "doctor_id"))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.DateFrom != "" {
		q = q.Where("scheduled_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("scheduled_date <= ?", f.DateTo)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("consultation_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []Consultation
	err := q.Order("scheduled_date DESC, scheduled_time DESC, id DESC").
		Limit(f.Limit).
		Offset(params.Offset(f.Page, f.Limit)).
		Find(&list).Error
	return list, total, err
}

func (r *Repository) Save(ctx context.Context, c *Consultation) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Consultation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConsultationNotFound
	}
	return nil
}

// DoctorBusy reports whether the doctor has another active consultation starting at date and at.
func (r *Repository) DoctorBusy(ctx context.Context, doctorID int64, date, at string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Consultation{}).
		Where("doctor_id = ? AND scheduled_date = ? AND scheduled_time = ?", doctorID, date, at).
		Where("status IN ?", ActiveStatuses)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
