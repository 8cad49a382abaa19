package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/database"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/sequence"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create numbers and inserts the booking in one transaction; a failed insert leaves no gap.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := sequence.Next(ctx, tx, sequence.Bookings)
		if err != nil {
			return err
		}
		b.BookingNumber = sequence.Format("BK", n, 6)
		return tx.Create(b).Error
	})
	if database.IsUniqueViolation(err) {
		return ErrSlotBooked
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List narrows by the caller's scope before user filters so totals match what the caller may see.
func (r *Repository) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&Booking{}).Scopes(scope.Narrow("branch_id", "doctor_id"))
	q = applyFilter(q, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Booking
	err := q.Order("appointment_date DESC, appointment_time DESC, id DESC").
		Limit(f.Limit).
		Offset(params.Offset(f.Page, f.Limit)).
		Find(&list).Error
	return list, total, err
}

// Export returns every booking matching f within scope, oldest first.
func (r *Repository) Export(ctx context.Context, scope access.Scope, f ListFilter) ([]Booking, error) {
	q := r.db.WithContext(ctx).Model(&Booking{}).Scopes(scope.Narrow("branch_id", "doctor_id"))
	var list []Booking
	err := applyFilter(q, f).Order("appointment_date ASC, appointment_time ASC, id ASC").Find(&list).Error
	return list, err
}

func applyFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.DateFrom != "" {
		q = q.Where("appointment_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("appointment_date <= ?", f.DateTo)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("booking_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}
	return q
}

func (r *Repository) Save(ctx context.Context, b *Booking) error {
	err := r.db.WithContext(ctx).Save(b).Error
	if database.IsUniqueViolation(err) {
		return ErrSlotBooked
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SlotTaken reports whether a pending or confirmed booking other than excludeID holds the slot.
func (r *Repository) SlotTaken(ctx context.Context, branchID int64, date, at string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Booking{}).
		Where("branch_id = ? AND appointment_date = ? AND appointment_time = ?", branchID, date, at).
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

// BookedTimes returns the held times at a branch on a date.
func (r *Repository) BookedTimes(ctx context.Context, branchID int64, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("branch_id = ? AND appointment_date = ?", branchID, date).
		Where("status IN ?", ActiveStatuses).
		Order("appointment_time").
		Pluck("appointment_time", &times).Error
	return times, err
}

// DueReminders returns confirmed bookings on date that have not been reminded yet.
func (r *Repository) DueReminders(ctx context.Context, date string) ([]Booking, error) {
	var list []Booking
	err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND status = ? AND reminder_sent_at IS NULL", date, StatusConfirmed).
		Order("appointment_time").
		Find(&list).Error
	return list, err
}

// MarkReminded stamps the reminder once; it reports false when another run got there first.
func (r *Repository) MarkReminded(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		UpdateColumn("reminder_sent_at", at)
	return res.RowsAffected > 0, res.Error
}
