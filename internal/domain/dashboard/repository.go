package dashboard

import (
	"context"

	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/domain/consultation"
	"vetclinic/internal/pkg/archive"
)

// Repository runs read-only aggregate queries; every query is narrowed by the caller's scope first.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *Repository) statusCounts(ctx context.Context, model any, scope access.Scope) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(model).
		Scopes(scope.Narrow("branch_id", "doctor_id")).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *Repository) BookingStatusCounts(ctx context.Context, scope access.Scope) (map[string]int64, error) {
	return r.statusCounts(ctx, &booking.Booking{}, scope)
}

func (r *Repository) ConsultationStatusCounts(ctx context.Context, scope access.Scope) (map[string]int64, error) {
	return r.statusCounts(ctx, &consultation.Consultation{}, scope)
}

func (r *Repository) BookingsOn(ctx context.Context, scope access.Scope, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&booking.Booking{}).
		Scopes(scope.Narrow("branch_id", "doctor_id")).
		Where("appointment_date = ?", date).
		Count(&n).Error
	return n, err
}

// Revenue sums paid completed bookings with an appointment date in [from, to]; empty bounds are open.
func (r *Repository) Revenue(ctx context.Context, scope access.Scope, from, to string) (float64, error) {
	q := r.db.WithContext(ctx).Model(&booking.Booking{}).
		Scopes(scope.Narrow("branch_id", "doctor_id")).
		Where("status = ? AND paid = ?", booking.StatusCompleted, true)
	if from != "" {
		q = q.Where("appointment_date >= ?", from)
	}
	if to != "" {
		q = q.Where("appointment_date <= ?", to)
	}
	var row struct{ Total float64 }
	err := q.Select("COALESCE(SUM(total_amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *Repository) ActiveCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("customers").Where(archive.OnlyActive, true).Count(&n).Error
	return n, err
}

func (r *Repository) RevenueByBranch(ctx context.Context, scope access.Scope) ([]BranchRevenue, error) {
	var rows []BranchRevenue
	err := r.db.WithContext(ctx).Table("bookings").
		Scopes(scope.Narrow("bookings.branch_id", "bookings.doctor_id")).
		Select("bookings.branch_id AS branch_id, branches.name AS branch_name, "+
			"COUNT(*) AS bookings, COALESCE(SUM(bookings.total_amount), 0) AS revenue").
		Joins("JOIN branches ON branches.id = bookings.branch_id").
		Where("bookings.status = ? AND bookings.paid = ?", booking.StatusCompleted, true).
		Group("bookings.branch_id, branches.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

// NonCancelledAnimals loads the animal snapshots of bookings that were not cancelled.
func (r *Repository) NonCancelledAnimals(ctx context.Context, scope access.Scope) ([]booking.AnimalSnapshot, error) {
	var list []booking.Booking
	err := r.db.WithContext(ctx).Model(&booking.Booking{}).
		Scopes(scope.Narrow("branch_id", "doctor_id")).
		Select("id", "animal").
		Where("status <> ?", booking.StatusCancelled).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	out := make([]booking.AnimalSnapshot, 0, len(list))
	for i := range list {
		out = append(out, list[i].Animal)
	}
	return out, nil
}

// BookingsBetween returns the fields trend charts need for appointments in [from, to].
func (r *Repository) BookingsBetween(ctx context.Context, scope access.Scope, from, to string) ([]booking.Booking, error) {
	var list []booking.Booking
	err := r.db.WithContext(ctx).Model(&booking.Booking{}).
		Scopes(scope.Narrow("branch_id", "doctor_id")).
		Select("id", "appointment_date", "status", "total_amount", "paid").
		Where("appointment_date >= ? AND appointment_date <= ?", from, to).
		Find(&list).Error
	return list, err
}
