package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/access"
	"vetclinic/internal/database"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/consultation"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/logger"
	"vetclinic/internal/pkg/archive"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		part, total float64
		want        int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
		{0, 0, 0},
		{3, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Percent(tc.part, tc.total), "%v/%v", tc.part, tc.total)
	}
}

func doctor(id int64) *int64 { return &id }

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:dashboard_test_%s?mode=memory&cache=shared", t.Name()), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db,
		&branch.Branch{}, &customer.Customer{}, &customer.Animal{},
		&booking.Booking{}, &consultation.Consultation{},
	))

	branches := []branch.Branch{
		{ID: 1, Name: "Riyadh North", Archive: archive.New()},
		{ID: 2, Name: "Qassim", Archive: archive.New()},
	}
	require.NoError(t, db.Create(&branches).Error)

	customers := []customer.Customer{
		{Name: "A", Phone: "0500000001", Archive: archive.New()},
		{Name: "B", Phone: "0500000002", Archive: archive.New()},
		{Name: "C", Phone: "0500000003", Archive: archive.New()},
	}
	require.NoError(t, db.Create(&customers).Error)
	require.NoError(t, db.Model(&customers[2]).Update("is_active", false).Error)

	sheep := func(n int) booking.AnimalSnapshot { return booking.AnimalSnapshot{Type: "sheep", Count: n} }
	bookings := []booking.Booking{
		{BookingNumber: "BK000001", BranchID: 1, DoctorID: doctor(7), AppointmentDate: "2025-06-15", AppointmentTime: "09:00",
			Status: booking.StatusCompleted, Paid: true, TotalAmount: 100, Animal: sheep(3)},
		{BookingNumber: "BK000002", BranchID: 1, AppointmentDate: "2025-06-14", AppointmentTime: "09:00",
			Status: booking.StatusPending, TotalAmount: 50, Animal: sheep(1)},
		{BookingNumber: "BK000003", BranchID: 2, AppointmentDate: "2025-06-10", AppointmentTime: "10:00",
			Status: booking.StatusCancelled, TotalAmount: 70, Animal: booking.AnimalSnapshot{Type: "camel", Count: 1}},
		{BookingNumber: "BK000004", BranchID: 2, AppointmentDate: "2025-05-20", AppointmentTime: "10:00",
			Status: booking.StatusCompleted, Paid: true, TotalAmount: 200, Animal: booking.AnimalSnapshot{Type: "camel", Count: 1}},
		{BookingNumber: "BK000005", BranchID: 2, AppointmentDate: "2025-06-15", AppointmentTime: "11:00",
			Status: booking.StatusCompleted, TotalAmount: 80, Animal: booking.AnimalSnapshot{Type: "goat", Count: 1}},
	}
	require.NoError(t, db.Create(&bookings).Error)

	consultations := []consultation.Consultation{
		{ConsultationNumber: "CON000001", DoctorID: 7, BranchID: 1, Type: consultation.TypePhone,
			ScheduledDate: "2025-06-16", ScheduledTime: "10:00", Status: consultation.StatusScheduled},
		{ConsultationNumber: "CON000002", DoctorID: 8, BranchID: 2, Type: consultation.TypeVideo,
			ScheduledDate: "2025-06-12", ScheduledTime: "10:00", Status: consultation.StatusCompleted},
	}
	require.NoError(t, db.Create(&consultations).Error)
	return db
}

func newService(t *testing.T, exporter BookingExporter) *Service {
	svc := NewService(NewRepository(seed(t)), exporter, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

var admin = access.Scope{Role: access.RoleAdmin, UserID: 1}

func TestStats(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	st, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, BookingStats{Total: 5, Today: 2, Pending: 1, Completed: 3, Cancelled: 1}, st.Bookings)
	assert.Equal(t, RevenueStats{Total: 300, ThisMonth: 100}, st.Revenue)
	assert.Equal(t, int64(2), st.Customers)
	assert.Equal(t, ConsultationStats{Total: 2, Scheduled: 1, Completed: 1}, st.Consultations)

	staff, err := svc.Stats(ctx, access.Scope{Role: access.RoleStaff, UserID: 2, BranchID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), staff.Bookings.Total)
	assert.Equal(t, 100.0, staff.Revenue.Total)
	assert.Equal(t, int64(1), staff.Consultations.Total)

	doc, err := svc.Stats(ctx, access.Scope{Role: access.RoleDoctor, UserID: 7, BranchID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Bookings.Total)
	assert.Equal(t, int64(1), doc.Bookings.Today)
}

func TestStatusDistribution(t *testing.T) {
	svc := newService(t, nil)
	out, err := svc.StatusDistribution(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, []Share{
		{Key: "pending", Count: 1, Percent: 20},
		{Key: "confirmed", Count: 0, Percent: 0},
		{Key: "completed", Count: 3, Percent: 60},
		{Key: "cancelled", Count: 1, Percent: 20},
	}, out)

	none, err := svc.StatusDistribution(context.Background(), access.Scope{Role: access.RoleDoctor, UserID: 99})
	require.NoError(t, err)
	for _, s := range none {
		assert.Zero(t, s.Percent)
	}
}

func TestRevenueByBranch(t *testing.T) {
	svc := newService(t, nil)
	out, err := svc.RevenueByBranch(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, BranchRevenue{BranchID: 2, BranchName: "Qassim", Bookings: 1, Revenue: 200, Percent: 67}, out[0])
	assert.Equal(t, BranchRevenue{BranchID: 1, BranchName: "Riyadh North", Bookings: 1, Revenue: 100, Percent: 33}, out[1])

	scoped, err := svc.RevenueByBranch(context.Background(), access.Scope{Role: access.RoleStaff, BranchID: 1})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, 100, scoped[0].Percent)
}

func TestAnimalTypeDistribution(t *testing.T) {
	svc := newService(t, nil)
	out, err := svc.AnimalTypeDistribution(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, []AnimalShare{
		{Type: "sheep", Bookings: 2, Animals: 4, Percent: 50},
		{Type: "camel", Bookings: 1, Animals: 1, Percent: 25},
		{Type: "goat", Bookings: 1, Animals: 1, Percent: 25},
	}, out)
}

func TestTrends(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	days, err := svc.Trends(ctx, admin, PeriodDay, 0)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-06-09", days[0].Label)
	assert.Equal(t, TrendPoint{Label: "2025-06-10", Bookings: 1, Cancelled: 1}, days[1])
	assert.Equal(t, TrendPoint{Label: "2025-06-15", Bookings: 2, Completed: 2, Revenue: 100}, days[6])

	months, err := svc.Trends(ctx, admin, PeriodMonth, 2)
	require.NoError(t, err)
	assert.Equal(t, []TrendPoint{
		{Label: "2025-05", Bookings: 1, Completed: 1, Revenue: 200},
		{Label: "2025-06", Bookings: 4, Completed: 2, Cancelled: 1, Revenue: 100},
	}, months)

	_, err = svc.Trends(ctx, admin, "week", 3)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = svc.Trends(ctx, admin, PeriodMonth, 100)
	assert.ErrorIs(t, err, ErrInvalidPoints)
}
