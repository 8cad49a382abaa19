package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/access"
	"vetclinic/internal/database"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
	"vetclinic/internal/logger"
	"vetclinic/internal/pkg/archive"
	"vetclinic/internal/pkg/sequence"
)

type MockCustomers struct{ mock.Mock }

func (m *MockCustomers) GetAnimal(ctx context.Context, customerID, animalID int64) (*customer.Customer, *customer.Animal, error) {
	args := m.Called(ctx, customerID, animalID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*customer.Customer), args.Get(1).(*customer.Animal), args.Error(2)
}

func (m *MockCustomers) RecordBooking(ctx context.Context, customerID int64, at time.Time) error {
	return m.Called(ctx, customerID, at).Error(0)
}

type MockBranches struct{ mock.Mock }

func (m *MockBranches) GetActive(ctx context.Context, id int64) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

type MockVaccinations struct{ mock.Mock }

func (m *MockVaccinations) GetActive(ctx context.Context, id int64) (*vaccination.Vaccination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaccination.Vaccination), args.Error(1)
}

type MockDoctors struct{ mock.Mock }

func (m *MockDoctors) GetDoctor(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOffers struct{ mock.Mock }

func (m *MockOffers) Apply(ctx context.Context, id int64, amount float64) (*offer.ApplyResult, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.ApplyResult), args.Error(1)
}

func (m *MockOffers) Release(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type recorder struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *recorder) Publish(e notification.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

var clinicTZ = time.FixedZone("AST", 3*3600)

// Sunday 1 June 2025, 10:00 clinic time.
var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, clinicTZ)

type fixture struct {
	svc       *Service
	repo      *Repository
	customers *MockCustomers
	offers    *MockOffers
	events    *recorder
}

func i64(v int64) *int64   { return &v }
func str(v string) *string { return &v }

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &Booking{}, &sequence.Sequence{}))

	open := func(id int64, days ...string) *branch.Branch {
		return &branch.Branch{
			ID:           id,
			Name:         fmt.Sprintf("Branch %d", id),
			WorkingHours: branch.WorkingHours{Start: "08:00", End: "16:00"},
			WorkingDays:  days,
			Archive:      archive.New(),
		}
	}
	branches := &MockBranches{}
	branches.On("GetActive", mock.Anything, int64(1)).Return(open(1), nil)
	branches.On("GetActive", mock.Anything, int64(2)).Return(open(2), nil)
	branches.On("GetActive", mock.Anything, int64(3)).Return(open(3, "monday"), nil)
	branches.On("GetActive", mock.Anything, int64(9)).Return(nil, branch.ErrBranchNotFound)

	customers := &MockCustomers{}
	owner := &customer.Customer{ID: 1, Name: "Fahad", Phone: "0512345678", Archive: archive.New()}
	customers.On("GetAnimal", mock.Anything, int64(1), int64(10)).Return(owner,
		&customer.Animal{ID: 10, CustomerID: 1, Name: "Herd A", Type: customer.AnimalSheep, Count: 2, Age: 2, Archive: archive.New()}, nil)
	customers.On("GetAnimal", mock.Anything, int64(1), int64(11)).Return(owner,
		&customer.Animal{ID: 11, CustomerID: 1, Name: "Saqr", Type: customer.AnimalCamel, Count: 1, Age: 5, Archive: archive.New()}, nil)
	customers.On("RecordBooking", mock.Anything, int64(1), mock.Anything).Return(nil)

	vaccinations := &MockVaccinations{}
	vaccinations.On("GetActive", mock.Anything, int64(5)).Return(&vaccination.Vaccination{
		ID: 5, NameEn: "PPR", NameAr: "طاعون المجترات", AnimalTypes: []string{"sheep", "goat"},
		Price: 50, Duration: 30, Frequency: vaccination.FrequencyAnnually, Archive: archive.New(),
	}, nil)

	doctors := &MockDoctors{}
	doctors.On("GetDoctor", mock.Anything, int64(7)).Return(&user.User{ID: 7, Role: "doctor", BranchID: i64(1)}, nil)
	doctors.On("GetDoctor", mock.Anything, int64(8)).Return(&user.User{ID: 8, Role: "doctor", BranchID: i64(2)}, nil)

	offers := &MockOffers{}
	events := &recorder{}

	repo := NewRepository(db)
	svc := NewService(repo, Deps{
		Customers:    customers,
		Branches:     branches,
		Vaccinations: vaccinations,
		Doctors:      doctors,
		Offers:       offers,
		Events:       events,
	}, Settings{Location: clinicTZ, SlotMinutes: 30, CancelLead: 24 * time.Hour}, logger.Nop())
	svc.now = func() time.Time { return testNow }

	return &fixture{svc: svc, repo: repo, customers: customers, offers: offers, events: events}
}

var admin = access.Scope{Role: access.RoleAdmin, UserID: 1}

func request(date, at string) *CreateBookingRequest {
	return &CreateBookingRequest{
		CustomerID: 1, BranchID: 1, AnimalID: 10, VaccinationID: 5,
		AppointmentDate: date, AppointmentTime: at,
	}
}

func TestCreateSnapshotsAndNumbers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	req := request("2025-06-03", "09:00")
	req.DoctorID = i64(7)
	b, err := f.svc.Create(ctx, admin, req)
	require.NoError(t, err)

	assert.Equal(t, "BK000001", b.BookingNumber)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 100.0, b.Price)
	assert.Equal(t, 100.0, b.TotalAmount)
	assert.Equal(t, "Herd A", b.Animal.Name)
	assert.Equal(t, 2, b.Animal.Count)
	assert.Equal(t, "PPR", b.Vaccination.NameEn)
	assert.Equal(t, "Fahad", b.CustomerName)

	b2, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, "BK000002", b2.BookingNumber)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Animal, stored.Animal)
	assert.Equal(t, b.Vaccination, stored.Vaccination)

	f.customers.AssertNumberOfCalls(t, "RecordBooking", 2)
	assert.Equal(t, []string{notification.TypeBookingCreated, notification.TypeBookingCreated}, f.events.types())
}

func TestCreateRejectsConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	assert.True(t, errors.Is(err, ErrSlotBooked))

	// another branch at the same time is fine
	other := request("2025-06-03", "09:00")
	other.BranchID = 2
	_, err = f.svc.Create(ctx, admin, other)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, admin, first.ID, &UpdateStatusRequest{Status: "cancelled", CancelReason: "owner travelling"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	assert.NoError(t, err)
}

func TestSlotUniqueAtStorageLevel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	mk := func() *Booking {
		return &Booking{CustomerID: 1, BranchID: 1, AppointmentDate: "2025-06-03", AppointmentTime: "11:00", Status: StatusConfirmed}
	}
	require.NoError(t, f.repo.Create(ctx, mk()))
	err := f.repo.Create(ctx, mk())
	assert.True(t, errors.Is(err, ErrSlotBooked))

	cancelled := mk()
	cancelled.Status = StatusCancelled
	require.NoError(t, f.repo.Create(ctx, cancelled))
	again := mk()
	again.Status = StatusCancelled
	require.NoError(t, f.repo.Create(ctx, again))
}

func TestCreateValidatesCalendarAndAnimal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := []struct {
		name string
		mut  func(r *CreateBookingRequest)
		want error
	}{
		{name: "closed day", mut: func(r *CreateBookingRequest) { r.BranchID = 3 }, want: ErrBranchClosed},
		{name: "before opening", mut: func(r *CreateBookingRequest) { r.AppointmentTime = "07:30" }, want: ErrOutsideWorkingHours},
		{name: "at closing", mut: func(r *CreateBookingRequest) { r.AppointmentTime = "16:00" }, want: ErrOutsideWorkingHours},
		{name: "off grid", mut: func(r *CreateBookingRequest) { r.AppointmentTime = "09:10" }, want: ErrInvalidSlot},
		{name: "past", mut: func(r *CreateBookingRequest) { r.AppointmentDate = "2025-06-01"; r.AppointmentTime = "09:30" }, want: ErrPastAppointment},
		{name: "wrong species", mut: func(r *CreateBookingRequest) { r.AnimalID = 11 }, want: ErrNotApplicable},
		{name: "doctor elsewhere", mut: func(r *CreateBookingRequest) { r.DoctorID = i64(8) }, want: ErrDoctorBranchMismatch},
		{name: "unknown branch", mut: func(r *CreateBookingRequest) { r.BranchID = 9 }, want: branch.ErrBranchNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request("2025-06-03", "09:00")
			tc.mut(req)
			_, err := f.svc.Create(ctx, admin, req)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCreateAppliesOffer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.offers.On("Apply", mock.Anything, int64(4), 100.0).
		Return(&offer.ApplyResult{OfferID: 4, Amount: 100, Discount: 20, FinalAmount: 80}, nil)

	req := request("2025-06-03", "10:00")
	req.OfferID = i64(4)
	b, err := f.svc.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, 20.0, b.Discount)
	assert.Equal(t, 80.0, b.TotalAmount)
	f.offers.AssertExpectations(t)
}

func TestStaffCannotBookOtherBranch(t *testing.T) {
	f := setup(t)
	staff := access.Scope{Role: access.RoleStaff, UserID: 3, BranchID: 2}
	_, err := f.svc.Create(context.Background(), staff, request("2025-06-03", "09:00"))
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestListIsScoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	withDoctor := request("2025-06-03", "09:00")
	withDoctor.DoctorID = i64(7)
	_, err := f.svc.Create(ctx, admin, withDoctor)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin, request("2025-06-03", "09:30"))
	require.NoError(t, err)
	elsewhere := request("2025-06-03", "09:00")
	elsewhere.BranchID = 2
	_, err = f.svc.Create(ctx, admin, elsewhere)
	require.NoError(t, err)

	page := ListFilter{Page: 1, Limit: 20}
	cases := []struct {
		name  string
		scope access.Scope
		want  int64
	}{
		{name: "admin", scope: admin, want: 3},
		{name: "staff of branch 1", scope: access.Scope{Role: access.RoleStaff, UserID: 3, BranchID: 1}, want: 2},
		{name: "staff without branch", scope: access.Scope{Role: access.RoleStaff, UserID: 3}, want: 3},
		{name: "doctor", scope: access.Scope{Role: access.RoleDoctor, UserID: 7, BranchID: 1}, want: 1},
		{name: "stranger", scope: access.Scope{Role: "guest"}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, total, err := f.svc.List(ctx, tc.scope, page)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
			assert.Len(t, list, int(tc.want))
		})
	}

	status := page
	status.Status = "pending"
	status.BranchID = i64(2)
	_, total, err := f.svc.List(ctx, access.Scope{Role: access.RoleStaff, UserID: 3, BranchID: 1}, status)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestUpdateRules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doctor := access.Scope{Role: access.RoleDoctor, UserID: 7, BranchID: 1}

	req := request("2025-06-03", "09:00")
	req.DoctorID = i64(7)
	b, err := f.svc.Create(ctx, admin, req)
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:30"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, doctor, b.ID, &UpdateBookingRequest{AppointmentTime: str("10:00")})
	assert.True(t, errors.Is(err, ErrDoctorNotesOnly))

	got, err := f.svc.Update(ctx, doctor, b.ID, &UpdateBookingRequest{Notes: str("bring vaccination card")})
	require.NoError(t, err)
	assert.Equal(t, "bring vaccination card", got.Notes)

	_, err = f.svc.Update(ctx, doctor, other.ID, &UpdateBookingRequest{Notes: str("x")})
	assert.True(t, errors.Is(err, ErrForbidden))

	// same slot as itself is not a conflict
	_, err = f.svc.Update(ctx, admin, b.ID, &UpdateBookingRequest{AppointmentTime: str("09:00")})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, admin, b.ID, &UpdateBookingRequest{AppointmentTime: str("09:30")})
	assert.True(t, errors.Is(err, ErrSlotBooked))

	moved, err := f.svc.Update(ctx, admin, b.ID, &UpdateBookingRequest{AppointmentTime: str("11:00")})
	require.NoError(t, err)
	assert.Equal(t, "11:00", moved.AppointmentTime)

	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, admin, b.ID, &UpdateBookingRequest{Notes: str("late note")})
	assert.True(t, errors.Is(err, ErrBookingCompleted))
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "completed"})
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, StatusPending, te.From)

	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "cancelled"})
	assert.True(t, errors.Is(err, ErrCancelReasonRequired))

	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	paid := true
	done, err := f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "completed", Paid: &paid, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.NotNil(t, done.CompletedAt)
	assert.True(t, done.Paid)

	assert.Equal(t, []string{
		notification.TypeBookingCreated,
		notification.TypeBookingConfirmed,
		notification.TypeBookingCompleted,
	}, f.events.types())
}

func TestDeleteOnlyPendingOrCancelled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	pending, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	require.NoError(t, err)
	confirmed, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:30"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, confirmed.ID, &UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.True(t, errors.Is(f.svc.Delete(ctx, admin, confirmed.ID), ErrCannotDelete))
	assert.True(t, errors.Is(f.svc.Delete(ctx, access.Scope{Role: access.RoleDoctor, UserID: 7}, pending.ID), ErrForbidden))
	require.NoError(t, f.svc.Delete(ctx, admin, pending.ID))
	_, err = f.repo.GetByID(ctx, pending.ID)
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestDeletePendingReleasesOffer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.offers.On("Apply", mock.Anything, int64(4), 100.0).
		Return(&offer.ApplyResult{OfferID: 4, Amount: 100, Discount: 20, FinalAmount: 80}, nil)
	f.offers.On("Release", mock.Anything, int64(4)).Return(nil).Once()

	req := request("2025-06-03", "09:00")
	req.OfferID = i64(4)
	pending, err := f.svc.Create(ctx, admin, req)
	require.NoError(t, err)
	req = request("2025-06-03", "09:30")
	req.OfferID = i64(4)
	cancelled, err := f.svc.Create(ctx, admin, req)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, cancelled.ID, &UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, admin, pending.ID))
	require.NoError(t, f.svc.Delete(ctx, admin, cancelled.ID))
	f.offers.AssertNumberOfCalls(t, "Release", 1)
	f.offers.AssertExpectations(t)
}

func TestAvailableSlots(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, admin, request("2025-06-03", "09:00"))
	require.NoError(t, err)

	res, err := f.svc.AvailableSlots(ctx, 1, "2025-06-03", nil)
	require.NoError(t, err)
	assert.Len(t, res.Slots, 16)
	assert.Equal(t, []string{"09:00"}, res.Booked)
	assert.Len(t, res.Available, 15)
	assert.NotContains(t, res.Available, "09:00")

	today, err := f.svc.AvailableSlots(ctx, 1, "2025-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, "10:30", today.Available[0])

	closed, err := f.svc.AvailableSlots(ctx, 3, "2025-06-03", nil)
	require.NoError(t, err)
	assert.True(t, closed.Closed)
	assert.Empty(t, closed.Available)

	_, err = f.svc.AvailableSlots(ctx, 1, "2025-06-03", i64(8))
	assert.True(t, errors.Is(err, ErrDoctorBranchMismatch))
}

var fahad = access.Scope{Role: access.RoleCustomer, UserID: 1}

func TestCustomerCancelLeadTime(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	soon, err := f.svc.CustomerCreate(ctx, fahad, 1, &CustomerBookingRequest{
		BranchID: 1, AnimalID: 10, VaccinationID: 5, AppointmentDate: "2025-06-02", AppointmentTime: "09:30",
	})
	require.NoError(t, err)
	exact, err := f.svc.CustomerCreate(ctx, fahad, 1, &CustomerBookingRequest{
		BranchID: 1, AnimalID: 10, VaccinationID: 5, AppointmentDate: "2025-06-02", AppointmentTime: "10:00",
	})
	require.NoError(t, err)
	assert.Nil(t, exact.CreatedBy)

	_, err = f.svc.CustomerCancel(ctx, fahad, 1, soon.ID, "")
	assert.True(t, errors.Is(err, ErrTooLateToCancel))

	// one minute inside the window
	f.svc.now = func() time.Time { return testNow.Add(time.Minute) }
	_, err = f.svc.CustomerCancel(ctx, fahad, 1, exact.ID, "")
	assert.True(t, errors.Is(err, ErrTooLateToCancel))

	// exactly 24h ahead
	f.svc.now = func() time.Time { return testNow }
	got, err := f.svc.CustomerCancel(ctx, fahad, 1, exact.ID, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, "Cancelled by customer", got.CancelReason)

	_, err = f.svc.CustomerCancel(ctx, fahad, 2, soon.ID, "")
	assert.True(t, errors.Is(err, ErrBookingNotFound))

	list, total, err := f.svc.CustomerList(ctx, fahad, 1, ListFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestCustomerRoutesKeepStaffScope(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	staff := access.Scope{Role: access.RoleStaff, UserID: 3, BranchID: 1}

	second, err := f.svc.CustomerCreate(ctx, fahad, 1, &CustomerBookingRequest{
		BranchID: 2, AnimalID: 10, VaccinationID: 5, AppointmentDate: "2025-06-03", AppointmentTime: "09:00",
	})
	require.NoError(t, err)

	_, err = f.svc.CustomerCreate(ctx, staff, 1, &CustomerBookingRequest{
		BranchID: 2, AnimalID: 10, VaccinationID: 5, AppointmentDate: "2025-06-03", AppointmentTime: "09:30",
	})
	assert.True(t, errors.Is(err, ErrForbidden))

	own, err := f.svc.CustomerCreate(ctx, staff, 1, &CustomerBookingRequest{
		BranchID: 1, AnimalID: 10, VaccinationID: 5, AppointmentDate: "2025-06-03", AppointmentTime: "09:30",
	})
	require.NoError(t, err)
	require.NotNil(t, own.CreatedBy)
	assert.Equal(t, int64(3), *own.CreatedBy)

	list, total, err := f.svc.CustomerList(ctx, staff, 1, ListFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, own.ID, list[0].ID)

	_, err = f.svc.CustomerGet(ctx, staff, 1, second.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
	_, err = f.svc.CustomerCancel(ctx, staff, 1, second.ID, "")
	assert.True(t, errors.Is(err, ErrForbidden))

	_, total, err = f.svc.CustomerList(ctx, fahad, 1, ListFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSendRemindersOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, admin, request("2025-06-02", "09:00"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin, request("2025-06-02", "09:30"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, admin, b.ID, &UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	n, err := f.svc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.svc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	types := f.events.types()
	assert.Equal(t, notification.TypeBookingReminder, types[len(types)-1])
}
