package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
)

type CustomerDirectory interface {
	GetAnimal(ctx context.Context, customerID, animalID int64) (*customer.Customer, *customer.Animal, error)
	RecordBooking(ctx context.Context, customerID int64, at time.Time) error
}

type BranchDirectory interface {
	GetActive(ctx context.Context, id int64) (*branch.Branch, error)
}

type VaccinationCatalog interface {
	GetActive(ctx context.Context, id int64) (*vaccination.Vaccination, error)
}

type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id int64) (*user.User, error)
}

type OfferApplier interface {
	Apply(ctx context.Context, id int64, amount float64) (*offer.ApplyResult, error)
	Release(ctx context.Context, id int64) error
}

type EventPublisher interface {
	Publish(e notification.Event)
}

type Deps struct {
	Customers    CustomerDirectory
	Branches     BranchDirectory
	Vaccinations VaccinationCatalog
	Doctors      DoctorDirectory
	Offers       OfferApplier
	Events       EventPublisher
}

// Settings are the clinic-wide booking rules.
type Settings struct {
	Location    *time.Location
	SlotMinutes int
	CancelLead  time.Duration
}

type Service struct {
	repo     *Repository
	deps     Deps
	settings Settings
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo *Repository, deps Deps, settings Settings, log zerolog.Logger) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.SlotMinutes <= 0 {
		settings.SlotMinutes = 30
	}
	return &Service{repo: repo, deps: deps, settings: settings, log: log, now: time.Now}
}

type createInput struct {
	customerID    int64
	branchID      int64
	doctorID      *int64
	animalID      int64
	vaccinationID int64
	date          string
	at            string
	offerID       *int64
	paymentMethod string
	notes         string
	createdBy     *int64
}

// Create books an appointment from the dashboard.
func (s *Service) Create(ctx context.Context, scope access.Scope, req *CreateBookingRequest) (*Booking, error) {
	if !scope.AllowsBranch(req.BranchID) {
		return nil, ErrForbidden
	}
	actor := scope.UserID
	return s.create(ctx, createInput{
		customerID:    req.CustomerID,
		branchID:      req.BranchID,
		doctorID:      req.DoctorID,
		animalID:      req.AnimalID,
		vaccinationID: req.VaccinationID,
		date:          req.AppointmentDate,
		at:            req.AppointmentTime,
		offerID:       req.OfferID,
		paymentMethod: req.PaymentMethod,
		notes:         req.Notes,
		createdBy:     &actor,
	})
}

// CustomerCreate books an appointment from the mobile app, or for a customer at the desk.
func (s *Service) CustomerCreate(ctx context.Context, scope access.Scope, customerID int64, req *CustomerBookingRequest) (*Booking, error) {
	var createdBy *int64
	if !scope.IsCustomer() {
		if !scope.AllowsBranch(req.BranchID) {
			return nil, ErrForbidden
		}
		actor := scope.UserID
		createdBy = &actor
	}
	return s.create(ctx, createInput{
		customerID:    customerID,
		branchID:      req.BranchID,
		doctorID:      req.DoctorID,
		animalID:      req.AnimalID,
		vaccinationID: req.VaccinationID,
		date:          req.AppointmentDate,
		at:            req.AppointmentTime,
		offerID:       req.OfferID,
		notes:         req.Notes,
		createdBy:     createdBy,
	})
}

func (s *Service) create(ctx context.Context, in createInput) (*Booking, error) {
	b, err := s.deps.Branches.GetActive(ctx, in.branchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlot(b, in.date, in.at); err != nil {
		return nil, err
	}

	c, animal, err := s.deps.Customers.GetAnimal(ctx, in.customerID, in.animalID)
	if err != nil {
		return nil, err
	}
	if !c.Active() {
		return nil, customer.ErrCustomerInactive
	}

	v, err := s.deps.Vaccinations.GetActive(ctx, in.vaccinationID)
	if err != nil {
		return nil, err
	}
	if !v.Applies(string(animal.Type), animal.Age) {
		return nil, ErrNotApplicable
	}

	if in.doctorID != nil {
		if err := s.checkDoctor(ctx, *in.doctorID, b.ID); err != nil {
			return nil, err
		}
	}

	taken, err := s.repo.SlotTaken(ctx, b.ID, in.date, in.at, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotBooked
	}

	heads := animal.Count
	if heads < 1 {
		heads = 1
	}
	price := round2(v.Price * float64(heads))

	bk := &Booking{
		CustomerID:      c.ID,
		CustomerName:    c.Name,
		CustomerPhone:   c.Phone,
		BranchID:        b.ID,
		DoctorID:        in.doctorID,
		Animal:          snapshotAnimal(animal),
		Vaccination:     snapshotVaccination(v),
		AppointmentDate: in.date,
		AppointmentTime: in.at,
		Status:          StatusPending,
		Price:           price,
		TotalAmount:     price,
		PaymentMethod:   in.paymentMethod,
		Notes:           strings.TrimSpace(in.notes),
		CreatedBy:       in.createdBy,
	}

	if in.offerID != nil {
		res, err := s.deps.Offers.Apply(ctx, *in.offerID, price)
		if err != nil {
			return nil, err
		}
		bk.OfferID = in.offerID
		bk.Discount = res.Discount
		bk.TotalAmount = res.FinalAmount
	}

	if err := s.repo.Create(ctx, bk); err != nil {
		if bk.OfferID != nil {
			if rerr := s.deps.Offers.Release(ctx, *bk.OfferID); rerr != nil {
				s.log.Error().Err(rerr).Int64("offer_id", *bk.OfferID).Msg("offer release failed")
			}
		}
		return nil, err
	}

	if err := s.deps.Customers.RecordBooking(ctx, c.ID, bk.CreatedAt); err != nil {
		s.log.Warn().Err(err).Int64("customer_id", c.ID).Msg("customer booking counter not updated")
	}
	s.publish(createdEvent(bk))
	return bk, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Booking, int64, error) {
	return s.repo.List(ctx, scope, f)
}

// Export lists every booking in scope matching f, for spreadsheet export.
func (s *Service) Export(ctx context.Context, scope access.Scope, f ListFilter) ([]Booking, error) {
	return s.repo.Export(ctx, scope, f)
}

func (s *Service) Get(ctx context.Context, scope access.Scope, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(b.BranchID, b.DoctorID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Update edits a booking. Doctors may only change notes; completed bookings are frozen.
func (s *Service) Update(ctx context.Context, scope access.Scope, id int64, req *UpdateBookingRequest) (*Booking, error) {
	b, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCompleted {
		return nil, ErrBookingCompleted
	}
	if scope.IsDoctor() && !req.onlyNotes() {
		return nil, ErrDoctorNotesOnly
	}

	moved := false
	if req.BranchID != nil && *req.BranchID != b.BranchID {
		if !scope.AllowsBranch(*req.BranchID) {
			return nil, ErrForbidden
		}
		b.BranchID = *req.BranchID
		moved = true
	}
	if req.AppointmentDate != nil && *req.AppointmentDate != b.AppointmentDate {
		b.AppointmentDate = *req.AppointmentDate
		moved = true
	}
	if req.AppointmentTime != nil && *req.AppointmentTime != b.AppointmentTime {
		b.AppointmentTime = *req.AppointmentTime
		moved = true
	}

	if moved {
		if b.Status == StatusCancelled {
			return nil, ErrBookingCancelled
		}
		br, err := s.deps.Branches.GetActive(ctx, b.BranchID)
		if err != nil {
			return nil, err
		}
		if err := s.checkSlot(br, b.AppointmentDate, b.AppointmentTime); err != nil {
			return nil, err
		}
		taken, err := s.repo.SlotTaken(ctx, b.BranchID, b.AppointmentDate, b.AppointmentTime, b.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotBooked
		}
		// a moved booking gets a fresh reminder
		b.ReminderSentAt = nil
	}

	if req.DoctorID != nil {
		if err := s.checkDoctor(ctx, *req.DoctorID, b.BranchID); err != nil {
			return nil, err
		}
		b.DoctorID = req.DoctorID
	} else if moved && b.DoctorID != nil {
		if err := s.checkDoctor(ctx, *b.DoctorID, b.BranchID); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		b.Price = round2(*req.Price)
		b.TotalAmount = round2(math.Max(0, b.Price-b.Discount))
	}
	if req.Paid != nil {
		b.Paid = *req.Paid
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		b.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus runs a dashboard status change. Cancelling requires a reason.
func (s *Service) UpdateStatus(ctx context.Context, scope access.Scope, id int64, req *UpdateStatusRequest) (*Booking, error) {
	b, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	to := Status(req.Status)
	reason := strings.TrimSpace(req.CancelReason)
	if to == StatusCancelled && reason == "" {
		return nil, ErrCancelReasonRequired
	}
	if err := b.ApplyStatus(to, reason, s.now()); err != nil {
		return nil, err
	}
	if to == StatusCompleted {
		if req.Paid != nil {
			b.Paid = *req.Paid
		}
		if req.PaymentMethod != "" {
			b.PaymentMethod = req.PaymentMethod
		}
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.publish(statusEvent(b))
	return b, nil
}

// Delete removes a pending or cancelled booking.
func (s *Service) Delete(ctx context.Context, scope access.Scope, id int64) error {
	if scope.IsDoctor() {
		return ErrForbidden
	}
	b, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if b.Status != StatusPending && b.Status != StatusCancelled {
		return ErrCannotDelete
	}
	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return err
	}
	// Deleting a pending booking returns its offer use; a cancelled one keeps it.
	if b.Status == StatusPending && b.OfferID != nil {
		if err := s.deps.Offers.Release(ctx, *b.OfferID); err != nil {
			s.log.Error().Err(err).Int64("offer_id", *b.OfferID).Msg("offer release failed")
		}
	}
	return nil
}

// AvailableSlots lists the free start times of a branch on a date.
// A closed day yields no slots. Past times of today are not offered.
func (s *Service) AvailableSlots(ctx context.Context, branchID int64, date string, doctorID *int64) (*Availability, error) {
	b, err := s.deps.Branches.GetActive(ctx, branchID)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, s.settings.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if doctorID != nil {
		if err := s.checkDoctor(ctx, *doctorID, b.ID); err != nil {
			return nil, err
		}
	}

	res := &Availability{
		BranchID:  b.ID,
		DoctorID:  doctorID,
		Date:      date,
		Slots:     []string{},
		Booked:    []string{},
		Available: []string{},
	}
	if !b.OpenOn(day.Weekday()) {
		res.Closed = true
		return res, nil
	}

	slots, err := GenerateSlots(b.WorkingHours.Start, b.WorkingHours.End, s.settings.SlotMinutes)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.BookedTimes(ctx, b.ID, date)
	if err != nil {
		return nil, err
	}

	available := subtract(slots, booked)
	local := s.now().In(s.settings.Location)
	if date == local.Format("2006-01-02") {
		cut := formatClock(local.Hour()*60 + local.Minute())
		kept := available[:0]
		for _, t := range available {
			if t > cut {
				kept = append(kept, t)
			}
		}
		available = kept
	}

	res.Slots = slots
	res.Booked = append(res.Booked, booked...)
	res.Available = available
	return res, nil
}

// CustomerList returns the customer's own bookings.
func (s *Service) CustomerList(ctx context.Context, scope access.Scope, customerID int64, f ListFilter) ([]Booking, int64, error) {
	f.CustomerID = &customerID
	f.BranchID, f.DoctorID = nil, nil
	return s.repo.List(ctx, scope.SelfService(), f)
}

func (s *Service) CustomerGet(ctx context.Context, scope access.Scope, customerID, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrBookingNotFound
	}
	if !scope.SelfService().Allows(b.BranchID, b.DoctorID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// CustomerCancel cancels the customer's own booking at least CancelLead before the appointment.
func (s *Service) CustomerCancel(ctx context.Context, scope access.Scope, customerID, id int64, reason string) (*Booking, error) {
	b, err := s.CustomerGet(ctx, scope, customerID, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(b.Status, StatusCancelled); err != nil {
		return nil, err
	}
	at, err := b.AppointmentAt(s.settings.Location)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := CancellableByCustomer(at, now, s.settings.CancelLead); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}
	if err := b.ApplyStatus(StatusCancelled, reason, now); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.publish(statusEvent(b))
	return b, nil
}

// SendReminders notifies customers of tomorrow's confirmed bookings, once per booking.
func (s *Service) SendReminders(ctx context.Context) (int, error) {
	now := s.now()
	tomorrow := now.In(s.settings.Location).AddDate(0, 0, 1).Format("2006-01-02")
	due, err := s.repo.DueReminders(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		ok, err := s.repo.MarkReminded(ctx, due[i].ID, now)
		if err != nil {
			s.log.Error().Err(err).Int64("booking_id", due[i].ID).Msg("reminder not recorded")
			continue
		}
		if !ok {
			continue
		}
		s.publish(reminderEvent(&due[i]))
		sent++
	}
	return sent, nil
}

// checkSlot validates the wall-clock slot against the branch calendar and the current time.
func (s *Service) checkSlot(b *branch.Branch, date, at string) error {
	day, err := time.ParseInLocation("2006-01-02", date, s.settings.Location)
	if err != nil {
		return ErrInvalidDate
	}
	if !b.OpenOn(day.Weekday()) {
		return ErrBranchClosed
	}
	if _, err := parseClock(at); err != nil {
		return err
	}
	if at < b.WorkingHours.Start || at >= b.WorkingHours.End {
		return ErrOutsideWorkingHours
	}
	slots, err := GenerateSlots(b.WorkingHours.Start, b.WorkingHours.End, s.settings.SlotMinutes)
	if err != nil {
		return err
	}
	if !contains(slots, at) {
		return ErrInvalidSlot
	}

	when, err := time.ParseInLocation("2006-01-02 15:04", date+" "+at, s.settings.Location)
	if err != nil {
		return ErrInvalidDate
	}
	if !when.After(s.now()) {
		return ErrPastAppointment
	}
	return nil
}

func (s *Service) checkDoctor(ctx context.Context, doctorID, branchID int64) error {
	d, err := s.deps.Doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	if d.BranchID != nil && *d.BranchID != branchID {
		return ErrDoctorBranchMismatch
	}
	return nil
}

func (s *Service) publish(e notification.Event) {
	if s.deps.Events == nil {
		return
	}
	s.deps.Events.Publish(e)
}

func snapshotAnimal(a *customer.Animal) AnimalSnapshot {
	return AnimalSnapshot{
		ID:     a.ID,
		Name:   a.Name,
		Type:   string(a.Type),
		Age:    a.Age,
		Weight: a.Weight,
		Breed:  a.Breed,
		Count:  a.Count,
	}
}

func snapshotVaccination(v *vaccination.Vaccination) VaccinationSnapshot {
	return VaccinationSnapshot{
		ID:              v.ID,
		NameAr:          v.NameAr,
		NameEn:          v.NameEn,
		Price:           v.Price,
		Frequency:       string(v.Frequency),
		FrequencyMonths: v.FrequencyMonths,
		Duration:        v.Duration,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, customer.ErrCustomerNotFound) ||
		errors.Is(err, customer.ErrAnimalNotFound) ||
		errors.Is(err, branch.ErrBranchNotFound) ||
		errors.Is(err, vaccination.ErrVaccinationNotFound) ||
		errors.Is(err, user.ErrUserNotFound) ||
		errors.Is(err, offer.ErrOfferNotFound)
}
