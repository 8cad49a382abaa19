package consultation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/domain/user"
)

type CustomerDirectory interface {
	GetAnimal(ctx context.Context, customerID, animalID int64) (*customer.Customer, *customer.Animal, error)
}

type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id int64) (*user.User, error)
}

type EventPublisher interface {
	Publish(e notification.Event)
}

type Service struct {
	repo      *Repository
	customers CustomerDirectory
	doctors   DoctorDirectory
	events    EventPublisher
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(repo *Repository, customers CustomerDirectory, doctors DoctorDirectory, events EventPublisher, loc *time.Location, log zerolog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:      repo,
		customers: customers,
		doctors:   doctors,
		events:    events,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// Create schedules a consultation from the dashboard. Doctors may only schedule for themselves.
func (s *Service) Create(ctx context.Context, scope access.Scope, req *CreateConsultationRequest) (*Consultation, error) {
	if scope.IsDoctor() && req.DoctorID != scope.UserID {
		return nil, ErrForbidden
	}
	actor := scope.UserID
	c, err := s.create(ctx, req.CustomerID, req.AnimalID, req.DoctorID, Type(req.Type),
		req.ScheduledDate, req.ScheduledTime, &actor)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsBranch(c.BranchID) {
		return nil, ErrForbidden
	}
	if req.Duration > 0 {
		c.Duration = req.Duration
	}
	c.Reason = strings.TrimSpace(req.Reason)
	c.Price = round2(req.Price)
	c.Notes = strings.TrimSpace(req.Notes)
	return s.insert(ctx, c)
}

// CustomerCreate requests a consultation from the mobile app, or for a customer at the desk.
func (s *Service) CustomerCreate(ctx context.Context, scope access.Scope, customerID int64, req *CustomerConsultationRequest) (*Consultation, error) {
	var createdBy *int64
	if !scope.IsCustomer() {
		actor := scope.UserID
		createdBy = &actor
	}
	c, err := s.create(ctx, customerID, req.AnimalID, req.DoctorID, Type(req.Type),
		req.ScheduledDate, req.ScheduledTime, createdBy)
	if err != nil {
		return nil, err
	}
	if !scope.SelfService().AllowsBranch(c.BranchID) {
		return nil, ErrForbidden
	}
	c.Reason = strings.TrimSpace(req.Reason)
	return s.insert(ctx, c)
}

func (s *Service) create(ctx context.Context, customerID, animalID, doctorID int64, kind Type, date, at string, createdBy *int64) (*Consultation, error) {
	doctor, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	cust, animal, err := s.customers.GetAnimal(ctx, customerID, animalID)
	if err != nil {
		return nil, err
	}
	if !cust.Active() {
		return nil, customer.ErrCustomerInactive
	}
	if err := s.checkSchedule(ctx, doctor.ID, date, at, 0); err != nil {
		return nil, err
	}

	return &Consultation{
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		DoctorID:      doctor.ID,
		BranchID:      doctor.BranchRef(),
		Animal: AnimalSnapshot{
			ID:    animal.ID,
			Name:  animal.Name,
			Type:  string(animal.Type),
			Age:   animal.Age,
			Breed: animal.Breed,
			Count: animal.Count,
		},
		Type:          kind,
		ScheduledDate: date,
		ScheduledTime: at,
		Duration:      30,
		Status:        StatusScheduled,
		Medications:   []Medication{},
		CreatedBy:     createdBy,
	}, nil
}

func (s *Service) insert(ctx context.Context, c *Consultation) (*Consultation, error) {
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.publish(event(c, notification.TypeConsultationCreated, "Consultation scheduled",
		fmt.Sprintf("Consultation %s is scheduled for %s at %s.", c.ConsultationNumber, c.ScheduledDate, c.ScheduledTime)))
	return c, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope, f ListFilter) ([]Consultation, int64, error) {
	return s.repo.List(ctx, scope, f)
}

func (s *Service) Get(ctx context.Context, scope access.Scope, id int64) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(c.BranchID, c.doctorRef()) {
		return nil, ErrForbidden
	}
	return c, nil
}

// Update edits scheduling details. Doctors cannot reassign; completed consultations are frozen.
func (s *Service) Update(ctx context.Context, scope access.Scope, id int64, req *UpdateConsultationRequest) (*Consultation, error) {
	c, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusCompleted {
		return nil, ErrConsultationCompleted
	}

	moved := false
	if req.DoctorID != nil && *req.DoctorID != c.DoctorID {
		if scope.IsDoctor() {
			return nil, ErrForbidden
		}
		d, err := s.doctors.GetDoctor(ctx, *req.DoctorID)
		if err != nil {
			return nil, err
		}
		c.DoctorID = d.ID
		c.BranchID = d.BranchRef()
		moved = true
	}
	if req.ScheduledDate != nil && *req.ScheduledDate != c.ScheduledDate {
		c.ScheduledDate = *req.ScheduledDate
		moved = true
	}
	if req.ScheduledTime != nil && *req.ScheduledTime != c.ScheduledTime {
		c.ScheduledTime = *req.ScheduledTime
		moved = true
	}
	if moved {
		switch c.Status {
		case StatusCancelled:
			return nil, ErrConsultationCancelled
		case StatusInProgress:
			return nil, ErrAlreadyStarted
		}
		if err := s.checkSchedule(ctx, c.DoctorID, c.ScheduledDate, c.ScheduledTime, c.ID); err != nil {
			return nil, err
		}
	}

	if req.Type != nil {
		c.Type = Type(*req.Type)
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	if req.Reason != nil {
		c.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.Price != nil {
		c.Price = round2(*req.Price)
	}
	if req.Paid != nil {
		c.Paid = *req.Paid
	}
	if req.Notes != nil {
		c.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	if moved {
		s.publish(event(c, notification.TypeConsultationUpdated, "Consultation rescheduled",
			fmt.Sprintf("Consultation %s moved to %s at %s.", c.ConsultationNumber, c.ScheduledDate, c.ScheduledTime)))
	}
	return c, nil
}

// UpdateStatus runs a status change; the clinical outcome travels with completion only.
func (s *Service) UpdateStatus(ctx context.Context, scope access.Scope, id int64, req *UpdateStatusRequest) (*Consultation, error) {
	c, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	to := Status(req.Status)
	reason := strings.TrimSpace(req.CancelReason)
	if to == StatusCancelled && reason == "" {
		return nil, ErrCancelReasonRequired
	}
	if err := c.ApplyStatus(to, req.outcome(), reason, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publish(statusEvent(c))
	return c, nil
}

// Delete removes a scheduled or cancelled consultation.
func (s *Service) Delete(ctx context.Context, scope access.Scope, id int64) error {
	if scope.IsDoctor() {
		return ErrForbidden
	}
	c, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if c.Status != StatusScheduled && c.Status != StatusCancelled {
		return ErrCannotDelete
	}
	return s.repo.Delete(ctx, c.ID)
}

func (s *Service) CustomerList(ctx context.Context, scope access.Scope, customerID int64, f ListFilter) ([]Consultation, int64, error) {
	f.CustomerID = &customerID
	f.DoctorID = nil
	return s.repo.List(ctx, scope.SelfService(), f)
}

func (s *Service) CustomerGet(ctx context.Context, scope access.Scope, customerID, id int64) (*Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CustomerID != customerID {
		return nil, ErrConsultationNotFound
	}
	if !scope.SelfService().Allows(c.BranchID, c.doctorRef()) {
		return nil, ErrForbidden
	}
	return c, nil
}

// CustomerCancel cancels the customer's own consultation before it starts.
func (s *Service) CustomerCancel(ctx context.Context, scope access.Scope, customerID, id int64, reason string) (*Consultation, error) {
	c, err := s.CustomerGet(ctx, scope, customerID, id)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusInProgress {
		return nil, ErrAlreadyStarted
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Cancelled by customer"
	}
	if err := c.ApplyStatus(StatusCancelled, Outcome{}, reason, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publish(statusEvent(c))
	return c, nil
}

func (s *Service) checkSchedule(ctx context.Context, doctorID int64, date, at string, excludeID int64) error {
	when, err := time.ParseInLocation("2006-01-02 15:04", date+" "+at, s.loc)
	if err != nil {
		return ErrInvalidSchedule
	}
	if !when.After(s.now()) {
		return ErrPastSchedule
	}
	busy, err := s.repo.DoctorBusy(ctx, doctorID, date, at, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return ErrDoctorBusy
	}
	return nil
}

func (s *Service) publish(e notification.Event) {
	if s.events == nil {
		return
	}
	s.events.Publish(e)
}

func event(c *Consultation, kind, title, body string) notification.Event {
	return notification.Event{
		Type:        kind,
		Title:       title,
		Body:        body,
		UserIDs:     []int64{c.DoctorID},
		CustomerIDs: []int64{c.CustomerID},
		Data: map[string]any{
			"consultationId":     c.ID,
			"consultationNumber": c.ConsultationNumber,
			"scheduledDate":      c.ScheduledDate,
			"scheduledTime":      c.ScheduledTime,
			"status":             string(c.Status),
		},
		Channels: []notification.Channel{notification.ChannelInApp, notification.ChannelWhatsApp},
	}
}

func statusEvent(c *Consultation) notification.Event {
	switch c.Status {
	case StatusInProgress:
		e := event(c, notification.TypeConsultationUpdated, "Consultation started",
			fmt.Sprintf("Your doctor is starting consultation %s.", c.ConsultationNumber))
		e.UserIDs = nil
		return e
	case StatusCompleted:
		e := event(c, notification.TypeConsultationUpdated, "Consultation completed",
			fmt.Sprintf("Consultation %s is completed. Diagnosis: %s", c.ConsultationNumber, c.Diagnosis))
		e.UserIDs = nil
		return e
	default:
		return event(c, notification.TypeConsultationUpdated, "Consultation cancelled",
			fmt.Sprintf("Consultation %s was cancelled: %s", c.ConsultationNumber, c.CancelReason))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsNotFound reports whether err means a referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConsultationNotFound) ||
		errors.Is(err, customer.ErrCustomerNotFound) ||
		errors.Is(err, customer.ErrAnimalNotFound) ||
		errors.Is(err, user.ErrUserNotFound)
}
