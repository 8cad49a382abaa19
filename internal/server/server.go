// Package server wires repositories, services and handlers into the HTTP engine.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"vetclinic/internal/config"
	"vetclinic/internal/domain/auth"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/consultation"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/dashboard"
	"vetclinic/internal/domain/notification"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
	"vetclinic/internal/pkg/jwt"
	"vetclinic/internal/pkg/sequence"
	"vetclinic/internal/pkg/whatsapp"
	"vetclinic/internal/scheduler"
)

const eventQueueSize = 256

// Models lists every table the application owns, in dependency order.
func Models() []any {
	return []any{
		&sequence.Sequence{},
		&branch.Branch{},
		&user.User{},
		&user.Review{},
		&customer.Customer{},
		&customer.Animal{},
		&vaccination.Vaccination{},
		&offer.Offer{},
		&booking.Booking{},
		&consultation.Consultation{},
		&notification.Notification{},
		&notification.Recipient{},
	}
}

type handlers struct {
	auth         *auth.Handler
	branch       *branch.Handler
	customer     *customer.Handler
	vaccination  *vaccination.Handler
	user         *user.Handler
	offer        *offer.Handler
	booking      *booking.Handler
	consultation *consultation.Handler
	dashboard    *dashboard.Handler
	notification *notification.Handler
}

type Server struct {
	Engine *gin.Engine

	Tokens        *jwt.Service
	Hub           *notification.Hub
	Dispatcher    *notification.Dispatcher
	Notifications *notification.Service
	Bookings      *booking.Service
	Scheduler     *scheduler.Scheduler

	db  *gorm.DB
	log zerolog.Logger
}

// New builds the application. Background workers start with Start.
func New(cfg *config.Config, db *gorm.DB, sender whatsapp.Sender, log zerolog.Logger) *Server {
	loc := cfg.Location()
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL).WithCustomerTTL(cfg.CustomerTokenTTL)

	hub := notification.NewHub()
	notifications := notification.NewService(notification.NewRepository(db), hub, sender, log)
	dispatcher := notification.NewDispatcher(notifications, eventQueueSize, log)

	branches := branch.NewService(branch.NewRepository(db))
	customers := customer.NewService(customer.NewRepository(db))
	vaccinations := vaccination.NewService(vaccination.NewRepository(db))
	users := user.NewService(user.NewRepository(db), branches)
	offers := offer.NewService(offer.NewRepository(db), loc)

	bookings := booking.NewService(booking.NewRepository(db), booking.Deps{
		Customers:    customers,
		Branches:     branches,
		Vaccinations: vaccinations,
		Doctors:      users,
		Offers:       offers,
		Events:       dispatcher,
	}, booking.Settings{
		Location:    loc,
		SlotMinutes: cfg.SlotDurationMinutes,
		CancelLead:  cfg.CancelLeadTime,
	}, log)
	consultations := consultation.NewService(consultation.NewRepository(db), customers, users, dispatcher, loc, log)
	reports := dashboard.NewService(dashboard.NewRepository(db), bookings, loc)

	h := handlers{
		auth:         auth.NewHandler(auth.NewService(users, customers, tokens)),
		branch:       branch.NewHandler(branches),
		customer:     customer.NewHandler(customers),
		vaccination:  vaccination.NewHandler(vaccinations, customers),
		user:         user.NewHandler(users),
		offer:        offer.NewHandler(offers),
		booking:      booking.NewHandler(bookings),
		consultation: consultation.NewHandler(consultations),
		dashboard:    dashboard.NewHandler(reports),
		notification: notification.NewHandler(notifications, hub, tokens),
	}

	s := &Server{
		Tokens:        tokens,
		Hub:           hub,
		Dispatcher:    dispatcher,
		Notifications: notifications,
		Bookings:      bookings,
		db:            db,
		log:           log,
	}
	if cfg.SchedulerEnabled {
		retention := time.Duration(cfg.NotificationRetentionDays) * 24 * time.Hour
		s.Scheduler = scheduler.New(loc, notifications, bookings, retention, log)
	}
	s.Engine = newRouter(cfg, db, tokens, h, log)
	return s
}

// Start launches the event dispatcher and, when enabled, the scheduler.
func (s *Server) Start() error {
	s.Dispatcher.Start()
	if s.Scheduler != nil {
		return s.Scheduler.Start()
	}
	return nil
}

// Stop halts the scheduler and drains queued events until ctx is done.
func (s *Server) Stop(ctx context.Context) {
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	done := make(chan struct{})
	go func() {
		s.Dispatcher.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("event queue not drained before shutdown deadline")
	}
}
