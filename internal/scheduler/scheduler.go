// Package scheduler runs the periodic notification and reminder jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

const jobTimeout = 2 * time.Minute

type Notifications interface {
	DispatchDue(ctx context.Context) (int, error)
	CleanupOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type Reminders interface {
	SendReminders(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron          *gocron.Scheduler
	notifications Notifications
	reminders     Reminders
	retention     time.Duration
	log           zerolog.Logger
}

func New(loc *time.Location, notifications Notifications, reminders Reminders, retention time.Duration, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:          gocron.NewScheduler(loc),
		notifications: notifications,
		reminders:     reminders,
		retention:     retention,
		log:           log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the jobs and runs them in the background. Jobs never overlap with themselves.
func (s *Scheduler) Start() error {
	s.cron.SingletonModeAll()

	if _, err := s.cron.Every(1).Minute().Tag("notifications").Do(s.DispatchDue); err != nil {
		return err
	}
	if _, err := s.cron.Every(1).Hour().Tag("reminders").Do(s.SendReminders); err != nil {
		return err
	}
	if _, err := s.cron.Every(1).Day().At("03:00").Tag("cleanup").Do(s.Cleanup); err != nil {
		return err
	}

	s.cron.StartAsync()
	s.log.Info().Int("jobs", len(s.cron.Jobs())).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// DispatchDue sends scheduled notifications whose time has come.
func (s *Scheduler) DispatchDue() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.notifications.DispatchDue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("dispatch due notifications failed")
		return
	}
	if n > 0 {
		s.log.Info().Int("sent", n).Msg("scheduled notifications dispatched")
	}
}

// SendReminders notifies customers about tomorrow's confirmed bookings.
func (s *Scheduler) SendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.reminders.SendReminders(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("booking reminders failed")
		return
	}
	s.log.Info().Int("sent", n).Msg("booking reminders sent")
}

func (s *Scheduler) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.notifications.CleanupOlderThan(ctx, s.retention)
	if err != nil {
		s.log.Error().Err(err).Msg("notification cleanup failed")
		return
	}
	s.log.Info().Int64("deleted", n).Dur("retention", s.retention).Msg("old notifications removed")
}
