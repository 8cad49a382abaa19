package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/whatsapp"
)

type Service struct {
	repo     *Repository
	hub      *Hub
	channels map[Channel]Deliverer
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(repo *Repository, hub *Hub, sender whatsapp.Sender, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		channels: map[Channel]Deliverer{
			ChannelInApp:    inApp{hub: hub},
			ChannelWhatsApp: whatsApp{sender: sender, phones: repo},
		},
		log: log,
		now: time.Now,
	}
}

// Create stores a draft, or a scheduled notification when ScheduledAt is in the future.
// SendNow delivers it immediately.
func (s *Service) Create(ctx context.Context, actorID int64, req *CreateNotificationRequest) (*Notification, error) {
	target := Target(req.Target)
	if err := validateTarget(target, req.UserIDs, req.CustomerIDs); err != nil {
		return nil, err
	}
	channels, err := parseChannels(req.Channels)
	if err != nil {
		return nil, err
	}

	n := &Notification{
		Type:              strings.TrimSpace(req.Type),
		Title:             strings.TrimSpace(req.Title),
		Body:              req.Body,
		Target:            target,
		TargetUserIDs:     req.UserIDs,
		TargetCustomerIDs: req.CustomerIDs,
		Channels:          channels,
		Status:            StatusDraft,
	}
	if n.Type == "" {
		n.Type = TypeAnnouncement
	}
	if actorID > 0 {
		n.CreatedBy = &actorID
	}
	if req.ScheduledAt != nil && req.ScheduledAt.After(s.now()) && !req.SendNow {
		at := req.ScheduledAt.UTC()
		n.ScheduledAt = &at
		n.Status = StatusScheduled
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if req.SendNow {
		return s.Send(ctx, n.ID)
	}
	return n, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Notification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Notification, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Send resolves the audience and delivers on every channel.
// The result is sent when at least one channel succeeded, failed otherwise.
func (s *Service) Send(ctx context.Context, id int64) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.Sendable() {
		return nil, ErrNotSendable
	}

	n.Status = StatusSending
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}

	to, err := s.resolve(ctx, n)
	if err == nil && len(to) == 0 {
		err = ErrNoRecipients
	}
	if err == nil {
		err = s.repo.AddRecipients(ctx, n.ID, to)
	}
	if err != nil {
		return s.finish(ctx, n, 0, err)
	}

	now := s.now()
	n.SentAt = &now

	var failures []string
	for _, ch := range n.Channels {
		d, ok := s.channels[ch]
		if !ok {
			failures = append(failures, fmt.Sprintf("%s: unsupported", ch))
			continue
		}
		if err := d.Deliver(ctx, n, to); err != nil {
			s.log.Warn().Err(err).Int64("notification_id", n.ID).Str("channel", string(ch)).Msg("notification channel failed")
			failures = append(failures, fmt.Sprintf("%s: %v", ch, err))
		}
	}

	if len(failures) == len(n.Channels) {
		n.SentAt = nil
		return s.finish(ctx, n, len(to), errors.New(strings.Join(failures, "; ")))
	}
	n.FailureReason = strings.Join(failures, "; ")
	return s.finish(ctx, n, len(to), nil)
}

func (s *Service) finish(ctx context.Context, n *Notification, recipients int, cause error) (*Notification, error) {
	n.RecipientCount = recipients
	if cause != nil {
		n.Status = StatusFailed
		n.FailureReason = cause.Error()
	} else {
		n.Status = StatusSent
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Deliver stores and sends a clinic-generated event to its identities.
func (s *Service) Deliver(ctx context.Context, e Event) (*Notification, error) {
	channels := e.Channels
	if len(channels) == 0 {
		channels = []Channel{ChannelInApp}
	}
	n := &Notification{
		Type:              e.Type,
		Title:             e.Title,
		Body:              e.Body,
		Data:              e.Data,
		Target:            TargetSpecific,
		TargetUserIDs:     e.UserIDs,
		TargetCustomerIDs: e.CustomerIDs,
		Channels:          channels,
		Status:            StatusDraft,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return s.Send(ctx, n.ID)
}

// DispatchDue sends every scheduled notification whose time has passed.
func (s *Service) DispatchDue(ctx context.Context) (int, error) {
	due, err := s.repo.DueScheduled(ctx, s.now())
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, n := range due {
		res, err := s.Send(ctx, n.ID)
		if err != nil {
			s.log.Error().Err(err).Int64("notification_id", n.ID).Msg("scheduled notification failed")
			continue
		}
		if res.Status == StatusSent {
			sent++
		}
	}
	return sent, nil
}

func (s *Service) Inbox(ctx context.Context, who Identity, page, limit int) (*InboxResponse, error) {
	items, total, err := s.repo.Inbox(ctx, who, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(ctx, who)
	if err != nil {
		return nil, err
	}
	return &InboxResponse{Items: items, UnreadCount: unread, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) UnreadCount(ctx context.Context, who Identity) (int64, error) {
	return s.repo.UnreadCount(ctx, who)
}

func (s *Service) MarkRead(ctx context.Context, id int64, who Identity) error {
	if err := s.repo.MarkRead(ctx, id, who, s.now()); err != nil {
		return err
	}
	s.pushUnread(ctx, who)
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, who Identity) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, who, s.now())
	if err != nil {
		return 0, err
	}
	s.pushUnread(ctx, who)
	return n, nil
}

// pushUnread keeps other open sessions of who in sync.
func (s *Service) pushUnread(ctx context.Context, who Identity) {
	if s.hub == nil || !s.hub.Online(who) {
		return
	}
	count, err := s.repo.UnreadCount(ctx, who)
	if err != nil {
		return
	}
	s.hub.Push([]Identity{who}, &WSEvent{Type: EventUnreadCount, Payload: map[string]int64{"count": count}})
}

func (s *Service) resolve(ctx context.Context, n *Notification) ([]Identity, error) {
	var out []Identity
	addUsers := func(ids []int64) {
		for _, id := range ids {
			out = append(out, Identity{Kind: KindUser, ID: id})
		}
	}
	addCustomers := func(ids []int64) {
		for _, id := range ids {
			out = append(out, Identity{Kind: KindCustomer, ID: id})
		}
	}

	switch n.Target {
	case TargetAll:
		users, err := s.repo.ActiveUserIDs(ctx)
		if err != nil {
			return nil, err
		}
		customers, err := s.repo.ActiveCustomerIDs(ctx)
		if err != nil {
			return nil, err
		}
		addUsers(users)
		addCustomers(customers)
	case TargetCustomers:
		customers, err := s.repo.ActiveCustomerIDs(ctx)
		if err != nil {
			return nil, err
		}
		addCustomers(customers)
	case TargetStaff, TargetDoctors, TargetAdmins:
		users, err := s.repo.ActiveUserIDs(ctx, roleFor(n.Target))
		if err != nil {
			return nil, err
		}
		addUsers(users)
	case TargetSpecific:
		addUsers(n.TargetUserIDs)
		addCustomers(n.TargetCustomerIDs)
	default:
		return nil, ErrInvalidTarget
	}
	return dedupe(out), nil
}

func roleFor(t Target) string {
	switch t {
	case TargetDoctors:
		return access.RoleDoctor
	case TargetAdmins:
		return access.RoleAdmin
	default:
		return access.RoleStaff
	}
}

func validateTarget(t Target, userIDs, customerIDs []int64) error {
	switch t {
	case TargetAll, TargetCustomers, TargetStaff, TargetDoctors, TargetAdmins:
		return nil
	case TargetSpecific:
		if len(userIDs) == 0 && len(customerIDs) == 0 {
			return ErrTargetIDsRequired
		}
		return nil
	}
	return ErrInvalidTarget
}

func parseChannels(in []string) ([]Channel, error) {
	if len(in) == 0 {
		return []Channel{ChannelInApp}, nil
	}
	seen := make(map[Channel]bool, len(in))
	out := make([]Channel, 0, len(in))
	for _, raw := range in {
		ch := Channel(strings.TrimSpace(raw))
		if ch != ChannelInApp && ch != ChannelWhatsApp {
			return nil, ErrInvalidChannel
		}
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	return out, nil
}

func dedupe(in []Identity) []Identity {
	seen := make(map[Identity]bool, len(in))
	out := make([]Identity, 0, len(in))
	for _, who := range in {
		if !seen[who] {
			seen[who] = true
			out = append(out, who)
		}
	}
	return out
}
