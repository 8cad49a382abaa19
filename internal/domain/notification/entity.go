package notification

import (
	"fmt"
	"time"
)

type Target string

const (
	TargetAll       Target = "all"
	TargetCustomers Target = "customers"
	TargetStaff     Target = "staff"
	TargetDoctors   Target = "doctors"
	TargetAdmins    Target = "admins"
	TargetSpecific  Target = "specific"
)

type Channel string

const (
	ChannelInApp    Channel = "in_app"
	ChannelWhatsApp Channel = "whatsapp"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
)

// Type values for notifications raised by the clinic itself.
const (
	TypeAnnouncement        = "announcement"
	TypeBookingCreated      = "booking_created"
	TypeBookingConfirmed    = "booking_confirmed"
	TypeBookingCancelled    = "booking_cancelled"
	TypeBookingCompleted    = "booking_completed"
	TypeBookingReminder     = "booking_reminder"
	TypeConsultationCreated = "consultation_created"
	TypeConsultationUpdated = "consultation_updated"
)

// Kind separates the two identity spaces; user and customer ids overlap.
type Kind string

const (
	KindUser     Kind = "user"
	KindCustomer Kind = "customer"
)

// Identity is one addressable recipient.
type Identity struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
}

func (i Identity) Key() string { return fmt.Sprintf("%s:%d", i.Kind, i.ID) }

// IdentityFor maps a token role to the identity space it belongs to.
func IdentityFor(role string, id int64) Identity {
	if role == "customer" {
		return Identity{Kind: KindCustomer, ID: id}
	}
	return Identity{Kind: KindUser, ID: id}
}

type Notification struct {
	ID                int64          `gorm:"primaryKey" json:"id"`
	Type              string         `gorm:"size:50;not null;default:'announcement';index" json:"type"`
	Title             string         `gorm:"size:255;not null" json:"title"`
	Body              string         `gorm:"type:text;not null" json:"body"`
	Data              map[string]any `gorm:"serializer:json;type:text" json:"data,omitempty"`
	Target            Target         `gorm:"size:20;not null" json:"target"`
	TargetUserIDs     []int64        `gorm:"serializer:json;type:text" json:"targetUserIds,omitempty"`
	TargetCustomerIDs []int64        `gorm:"serializer:json;type:text" json:"targetCustomerIds,omitempty"`
	Channels          []Channel      `gorm:"serializer:json;type:text" json:"channels"`
	Status            Status         `gorm:"size:20;not null;index" json:"status"`
	ScheduledAt       *time.Time     `gorm:"index" json:"scheduledAt,omitempty"`
	SentAt            *time.Time     `json:"sentAt,omitempty"`
	FailureReason     string         `gorm:"type:text" json:"failureReason,omitempty"`
	RecipientCount    int            `gorm:"not null;default:0" json:"recipientCount"`
	CreatedBy         *int64         `json:"createdBy,omitempty"`
	Recipients        []Recipient    `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

// Recipient is the delivery and read receipt of one identity.
type Recipient struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	NotificationID int64      `gorm:"not null;uniqueIndex:idx_notification_recipient" json:"notificationId"`
	Kind           Kind       `gorm:"size:10;not null;uniqueIndex:idx_notification_recipient;index:idx_recipient_inbox" json:"kind"`
	RecipientID    int64      `gorm:"not null;uniqueIndex:idx_notification_recipient;index:idx_recipient_inbox" json:"recipientId"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (Recipient) TableName() string { return "notification_recipients" }

func (r *Recipient) Identity() Identity { return Identity{Kind: r.Kind, ID: r.RecipientID} }

// IsReadBy reports whether who has a read receipt among the loaded recipients.
func (n *Notification) IsReadBy(who Identity) bool {
	for _, r := range n.Recipients {
		if r.Identity() == who {
			return r.ReadAt != nil
		}
	}
	return false
}

// MarkRead stamps who's receipt once. It returns false when who is not a recipient.
func (n *Notification) MarkRead(who Identity, now time.Time) bool {
	for i := range n.Recipients {
		r := &n.Recipients[i]
		if r.Identity() != who {
			continue
		}
		if r.ReadAt == nil {
			r.ReadAt = &now
		}
		return true
	}
	return false
}

// Sendable reports whether Send may run from the current status.
func (n *Notification) Sendable() bool {
	switch n.Status {
	case StatusDraft, StatusScheduled, StatusFailed:
		return true
	}
	return false
}

func (n *Notification) HasChannel(ch Channel) bool {
	for _, c := range n.Channels {
		if c == ch {
			return true
		}
	}
	return false
}
