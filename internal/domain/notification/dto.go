package notification

import "time"

type CreateNotificationRequest struct {
	Type        string     `json:"type" validate:"omitempty,max=50"`
	Title       string     `json:"title" validate:"required,max=255"`
	Body        string     `json:"body" validate:"required,max=4000"`
	Target      string     `json:"target" validate:"required,oneof=all customers staff doctors admins specific"`
	UserIDs     []int64    `json:"userIds" validate:"omitempty,dive,gt=0"`
	CustomerIDs []int64    `json:"customerIds" validate:"omitempty,dive,gt=0"`
	Channels    []string   `json:"channels" validate:"omitempty,dive,oneof=in_app whatsapp"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	SendNow     bool       `json:"sendNow"`
}

type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// InboxItem is a notification as one recipient sees it.
type InboxItem struct {
	ID     int64          `json:"id"`
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Data   map[string]any `json:"data,omitempty"`
	SentAt *time.Time     `json:"sentAt,omitempty"`
	Read   bool           `json:"read"`
	ReadAt *time.Time     `json:"readAt,omitempty"`
}

type InboxResponse struct {
	Items       []InboxItem `json:"items"`
	UnreadCount int64       `json:"unreadCount"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
}

// Event is a clinic-generated message addressed to known identities.
type Event struct {
	Type        string
	Title       string
	Body        string
	UserIDs     []int64
	CustomerIDs []int64
	Data        map[string]any
	Channels    []Channel
}
