package notification

import (
	"context"
	"fmt"

	"vetclinic/internal/pkg/whatsapp"
)

// Deliverer pushes a notification out through one channel.
type Deliverer interface {
	Deliver(ctx context.Context, n *Notification, to []Identity) error
}

// inApp pushes to live sockets. The stored receipts are the inbox, so offline users lose nothing.
type inApp struct {
	hub *Hub
}

func (d inApp) Deliver(_ context.Context, n *Notification, to []Identity) error {
	d.hub.Push(to, &WSEvent{
		Type: EventNotification,
		Payload: InboxItem{
			ID:     n.ID,
			Type:   n.Type,
			Title:  n.Title,
			Body:   n.Body,
			Data:   n.Data,
			SentAt: n.SentAt,
		},
	})
	return nil
}

type phoneBook interface {
	Phones(ctx context.Context, to []Identity) (map[Identity]string, error)
}

type whatsApp struct {
	sender whatsapp.Sender
	phones phoneBook
}

// Deliver fails only when no recipient with a phone could be reached.
func (d whatsApp) Deliver(ctx context.Context, n *Notification, to []Identity) error {
	phones, err := d.phones.Phones(ctx, to)
	if err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}

	text := n.Title
	if n.Body != "" {
		text += "\n" + n.Body
	}

	failed := 0
	var last error
	for _, phone := range phones {
		if err := d.sender.Send(ctx, phone, text); err != nil {
			failed++
			last = err
		}
	}
	if failed == len(phones) {
		return fmt.Errorf("whatsapp: all %d sends failed: %w", failed, last)
	}
	return nil
}
