package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vetclinic/internal/pkg/params"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repository) Save(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(n).Error
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&Notification{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Notification
	err := q.Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset(params.Offset(f.Page, f.Limit)).
		Find(&list).Error
	return list, total, err
}

// Delete removes a notification together with its receipts.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", id).Delete(&Recipient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Notification{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotificationNotFound
		}
		return nil
	})
}

// AddRecipients stores receipts; existing ones are kept as they are.
func (r *Repository) AddRecipients(ctx context.Context, id int64, to []Identity) error {
	if len(to) == 0 {
		return nil
	}
	rows := make([]Recipient, 0, len(to))
	for _, who := range to {
		rows = append(rows, Recipient{NotificationID: id, Kind: who.Kind, RecipientID: who.ID})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, 200).Error
}

// ActiveUserIDs returns active dashboard users, optionally only the given roles.
func (r *Repository) ActiveUserIDs(ctx context.Context, roles ...string) ([]int64, error) {
	q := r.db.WithContext(ctx).Table("users").Where("is_active = ?", true)
	if len(roles) > 0 {
		q = q.Where("role IN ?", roles)
	}
	var ids []int64
	err := q.Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *Repository) ActiveCustomerIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Table("customers").
		Where("is_active = ?", true).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

type phoneRow struct {
	ID    int64
	Phone string
}

// Phones returns the stored phone per identity; identities without one are skipped.
func (r *Repository) Phones(ctx context.Context, to []Identity) (map[Identity]string, error) {
	var users, customers []int64
	for _, who := range to {
		if who.Kind == KindCustomer {
			customers = append(customers, who.ID)
		} else {
			users = append(users, who.ID)
		}
	}

	out := make(map[Identity]string, len(to))
	load := func(table string, kind Kind, ids []int64) error {
		if len(ids) == 0 {
			return nil
		}
		var rows []phoneRow
		err := r.db.WithContext(ctx).Table(table).
			Select("id, phone").
			Where("id IN ? AND phone <> ''", ids).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			out[Identity{Kind: kind, ID: row.ID}] = row.Phone
		}
		return nil
	}
	if err := load("users", KindUser, users); err != nil {
		return nil, err
	}
	if err := load("customers", KindCustomer, customers); err != nil {
		return nil, err
	}
	return out, nil
}

type inboxRow struct {
	ID     int64
	Type   string
	Title  string
	Body   string
	Data   map[string]any `gorm:"serializer:json"`
	SentAt *time.Time
	ReadAt *time.Time
}

// Inbox lists sent notifications addressed to who, newest first.
func (r *Repository) Inbox(ctx context.Context, who Identity, page, limit int) ([]InboxItem, int64, error) {
	q := r.db.WithContext(ctx).Table("notifications n").
		Joins("JOIN notification_recipients nr ON nr.notification_id = n.id").
		Where("nr.kind = ? AND nr.recipient_id = ?", who.Kind, who.ID).
		Where("n.status = ?", StatusSent)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []inboxRow
	err := q.Select("n.id, n.type, n.title, n.body, n.data, n.sent_at, nr.read_at").
		Order("n.sent_at DESC, n.id DESC").
		Limit(limit).
		Offset(params.Offset(page, limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]InboxItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, InboxItem{
			ID:     row.ID,
			Type:   row.Type,
			Title:  row.Title,
			Body:   row.Body,
			Data:   row.Data,
			SentAt: row.SentAt,
			Read:   row.ReadAt != nil,
			ReadAt: row.ReadAt,
		})
	}
	return items, total, nil
}

func (r *Repository) UnreadCount(ctx context.Context, who Identity) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("notification_recipients nr").
		Joins("JOIN notifications n ON n.id = nr.notification_id").
		Where("nr.kind = ? AND nr.recipient_id = ? AND nr.read_at IS NULL", who.Kind, who.ID).
		Where("n.status = ?", StatusSent).
		Count(&n).Error
	return n, err
}

// MarkRead sets the receipt once; a repeated call leaves the first timestamp.
func (r *Repository) MarkRead(ctx context.Context, id int64, who Identity, at time.Time) error {
	var rec Recipient
	err := r.db.WithContext(ctx).
		Where("notification_id = ? AND kind = ? AND recipient_id = ?", id, who.Kind, who.ID).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	if rec.ReadAt != nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&rec).UpdateColumn("read_at", at).Error
}

func (r *Repository) MarkAllRead(ctx context.Context, who Identity, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("kind = ? AND recipient_id = ? AND read_at IS NULL", who.Kind, who.ID).
		UpdateColumn("read_at", at)
	return res.RowsAffected, res.Error
}

// DueScheduled returns scheduled notifications whose time has come.
func (r *Repository) DueScheduled(ctx context.Context, now time.Time) ([]Notification, error) {
	var list []Notification
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", StatusScheduled, now).
		Order("scheduled_at ASC").
		Find(&list).Error
	return list, err
}

// DeleteOlderThan removes finished notifications created before cutoff.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old := tx.Model(&Notification{}).
			Select("id").
			Where("created_at < ? AND status IN ?", cutoff, []Status{StatusSent, StatusFailed})
		if err := tx.Where("notification_id IN (?)", old).Delete(&Recipient{}).Error; err != nil {
			return err
		}
		res := tx.Where("created_at < ? AND status IN ?", cutoff, []Status{StatusSent, StatusFailed}).
			Delete(&Notification{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
