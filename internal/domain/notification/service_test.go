package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/database"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func (f *fakeSender) Send(_ context.Context, phone, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[phone] = text
	return nil
}

type fixture struct {
	db     *gorm.DB
	svc    *Service
	sender *fakeSender
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db,
		&user.User{}, &customer.Customer{}, &Notification{}, &Recipient{},
	))

	users := []user.User{
		{Name: "Admin", Email: "admin@clinic.sa", PasswordHash: "x", Role: "admin"},
		{Name: "Staff", Email: "staff@clinic.sa", PasswordHash: "x", Role: "staff"},
		{Name: "Doctor", Email: "doc@clinic.sa", PasswordHash: "x", Role: "doctor", Phone: "0500000009"},
	}
	for i := range users {
		users[i].Activate()
		require.NoError(t, db.Create(&users[i]).Error)
	}
	customers := []customer.Customer{
		{Name: "Fahad", Phone: "0512345678"},
		{Name: "Sara", Phone: "0598765432"},
	}
	for i := range customers {
		customers[i].Activate()
		require.NoError(t, db.Create(&customers[i]).Error)
	}

	sender := &fakeSender{}
	svc := NewService(NewRepository(db), NewHub(), sender, logger.Nop())
	return &fixture{db: db, svc: svc, sender: sender}
}

func TestSendResolvesTargets(t *testing.T) {
	cases := []struct {
		target string
		want   int
	}{
		{target: "all", want: 5},
		{target: "customers", want: 2},
		{target: "staff", want: 1},
		{target: "doctors", want: 1},
		{target: "admins", want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			f := setup(t)
			n, err := f.svc.Create(context.Background(), 1, &CreateNotificationRequest{
				Title: "Eid hours", Body: "Closed Friday", Target: tc.target, SendNow: true,
			})
			require.NoError(t, err)
			assert.Equal(t, StatusSent, n.Status)
			assert.Equal(t, tc.want, n.RecipientCount)
			assert.NotNil(t, n.SentAt)
		})
	}
}

func TestCreateValidatesTarget(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "x", Body: "y", Target: "specific"})
	assert.True(t, errors.Is(err, ErrTargetIDsRequired))

	_, err = f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "x", Body: "y", Target: "all", Channels: []string{"sms"}})
	assert.True(t, errors.Is(err, ErrInvalidChannel))

	n, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "x", Body: "y", Target: "all"})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, n.Status)
	assert.Equal(t, []Channel{ChannelInApp}, n.Channels)
}

func TestInboxAndReadReceipts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	fahad := Identity{Kind: KindCustomer, ID: 1}
	sara := Identity{Kind: KindCustomer, ID: 2}
	adminUser := Identity{Kind: KindUser, ID: 1}

	n, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{
		Title: "Your booking", Body: "Confirmed", Target: "specific", CustomerIDs: []int64{1}, SendNow: true,
	})
	require.NoError(t, err)

	inbox, err := f.svc.Inbox(ctx, fahad, 1, 20)
	require.NoError(t, err)
	require.Len(t, inbox.Items, 1)
	assert.False(t, inbox.Items[0].Read)
	assert.Equal(t, int64(1), inbox.UnreadCount)

	// user 1 and customer 1 share an id but not an inbox
	other, err := f.svc.Inbox(ctx, adminUser, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	assert.True(t, errors.Is(f.svc.MarkRead(ctx, n.ID, sara), ErrNotificationNotFound))
	require.NoError(t, f.svc.MarkRead(ctx, n.ID, fahad))
	require.NoError(t, f.svc.MarkRead(ctx, n.ID, fahad))

	count, err := f.svc.UnreadCount(ctx, fahad)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "a", Body: "b", Target: "customers", SendNow: true})
	require.NoError(t, err)
	updated, err := f.svc.MarkAllRead(ctx, sara)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

func TestSendTwiceRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "x", Body: "y", Target: "staff"})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, n.ID)
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, n.ID)
	assert.True(t, errors.Is(err, ErrNotSendable))
}

func TestWhatsAppChannel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{
		Title: "Reminder", Body: "Tomorrow 09:00", Target: "customers",
		Channels: []string{"whatsapp"}, SendNow: true,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, n.Status)
	assert.Len(t, f.sender.sent, 2)
	assert.Equal(t, "Reminder\nTomorrow 09:00", f.sender.sent["0512345678"])

	f.sender.err = errors.New("gateway down")
	n, err = f.svc.Create(ctx, 1, &CreateNotificationRequest{
		Title: "Reminder", Body: "x", Target: "customers", Channels: []string{"whatsapp"}, SendNow: true,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, n.Status)
	assert.Contains(t, n.FailureReason, "gateway down")

	n, err = f.svc.Create(ctx, 1, &CreateNotificationRequest{
		Title: "Reminder", Body: "x", Target: "customers", Channels: []string{"in_app", "whatsapp"}, SendNow: true,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, n.Status)
	assert.Contains(t, n.FailureReason, "whatsapp")
}

func TestDispatchDueAndCleanup(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return at }

	later := at.Add(time.Hour)
	n, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "x", Body: "y", Target: "admins", ScheduledAt: &later})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, n.Status)

	sent, err := f.svc.DispatchDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	f.svc.now = func() time.Time { return later.Add(time.Minute) }
	sent, err = f.svc.DispatchDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	got, err := f.svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, got.Status)

	draft, err := f.svc.Create(ctx, 1, &CreateNotificationRequest{Title: "d", Body: "d", Target: "all"})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	deleted, err := f.svc.CleanupOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = f.svc.Get(ctx, n.ID)
	assert.True(t, errors.Is(err, ErrNotificationNotFound))
	_, err = f.svc.Get(ctx, draft.ID)
	assert.NoError(t, err)
}

func TestDispatcherDeliversQueuedEvents(t *testing.T) {
	f := setup(t)
	d := NewDispatcher(f.svc, 10, logger.Nop())
	d.Start()

	d.Publish(Event{Type: TypeBookingCreated, Title: "Booking received", Body: "BK000001", CustomerIDs: []int64{1}})
	d.Close()
	d.Publish(Event{Type: TypeBookingCreated, Title: "after close", CustomerIDs: []int64{1}})

	inbox, err := f.svc.Inbox(context.Background(), Identity{Kind: KindCustomer, ID: 1}, 1, 20)
	require.NoError(t, err)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, "Booking received", inbox.Items[0].Title)
}

func TestNotificationReceipts(t *testing.T) {
	who := Identity{Kind: KindUser, ID: 7}
	n := &Notification{Recipients: []Recipient{{Kind: KindUser, RecipientID: 7}}}

	assert.False(t, n.IsReadBy(who))
	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, n.MarkRead(who, first))
	assert.True(t, n.MarkRead(who, first.Add(time.Hour)))
	assert.True(t, n.IsReadBy(who))
	assert.Equal(t, first, *n.Recipients[0].ReadAt)

	assert.False(t, n.MarkRead(Identity{Kind: KindCustomer, ID: 7}, first))
}
