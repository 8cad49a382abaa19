package customer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/database"
	"vetclinic/internal/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:customer_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &Customer{}, &Animal{}))
	return db
}

func setupTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(setupDB(t)))
}

func TestRegisterNormalizesPhoneAndRejectsDuplicates(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	c, err := svc.Register(ctx, &CreateCustomerRequest{
		Name:  "Fahad",
		Phone: "+966512345678",
		Animals: []CreateAnimalRequest{
			{Name: "Herd A", Type: "sheep", Count: 12, Age: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "0512345678", c.Phone)
	require.Len(t, c.Animals, 1)
	assert.Equal(t, 12, c.Animals[0].Count)

	_, err = svc.Register(ctx, &CreateCustomerRequest{Name: "Other", Phone: "0512345678"})
	assert.True(t, errors.Is(err, ErrPhoneExists))

	_, err = svc.Register(ctx, &CreateCustomerRequest{Name: "Bad", Phone: "0412345678"})
	assert.True(t, errors.Is(err, ErrInvalidPhone))
}

func TestPhoneUniqueAtStorageLevel(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Customer{Name: "A", Phone: "0500000001"}))
	err := repo.Create(ctx, &Customer{Name: "B", Phone: "0500000001"})
	assert.True(t, errors.Is(err, ErrPhoneExists))
}

func TestAnimalLifecycle(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	c, err := svc.Register(ctx, &CreateCustomerRequest{Name: "Saad", Phone: "0555555555"})
	require.NoError(t, err)

	camel, err := svc.AddAnimal(ctx, c.ID, &CreateAnimalRequest{Name: "Najla", Type: "camel", Age: 4, Weight: 450})
	require.NoError(t, err)
	assert.Equal(t, 1, camel.Count)

	_, err = svc.AddAnimal(ctx, c.ID, &CreateAnimalRequest{Name: "X", Type: "dragon"})
	assert.True(t, errors.Is(err, ErrInvalidAnimal))

	weight := 470.0
	updated, err := svc.UpdateAnimal(ctx, c.ID, camel.ID, &UpdateAnimalRequest{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 470.0, updated.Weight)

	require.NoError(t, svc.RemoveAnimal(ctx, c.ID, camel.ID))

	_, _, err = svc.GetAnimal(ctx, c.ID, camel.ID)
	assert.True(t, errors.Is(err, ErrAnimalNotFound))

	reloaded, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Herd().Active())
}

func TestAnimalOfAnotherCustomerIsNotFound(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, &CreateCustomerRequest{Name: "A", Phone: "0500000011"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, &CreateCustomerRequest{Name: "B", Phone: "0500000012"})
	require.NoError(t, err)

	animal, err := svc.AddAnimal(ctx, a.ID, &CreateAnimalRequest{Name: "Goat", Type: "goat"})
	require.NoError(t, err)

	_, _, err = svc.GetAnimal(ctx, b.ID, animal.ID)
	assert.True(t, errors.Is(err, ErrAnimalNotFound))
}

func TestRecordBooking(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	c, err := svc.Register(ctx, &CreateCustomerRequest{Name: "A", Phone: "0500000021"})
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.RecordBooking(ctx, c.ID, at))
	require.NoError(t, svc.RecordBooking(ctx, c.ID, at.Add(24*time.Hour)))

	reloaded, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TotalBookings)
	require.NotNil(t, reloaded.LastBookingDate)
	assert.True(t, reloaded.LastBookingDate.Equal(at.Add(24*time.Hour)))
}

func TestListSearchAndPagination(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Register(ctx, &CreateCustomerRequest{
			Name:  fmt.Sprintf("Customer %d", i),
			Phone: fmt.Sprintf("05000001%02d", i),
			City:  "Riyadh",
		})
		require.NoError(t, err)
	}

	list, total, err := svc.List(ctx, ListFilter{Search: "Customer", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, list, 2)

	list, total, err = svc.List(ctx, ListFilter{Search: "0500000103", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Customer 3", list[0].Name)
}

func TestDeleteRemovesAnimals(t *testing.T) {
	db := setupDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	c, err := svc.Register(ctx, &CreateCustomerRequest{
		Name: "A", Phone: "0500000031",
		Animals: []CreateAnimalRequest{{Name: "H", Type: "horse"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))

	var n int64
	require.NoError(t, db.Model(&Animal{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err = svc.Get(ctx, c.ID)
	assert.True(t, errors.Is(err, ErrCustomerNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, c.ID), ErrCustomerNotFound))
}
