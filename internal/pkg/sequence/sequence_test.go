package sequence

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/database"
	"vetclinic/internal/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sequence_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &Sequence{}))
	return db
}

func TestNext_Increments(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := Next(ctx, db, Bookings)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := Next(ctx, db, Consultations)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "sequences are independent")
}

func TestNext_ConcurrentCallersGetDistinctValues(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	values := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Next(ctx, db, Bookings)
			assert.NoError(t, err)
			values <- v
		}()
	}
	wg.Wait()
	close(values)

	seen := map[int64]bool{}
	for v := range values {
		assert.False(t, seen[v], "duplicate value %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, n)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "BK000001", Format("BK", 1, 6))
	assert.Equal(t, "CON000042", Format("CON", 42, 6))
	assert.Equal(t, "BK1234567", Format("BK", 1234567, 6))
}
