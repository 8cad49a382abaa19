package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/logger"
)

type uniqueThing struct {
	ID   int64  `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func TestMigrateAndUniqueViolation(t *testing.T) {
	db, err := Connect(fmt.Sprintf("file:db_test_%s?mode=memory&cache=shared", t.Name()), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &uniqueThing{}))

	require.NoError(t, db.Create(&uniqueThing{Code: "A"}).Error)
	err = db.Create(&uniqueThing{Code: "A"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
