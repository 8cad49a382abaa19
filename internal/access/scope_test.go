package access

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vetclinic/internal/database"
	"vetclinic/internal/logger"
)

type row struct {
	ID       int64 `gorm:"primaryKey"`
	BranchID int64
	DoctorID *int64
}

func ptr(v int64) *int64 { return &v }

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:access_test_%s?mode=memory&cache=shared", t.Name()), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	rows := []row{
		{BranchID: 1, DoctorID: ptr(10)},
		{BranchID: 1, DoctorID: ptr(11)},
		{BranchID: 2, DoctorID: ptr(10)},
		{BranchID: 2},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func count(t *testing.T, db *gorm.DB, s Scope) int64 {
	var n int64
	require.NoError(t, db.Model(&row{}).Scopes(s.Narrow("branch_id", "doctor_id")).Count(&n).Error)
	return n
}

func TestNarrow(t *testing.T) {
	db := seed(t)

	assert.Equal(t, int64(4), count(t, db, Scope{Role: RoleAdmin, UserID: 1}))
	assert.Equal(t, int64(2), count(t, db, Scope{Role: RoleDoctor, UserID: 10, BranchID: 1}))
	assert.Equal(t, int64(2), count(t, db, Scope{Role: RoleStaff, UserID: 5, BranchID: 2}))
	assert.Equal(t, int64(4), count(t, db, Scope{Role: RoleStaff, UserID: 5}))
	assert.Equal(t, int64(0), count(t, db, Scope{Role: "guest"}))
}

func TestNarrowDoctorWithoutDoctorColumnFallsBackToBranch(t *testing.T) {
	db := seed(t)
	var n int64
	s := Scope{Role: RoleDoctor, UserID: 10, BranchID: 2}
	require.NoError(t, db.Model(&row{}).Scopes(s.Narrow("branch_id", "")).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestAllows(t *testing.T) {
	assert.True(t, Scope{Role: RoleAdmin}.Allows(3, nil))
	assert.True(t, Scope{Role: RoleDoctor, UserID: 10}.Allows(3, ptr(10)))
	assert.False(t, Scope{Role: RoleDoctor, UserID: 10}.Allows(3, ptr(11)))
	assert.False(t, Scope{Role: RoleDoctor, UserID: 10}.Allows(3, nil))
	assert.True(t, Scope{Role: RoleStaff, BranchID: 3}.Allows(3, nil))
	assert.False(t, Scope{Role: RoleStaff, BranchID: 3}.Allows(4, nil))
	assert.False(t, Scope{Role: RoleCustomer}.Allows(3, nil))
}
