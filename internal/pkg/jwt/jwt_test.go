package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(7, "staff", 3)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, int64(3), claims.BranchID)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("a", time.Hour).GenerateToken(1, "admin", 0)
	require.NoError(t, err)

	_, err = New("b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("secret", -time.Minute)
	token, err := svc.GenerateToken(1, "admin", 0)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestCustomerTTL(t *testing.T) {
	svc := New("secret", -time.Minute).WithCustomerTTL(time.Hour)

	token, err := svc.GenerateToken(9, RoleCustomer, 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, claims.Role)
}
