package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/database"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/logger"
	"vetclinic/internal/pkg/jwt"
)

type anyBranch struct{}

func (anyBranch) Exists(context.Context, int64) (bool, error) { return true, nil }

type fixture struct {
	svc       *Service
	users     *user.Service
	customers *customer.Service
	tokens    *jwt.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &user.User{}, &user.Review{}, &customer.Customer{}, &customer.Animal{}))

	users := user.NewService(user.NewRepository(db), anyBranch{})
	customers := customer.NewService(customer.NewRepository(db))
	tokens := jwt.New("test-secret", time.Hour)
	return &fixture{
		svc:       NewService(users, customers, tokens),
		users:     users,
		customers: customers,
		tokens:    tokens,
	}
}

func TestLoginIssuesTokenWithBranch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	branchID := int64(3)
	_, err := f.users.Create(ctx, &user.CreateUserRequest{
		Name: "Dr. Salem", Email: "salem@clinic.sa", Password: "password123", Role: "doctor", BranchID: &branchID,
	})
	require.NoError(t, err)

	res, err := f.svc.Login(ctx, &LoginRequest{Email: "salem@clinic.sa", Password: "password123"})
	require.NoError(t, err)

	claims, err := f.tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, int64(3), claims.BranchID)

	_, err = f.svc.Login(ctx, &LoginRequest{Email: "salem@clinic.sa", Password: "wrong"})
	assert.True(t, errors.Is(err, user.ErrInvalidCredentials))
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reg, err := f.svc.RegisterCustomer(ctx, &RegisterCustomerRequest{Name: "Fahad", Phone: "0512345678"})
	require.NoError(t, err)
	claims, err := f.tokens.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, reg.Customer.ID, claims.UserID)

	res, err := f.svc.CustomerLogin(ctx, &CustomerLoginRequest{Phone: "+966512345678"})
	require.NoError(t, err)
	assert.Equal(t, reg.Customer.ID, res.Customer.ID)

	_, err = f.svc.CustomerLogin(ctx, &CustomerLoginRequest{Phone: "0599999999"})
	assert.True(t, errors.Is(err, ErrCustomerNotRegistered))

	inactive := false
	_, err = f.customers.Update(ctx, reg.Customer.ID, &customer.UpdateCustomerRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = f.svc.CustomerLogin(ctx, &CustomerLoginRequest{Phone: "0512345678"})
	assert.True(t, errors.Is(err, ErrCustomerInactive))
}

func TestMeReturnsProfileByRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reg, err := f.svc.RegisterCustomer(ctx, &RegisterCustomerRequest{Name: "Fahad", Phone: "0512345678"})
	require.NoError(t, err)

	profile, err := f.svc.Me(ctx, reg.Customer.ID, "customer")
	require.NoError(t, err)
	c, ok := profile.(*customer.Customer)
	require.True(t, ok)
	assert.Equal(t, "Fahad", c.Name)
}

func TestLoginHandlerStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	r := gin.New()
	RegisterPublicRoutes(r.Group("/api/v1"), NewHandler(f.svc))

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed", body: `{`, want: http.StatusBadRequest},
		{name: "missing password", body: `{"email":"a@b.sa"}`, want: http.StatusBadRequest},
		{name: "unknown user", body: `{"email":"a@b.sa","password":"x"}`, want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
