package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/pkg/response"
	"vetclinic/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login authenticates a dashboard user.
// @Summary		Staff login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}		StaffLoginResponse
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Login successful", res)
}

// RegisterCustomer creates a customer account from the mobile app.
// @Summary		Customer registration
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterCustomerRequest	true	"payload"
// @Success		201	{object}		CustomerLoginResponse
// @Router		/auth/register-customer [post]
func (h *Handler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.RegisterCustomer(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Registration successful", res)
}

// CustomerLogin handles POST /auth/customer-login
func (h *Handler) CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.CustomerLogin(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Login successful", res)
}

// Me handles GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	profile, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Coded(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, user.ErrAccountLocked):
		response.Coded(c, http.StatusUnauthorized, "ACCOUNT_LOCKED", err.Error())
	case errors.Is(err, user.ErrAccountInactive), errors.Is(err, ErrCustomerInactive):
		response.Coded(c, http.StatusForbidden, "ACCOUNT_INACTIVE", err.Error())
	case errors.Is(err, ErrCustomerNotRegistered):
		response.Coded(c, http.StatusNotFound, "NOT_REGISTERED", err.Error())
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, customer.ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, customer.ErrPhoneExists), errors.Is(err, customer.ErrInvalidPhone):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
