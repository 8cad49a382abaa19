package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/response"
	"vetclinic/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /users
func (h *Handler) List(c *gin.Context) {
	page, limit := params.Page(c)
	f := ListFilter{
		Role:     c.Query("role"),
		BranchID: params.OptionalID(c, "branch"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		f.Active = &active
	}

	list, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Paged(c, list, page, limit, total)
}

// Create handles POST /users
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	u, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "User created", u)
}

// Get handles GET /users/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Update handles PUT /users/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	u, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User updated", u)
}

// Delete handles DELETE /users/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deactivated", nil)
}

// Doctors handles GET /doctors?branch=
func (h *Handler) Doctors(c *gin.Context) {
	list, err := h.service.Doctors(c.Request.Context(), params.OptionalID(c, "branch"))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// DoctorReviews handles GET /doctors/:id/reviews
func (h *Handler) DoctorReviews(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}
	list, err := h.service.Reviews(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// AddReview handles POST /doctors/:id/reviews and POST /customer/:customerId/doctors/:id/reviews
func (h *Handler) AddReview(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	var customerID *int64
	if c.GetString("role") == access.RoleCustomer {
		uid := c.GetInt64("user_id")
		customerID = &uid
	} else if cid, ok := params.ID(c, "customerId"); ok {
		customerID = &cid
	}

	rv, err := h.service.AddReview(c.Request.Context(), id, customerID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Review added", rv)
}

// RemoveReview handles DELETE /doctors/:id/reviews/:reviewId
func (h *Handler) RemoveReview(c *gin.Context) {
	id, ok := params.ID(c, "id")
	reviewID, ok2 := params.ID(c, "reviewId")
	if !ok || !ok2 {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.service.RemoveReview(c.Request.Context(), id, reviewID); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Review removed", nil)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrReviewNotFound):
		response.Error(c, http.StatusNotFound, "Review not found")
	case errors.Is(err, ErrNotDoctor), errors.Is(err, ErrBranchNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailExists), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrBranchRequired), errors.Is(err, ErrCannotDeactivate):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
