package branch

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

// ListPublic handles GET /branches
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// List handles GET /branches/manage
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		City:       c.Query("city"),
		ActiveOnly: c.Query("active") == "true",
	}
	list, err := h.service.List(c.Request.Context(), access.FromContext(c), f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Get handles GET /branches/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid branch ID")
		return
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Create handles POST /branches
func (h *Handler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Branch created", b)
}

// Update handles PUT /branches/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid branch ID")
		return
	}
	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Branch updated", b)
}

// Delete handles DELETE /branches/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid branch ID")
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Branch deactivated", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBranchNotFound):
		response.Error(c, http.StatusNotFound, "Branch not found")
	case errors.Is(err, ErrForbiddenBranch):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidHours), errors.Is(err, ErrInvalidDay), errors.Is(err, ErrBranchInactive):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
