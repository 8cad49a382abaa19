package offer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// Active handles GET /offers
func (h *Handler) Active(c *gin.Context) {
	list, err := h.service.ActiveOffers(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// List handles GET /offers/all
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Get handles GET /offers/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}
	o, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

// Create handles POST /offers
func (h *Handler) Create(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	o, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Offer created", o)
}

// Update handles PUT /offers/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}
	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	o, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Offer updated", o)
}

// Delete handles DELETE /offers/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Offer deleted", nil)
}

// Apply handles POST /offers/:id/apply
func (h *Handler) Apply(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	res, err := h.service.Apply(c.Request.Context(), id, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Offer applied", res)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOfferNotFound):
		response.Error(c, http.StatusNotFound, "Offer not found")
	case errors.Is(err, ErrOfferNotValid), errors.Is(err, ErrOfferExhausted),
		errors.Is(err, ErrBelowMinimum), errors.Is(err, ErrInvalidDiscount), errors.Is(err, ErrInvalidPeriod):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
