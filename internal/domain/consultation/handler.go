package consultation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/user"
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

func listFilter(c *gin.Context) ListFilter {
	page, limit := params.Page(c)
	return ListFilter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		DoctorID:   params.OptionalID(c, "doctor"),
		CustomerID: params.OptionalID(c, "customer"),
		DateFrom:   c.Query("from"),
		DateTo:     c.Query("to"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}
}

// List handles GET /consultations
func (h *Handler) List(c *gin.Context) {
	f := listFilter(c)
	list, total, err := h.service.List(c.Request.Context(), access.FromContext(c), f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Paged(c, list, f.Page, f.Limit, total)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	out, err := h.service.Create(c.Request.Context(), access.FromContext(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Consultation created", out)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid consultation ID")
		return
	}
	out, err := h.service.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid consultation ID")
		return
	}
	var req UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	out, err := h.service.Update(c.Request.Context(), access.FromContext(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Consultation updated", out)
}

// UpdateStatus handles PATCH /consultations/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid consultation ID")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	out, err := h.service.UpdateStatus(c.Request.Context(), access.FromContext(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Consultation status updated", out)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid consultation ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), access.FromContext(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Consultation deleted", nil)
}

// CustomerList handles GET /customer/:customerId/consultations
func (h *Handler) CustomerList(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	f := listFilter(c)
	list, total, err := h.service.CustomerList(c.Request.Context(), access.FromContext(c), customerID, f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Paged(c, list, f.Page, f.Limit, total)
}

// CustomerCreate handles POST /customer/:customerId/consultations
func (h *Handler) CustomerCreate(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req CustomerConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	out, err := h.service.CustomerCreate(c.Request.Context(), access.FromContext(c), customerID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Consultation requested", out)
}

// CustomerCancel handles PATCH /customer/:customerId/consultations/:id/cancel
func (h *Handler) CustomerCancel(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid consultation ID")
		return
	}
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	out, err := h.service.CustomerCancel(c.Request.Context(), access.FromContext(c), customerID, id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Consultation cancelled", out)
}

func fail(c *gin.Context, err error) {
	var te *TransitionError
	switch {
	case IsNotFound(err):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.As(err, &te):
		response.Coded(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ErrDoctorBusy):
		response.Coded(c, http.StatusBadRequest, "DOCTOR_BUSY", err.Error())
	case errors.Is(err, ErrConsultationCompleted), errors.Is(err, ErrConsultationCancelled),
		errors.Is(err, ErrCannotDelete), errors.Is(err, ErrCompletionFieldsOnly),
		errors.Is(err, ErrDiagnosisRequired), errors.Is(err, ErrCancelReasonRequired),
		errors.Is(err, ErrInvalidSchedule), errors.Is(err, ErrPastSchedule),
		errors.Is(err, ErrAlreadyStarted), errors.Is(err, user.ErrNotDoctor),
		errors.Is(err, customer.ErrCustomerInactive):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
