package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/branch"
	"vetclinic/internal/domain/customer"
	"vetclinic/internal/domain/offer"
	"vetclinic/internal/domain/user"
	"vetclinic/internal/domain/vaccination"
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
		BranchID:   params.OptionalID(c, "branch"),
		DoctorID:   params.OptionalID(c, "doctor"),
		CustomerID: params.OptionalID(c, "customer"),
		DateFrom:   c.Query("from"),
		DateTo:     c.Query("to"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}
}

// List godoc
// @Summary		List bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Param		status		query	string	false	"pending|confirmed|completed|cancelled"
// @Param		branch		query	int		false	"branch id"
// @Param		doctor		query	int		false	"doctor id"
// @Param		customer	query	int		false	"customer id"
// @Param		from		query	string	false	"YYYY-MM-DD"
// @Param		to			query	string	false	"YYYY-MM-DD"
// @Router		/bookings [get]
func (h *Handler) List(c *gin.Context) {
	f := listFilter(c)
	list, total, err := h.service.List(c.Request.Context(), access.FromContext(c), f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Paged(c, list, f.Page, f.Limit, total)
}

// Create handles POST /bookings
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.Create(c.Request.Context(), access.FromContext(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Booking created", b)
}

// Get handles GET /bookings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	b, err := h.service.Get(c.Request.Context(), access.FromContext(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Update handles PUT and PATCH /bookings/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.Update(c.Request.Context(), access.FromContext(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Booking updated", b)
}

// UpdateStatus handles PATCH /bookings/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
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

	b, err := h.service.UpdateStatus(c.Request.Context(), access.FromContext(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Booking status updated", b)
}

// Delete handles DELETE /bookings/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), access.FromContext(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Booking deleted", nil)
}

// AvailableSlots handles GET /bookings/available-slots and GET /customer/available-slots
func (h *Handler) AvailableSlots(c *gin.Context) {
	branchID := params.OptionalID(c, "branch")
	date := c.Query("date")
	if branchID == nil || date == "" {
		response.Error(c, http.StatusBadRequest, "branch and date are required")
		return
	}
	res, err := h.service.AvailableSlots(c.Request.Context(), *branchID, date, params.OptionalID(c, "doctor"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CustomerList handles GET /customer/:customerId/bookings
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

// CustomerCreate handles POST /customer/:customerId/bookings
func (h *Handler) CustomerCreate(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req CustomerBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.CustomerCreate(c.Request.Context(), access.FromContext(c), customerID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Booking created", b)
}

// CustomerGet handles GET /customer/:customerId/bookings/:id
func (h *Handler) CustomerGet(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	b, err := h.service.CustomerGet(c.Request.Context(), access.FromContext(c), customerID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// CustomerCancel handles PATCH /customer/:customerId/bookings/:id/cancel
func (h *Handler) CustomerCancel(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}
	var req CancelRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	b, err := h.service.CustomerCancel(c.Request.Context(), access.FromContext(c), customerID, id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Booking cancelled", b)
}

func fail(c *gin.Context, err error) {
	var te *TransitionError
	switch {
	case IsNotFound(err):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSlotBooked):
		response.Coded(c, http.StatusBadRequest, "SLOT_BOOKED", err.Error())
	case errors.As(err, &te):
		response.Coded(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, ErrBookingCompleted), errors.Is(err, ErrBookingCancelled),
		errors.Is(err, ErrCannotDelete), errors.Is(err, ErrCancelReasonRequired),
		errors.Is(err, ErrTooLateToCancel), errors.Is(err, ErrBranchClosed),
		errors.Is(err, ErrOutsideWorkingHours), errors.Is(err, ErrInvalidSlot),
		errors.Is(err, ErrPastAppointment), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime), errors.Is(err, ErrNotApplicable),
		errors.Is(err, ErrDoctorBranchMismatch):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDoctorNotesOnly):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, branch.ErrBranchInactive), errors.Is(err, vaccination.ErrVaccinationInactive),
		errors.Is(err, customer.ErrCustomerInactive), errors.Is(err, user.ErrNotDoctor),
		errors.Is(err, offer.ErrOfferNotValid), errors.Is(err, offer.ErrOfferExhausted),
		errors.Is(err, offer.ErrBelowMinimum):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
