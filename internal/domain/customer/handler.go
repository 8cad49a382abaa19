package customer

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

// customerID reads :customerId on customer-facing routes and :id on staff routes.
func customerID(c *gin.Context) (int64, bool) {
	if c.Param("customerId") != "" {
		return params.ID(c, "customerId")
	}
	return params.ID(c, "id")
}

// List handles GET /customers
func (h *Handler) List(c *gin.Context) {
	page, limit := params.Page(c)
	f := ListFilter{
		Search: c.Query("search"),
		City:   c.Query("city"),
		Page:   page,
		Limit:  limit,
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

// Create handles POST /customers
func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	cust, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Customer created", cust)
}

// Get handles GET /customers/:id and GET /customer/:customerId/profile
func (h *Handler) Get(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	cust, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

// GetByPhone handles GET /customers/phone/:phone
func (h *Handler) GetByPhone(c *gin.Context) {
	cust, err := h.service.GetByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

// Update handles PUT /customers/:id and PUT /customer/:customerId/profile
func (h *Handler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}
	// customers cannot reactivate or archive themselves
	if c.GetString("role") == access.RoleCustomer {
		req.IsActive = nil
	}

	cust, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Customer updated", cust)
}

// Delete handles DELETE /customers/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Customer deleted", nil)
}

// ListAnimals handles GET /customer/:customerId/animals
func (h *Handler) ListAnimals(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	cust, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust.Herd().Active())
}

// AddAnimal handles POST /customers/:id/animals
func (h *Handler) AddAnimal(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	a, err := h.service.AddAnimal(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Animal added", a)
}

// UpdateAnimal handles PUT /customers/:id/animals/:animalId
func (h *Handler) UpdateAnimal(c *gin.Context) {
	id, ok := customerID(c)
	animalID, ok2 := params.ID(c, "animalId")
	if !ok || !ok2 {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	a, err := h.service.UpdateAnimal(c.Request.Context(), id, animalID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Animal updated", a)
}

// RemoveAnimal handles DELETE /customers/:id/animals/:animalId
func (h *Handler) RemoveAnimal(c *gin.Context) {
	id, ok := customerID(c)
	animalID, ok2 := params.ID(c, "animalId")
	if !ok || !ok2 {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.service.RemoveAnimal(c.Request.Context(), id, animalID); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Animal removed", nil)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, ErrAnimalNotFound):
		response.Error(c, http.StatusNotFound, "Animal not found")
	case errors.Is(err, ErrPhoneExists), errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidAnimal):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrCustomerInactive):
		response.Error(c, http.StatusForbidden, err.Error())
	default:
		response.Internal(c, err)
	}
}
