package vaccination

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetclinic/internal/domain/customer"
	"vetclinic/internal/pkg/params"
	"vetclinic/internal/pkg/response"
	"vetclinic/internal/pkg/validator"
)

// AnimalFinder resolves a customer's animal for the per-animal catalog.
type AnimalFinder interface {
	GetAnimal(ctx context.Context, customerID, animalID int64) (*customer.Customer, *customer.Animal, error)
}

type Handler struct {
	service *Service
	animals AnimalFinder
}

func NewHandler(service *Service, animals AnimalFinder) *Handler {
	return &Handler{service: service, animals: animals}
}

// List handles GET /vaccinations?animalType=&search=&all=true
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		AnimalType: c.Query("animalType"),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("all") != "true",
	}
	list, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Get handles GET /vaccinations/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid vaccination ID")
		return
	}
	v, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

// ByAnimalType handles GET /vaccinations/animal-type/:type?age=
func (h *Handler) ByAnimalType(c *gin.Context) {
	animalType := c.Param("type")
	if !customer.ValidAnimalType(animalType) {
		response.Error(c, http.StatusBadRequest, ErrInvalidAnimalType.Error())
		return
	}

	if s := c.Query("age"); s != "" {
		age, err := strconv.ParseFloat(s, 64)
		if err != nil || age < 0 {
			response.Error(c, http.StatusBadRequest, "Invalid age")
			return
		}
		list, err := h.service.ForAnimal(c.Request.Context(), animalType, age)
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, list)
		return
	}

	list, err := h.service.List(c.Request.Context(), ListFilter{AnimalType: animalType, ActiveOnly: true})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ForCustomerAnimal handles GET /customer/:customerId/animals/:animalId/vaccinations
func (h *Handler) ForCustomerAnimal(c *gin.Context) {
	customerID, ok := params.ID(c, "customerId")
	animalID, ok2 := params.ID(c, "animalId")
	if !ok || !ok2 {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return
	}

	_, animal, err := h.animals.GetAnimal(c.Request.Context(), customerID, animalID)
	if err != nil {
		fail(c, err)
		return
	}

	list, err := h.service.ForAnimal(c.Request.Context(), string(animal.Type), animal.Age)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"animal":       animal,
		"vaccinations": list,
	})
}

// Create handles POST /vaccinations
func (h *Handler) Create(c *gin.Context) {
	var req CreateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	v, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Vaccination created", v)
}

// Update handles PUT /vaccinations/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid vaccination ID")
		return
	}
	var req UpdateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Vaccination updated", v)
}

// Delete handles DELETE /vaccinations/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := params.ID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid vaccination ID")
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Vaccination deactivated", nil)
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVaccinationNotFound):
		response.Error(c, http.StatusNotFound, "Vaccination not found")
	case errors.Is(err, customer.ErrCustomerNotFound), errors.Is(err, customer.ErrAnimalNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrVaccinationInactive), errors.Is(err, ErrInvalidAnimalType),
		errors.Is(err, ErrInvalidAgeRange), errors.Is(err, ErrFrequencyMonths):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Internal(c, err)
	}
}
