package customer

import (
	"sort"
	"strings"
	"time"

	"vetclinic/internal/pkg/archive"
)

type AnimalType string

const (
	AnimalCamel AnimalType = "camel"
	AnimalSheep AnimalType = "sheep"
	AnimalGoat  AnimalType = "goat"
	AnimalCow   AnimalType = "cow"
	AnimalHorse AnimalType = "horse"
	AnimalOther AnimalType = "other"
)

// AnimalTypes lists every accepted animal type.
var AnimalTypes = []AnimalType{AnimalCamel, AnimalSheep, AnimalGoat, AnimalCow, AnimalHorse, AnimalOther}

func ValidAnimalType(t string) bool {
	for _, at := range AnimalTypes {
		if string(at) == t {
			return true
		}
	}
	return false
}

// Animal is a single entry, or a group of identical animals when Count > 1.
type Animal struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	CustomerID int64      `gorm:"not null;index" json:"customerId"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Type       AnimalType `gorm:"size:20;not null;index" json:"type"`
	Count      int        `gorm:"not null;default:1" json:"count"`
	Age        float64    `json:"age"`
	Weight     float64    `json:"weight"`
	Breed      string     `gorm:"size:100" json:"breed,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Animal) TableName() string { return "animals" }

// Herd indexes a customer's animals by id. Every change to an animal goes through it.
type Herd struct {
	customerID int64
	byID       map[int64]*Animal
}

func NewHerd(customerID int64, animals []Animal) *Herd {
	h := &Herd{customerID: customerID, byID: make(map[int64]*Animal, len(animals))}
	for i := range animals {
		h.byID[animals[i].ID] = &animals[i]
	}
	return h
}

// GetActive returns the animal only when it has not been removed.
func (h *Herd) GetActive(id int64) (*Animal, bool) {
	a, ok := h.byID[id]
	if !ok || !a.Active() {
		return nil, false
	}
	return a, true
}

// Active returns the active animals ordered by id.
func (h *Herd) Active() []Animal {
	out := make([]Animal, 0, len(h.byID))
	for _, a := range h.byID {
		if a.Active() {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Add builds a validated animal owned by the herd's customer.
// It is indexed once persisted and given an id.
func (h *Herd) Add(req CreateAnimalRequest) (*Animal, error) {
	if !ValidAnimalType(req.Type) {
		return nil, ErrInvalidAnimal
	}
	count := req.Count
	if count < 1 {
		count = 1
	}
	a := &Animal{
		CustomerID: h.customerID,
		Name:       strings.TrimSpace(req.Name),
		Type:       AnimalType(req.Type),
		Count:      count,
		Age:        req.Age,
		Weight:     req.Weight,
		Breed:      strings.TrimSpace(req.Breed),
		Notes:      req.Notes,
	}
	a.Activate()
	return a, nil
}

// Update applies the non-nil fields of req to an active animal.
func (h *Herd) Update(id int64, req UpdateAnimalRequest) (*Animal, error) {
	a, ok := h.GetActive(id)
	if !ok {
		return nil, ErrAnimalNotFound
	}
	if req.Type != nil && !ValidAnimalType(*req.Type) {
		return nil, ErrInvalidAnimal
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		a.Type = AnimalType(*req.Type)
	}
	if req.Count != nil && *req.Count >= 1 {
		a.Count = *req.Count
	}
	if req.Age != nil {
		a.Age = *req.Age
	}
	if req.Weight != nil {
		a.Weight = *req.Weight
	}
	if req.Breed != nil {
		a.Breed = strings.TrimSpace(*req.Breed)
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	return a, nil
}

// Deactivate archives an active animal and returns it for saving.
func (h *Herd) Deactivate(id int64) (*Animal, error) {
	a, ok := h.GetActive(id)
	if !ok {
		return nil, ErrAnimalNotFound
	}
	a.Deactivate()
	return a, nil
}
