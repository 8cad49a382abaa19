package customer

type CreateCustomerRequest struct {
	Name    string                `json:"name" validate:"required,min=2,max=255"`
	Phone   string                `json:"phone" validate:"required,saphone"`
	Email   string                `json:"email" validate:"omitempty,email"`
	Address string                `json:"address" validate:"omitempty,max=500"`
	City    string                `json:"city" validate:"omitempty,max=100"`
	Notes   string                `json:"notes" validate:"omitempty,max=2000"`
	Animals []CreateAnimalRequest `json:"animals" validate:"omitempty,dive"`
}

type UpdateCustomerRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,saphone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
	IsActive *bool   `json:"isActive"`
}

type CreateAnimalRequest struct {
	Name   string  `json:"name" validate:"required,max=255"`
	Type   string  `json:"type" validate:"required,oneof=camel sheep goat cow horse other"`
	Count  int     `json:"count" validate:"omitempty,gte=1"`
	Age    float64 `json:"age" validate:"gte=0"`
	Weight float64 `json:"weight" validate:"gte=0"`
	Breed  string  `json:"breed" validate:"omitempty,max=100"`
	Notes  string  `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAnimalRequest struct {
	Name   *string  `json:"name" validate:"omitempty,max=255"`
	Type   *string  `json:"type" validate:"omitempty,oneof=camel sheep goat cow horse other"`
	Count  *int     `json:"count" validate:"omitempty,gte=1"`
	Age    *float64 `json:"age" validate:"omitempty,gte=0"`
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
	Breed  *string  `json:"breed" validate:"omitempty,max=100"`
	Notes  *string  `json:"notes" validate:"omitempty,max=2000"`
}

type ListFilter struct {
	Search string
	City   string
	Active *bool
	Page   int
	Limit  int
}
