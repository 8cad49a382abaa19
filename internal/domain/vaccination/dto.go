package vaccination

type AgeRangeRequest struct {
	Min *float64 `json:"min" validate:"omitempty,gte=0"`
	Max *float64 `json:"max" validate:"omitempty,gte=0"`
}

type CreateVaccinationRequest struct {
	NameAr          string          `json:"nameAr" validate:"required,max=255"`
	NameEn          string          `json:"nameEn" validate:"required,max=255"`
	Description     string          `json:"description" validate:"omitempty,max=5000"`
	AnimalTypes     []string        `json:"animalTypes" validate:"required,min=1,dive,oneof=camel sheep goat cow horse other all"`
	Price           float64         `json:"price" validate:"gte=0"`
	Duration        int             `json:"duration" validate:"omitempty,gte=5,lte=480"`
	Frequency       string          `json:"frequency" validate:"required,oneof=once annually biannually monthly custom"`
	FrequencyMonths *int            `json:"frequencyMonths" validate:"omitempty,gte=1,lte=120"`
	AgeRange        AgeRangeRequest `json:"ageRange"`
	SideEffects     []string        `json:"sideEffects"`
}

type UpdateVaccinationRequest struct {
	NameAr          *string          `json:"nameAr" validate:"omitempty,max=255"`
	NameEn          *string          `json:"nameEn" validate:"omitempty,max=255"`
	Description     *string          `json:"description" validate:"omitempty,max=5000"`
	AnimalTypes     []string         `json:"animalTypes" validate:"omitempty,min=1,dive,oneof=camel sheep goat cow horse other all"`
	Price           *float64         `json:"price" validate:"omitempty,gte=0"`
	Duration        *int             `json:"duration" validate:"omitempty,gte=5,lte=480"`
	Frequency       *string          `json:"frequency" validate:"omitempty,oneof=once annually biannually monthly custom"`
	FrequencyMonths *int             `json:"frequencyMonths" validate:"omitempty,gte=1,lte=120"`
	AgeRange        *AgeRangeRequest `json:"ageRange"`
	SideEffects     []string         `json:"sideEffects"`
	IsActive        *bool            `json:"isActive"`
}

type ListFilter struct {
	AnimalType string
	ActiveOnly bool
	Search     string
}
