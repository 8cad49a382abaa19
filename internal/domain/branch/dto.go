package branch

type CreateBranchRequest struct {
	Name         string       `json:"name" validate:"required,min=2,max=255"`
	Location     string       `json:"location" validate:"omitempty,max=500"`
	City         string       `json:"city" validate:"required,max=100"`
	Phone        string       `json:"phone" validate:"omitempty,max=20"`
	WorkingHours HoursRequest `json:"workingHours"`
	WorkingDays  []string     `json:"workingDays" validate:"omitempty,dive,required"`
	Capacity     int          `json:"capacity" validate:"omitempty,gte=1,lte=100"`
}

type HoursRequest struct {
	Start string `json:"start" validate:"omitempty,hhmm"`
	End   string `json:"end" validate:"omitempty,hhmm"`
}

type UpdateBranchRequest struct {
	Name         *string       `json:"name" validate:"omitempty,min=2,max=255"`
	Location     *string       `json:"location" validate:"omitempty,max=500"`
	City         *string       `json:"city" validate:"omitempty,max=100"`
	Phone        *string       `json:"phone" validate:"omitempty,max=20"`
	WorkingHours *HoursRequest `json:"workingHours"`
	WorkingDays  []string      `json:"workingDays" validate:"omitempty,dive,required"`
	Capacity     *int          `json:"capacity" validate:"omitempty,gte=1,lte=100"`
	IsActive     *bool         `json:"isActive"`
}
