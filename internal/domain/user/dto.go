package user

type CreateUserRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Phone          string `json:"phone" validate:"omitempty,saphone"`
	Role           string `json:"role" validate:"required,oneof=admin staff doctor"`
	BranchID       *int64 `json:"branchId" validate:"omitempty,gt=0"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
}

type UpdateUserRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
	Phone          *string `json:"phone" validate:"omitempty,saphone"`
	Role           *string `json:"role" validate:"omitempty,oneof=admin staff doctor"`
	BranchID       *int64  `json:"branchId" validate:"omitempty,gt=0"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	IsActive       *bool   `json:"isActive"`
}

type CreateReviewRequest struct {
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment" validate:"omitempty,max=2000"`
	ReviewerName string `json:"reviewerName" validate:"omitempty,max=255"`
}

type ListFilter struct {
	Role     string
	BranchID *int64
	Search   string
	Active   *bool
	Page     int
	Limit    int
}

// DoctorSummary is the public view of a doctor.
type DoctorSummary struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization,omitempty"`
	BranchID       *int64  `json:"branchId,omitempty"`
	Rating         float64 `json:"rating"`
	TotalReviews   int     `json:"totalReviews"`
}

func summarize(u *User) DoctorSummary {
	return DoctorSummary{
		ID:             u.ID,
		Name:           u.Name,
		Specialization: u.Specialization,
		BranchID:       u.BranchID,
		Rating:         u.Rating,
		TotalReviews:   u.TotalReviews,
	}
}
