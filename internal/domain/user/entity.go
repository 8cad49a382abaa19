package user

import (
	"math"
	"time"

	"vetclinic/internal/access"
	"vetclinic/internal/pkg/archive"
)

type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	Role         string `gorm:"size:20;not null;index" json:"role"`
	BranchID     *int64 `gorm:"index" json:"branchId,omitempty"`

	Specialization string   `gorm:"size:255" json:"specialization,omitempty"`
	Rating         float64  `gorm:"not null;default:0" json:"rating"`
	TotalReviews   int      `gorm:"not null;default:0" json:"totalReviews"`
	Reviews        []Review `gorm:"foreignKey:DoctorID" json:"reviews,omitempty"`

	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`

	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsDoctor() bool { return u.Role == access.RoleDoctor }

// BranchRef returns the branch id or 0 for users not attached to a branch.
func (u *User) BranchRef() int64 {
	if u.BranchID == nil {
		return 0
	}
	return *u.BranchID
}

func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Review is a customer's 1 to 5 star rating of a doctor.
type Review struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	DoctorID     int64     `gorm:"not null;index" json:"doctorId"`
	CustomerID   *int64    `gorm:"index" json:"customerId,omitempty"`
	ReviewerName string    `gorm:"size:255" json:"reviewerName,omitempty"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Review) TableName() string { return "doctor_reviews" }

// RecomputeRating is the mean rating rounded to one decimal, 0 with no reviews.
func RecomputeRating(reviews []Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10, len(reviews)
}
