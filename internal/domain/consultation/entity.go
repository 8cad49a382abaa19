package consultation

import (
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Type string

const (
	TypePhone Type = "phone"
	TypeVideo Type = "video"
)

// AnimalSnapshot is the animal as it was when the consultation was requested.
type AnimalSnapshot struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Age   float64 `json:"age"`
	Breed string  `json:"breed,omitempty"`
	Count int     `json:"count"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

type Consultation struct {
	ID                 int64  `gorm:"primaryKey" json:"id"`
	ConsultationNumber string `gorm:"size:20;not null;uniqueIndex" json:"consultationNumber"`

	CustomerID    int64  `gorm:"not null;index" json:"customerId"`
	CustomerName  string `gorm:"size:255" json:"customerName"`
	CustomerPhone string `gorm:"size:20" json:"customerPhone"`
	DoctorID      int64  `gorm:"not null;index" json:"doctorId"`
	// BranchID is the doctor's branch at booking time, 0 for doctors without one.
	BranchID int64          `gorm:"not null;default:0;index" json:"branchId"`
	Animal   AnimalSnapshot `gorm:"serializer:json;type:text" json:"animal"`

	Type          Type   `gorm:"size:10;not null" json:"type"`
	ScheduledDate string `gorm:"size:10;not null;index" json:"scheduledDate"`
	ScheduledTime string `gorm:"size:5;not null" json:"scheduledTime"`
	Duration      int    `gorm:"not null;default:30" json:"duration"`
	Reason        string `gorm:"type:text" json:"reason,omitempty"`
	Status        Status `gorm:"size:20;not null;index" json:"status"`

	Diagnosis   string       `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment   string       `gorm:"type:text" json:"treatment,omitempty"`
	Medications []Medication `gorm:"serializer:json;type:text" json:"medications"`

	Price        float64 `gorm:"not null;default:0" json:"price"`
	Paid         bool    `gorm:"not null;default:false" json:"paid"`
	Notes        string  `gorm:"type:text" json:"notes,omitempty"`
	CancelReason string  `gorm:"type:text" json:"cancelReason,omitempty"`
	CreatedBy    *int64  `json:"createdBy,omitempty"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Consultation) TableName() string { return "consultations" }

func (c *Consultation) doctorRef() *int64 {
	id := c.DoctorID
	return &id
}

// ScheduledAt is the consultation start in loc.
func (c *Consultation) ScheduledAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", c.ScheduledDate+" "+c.ScheduledTime, loc)
	if err != nil {
		return time.Time{}, ErrInvalidSchedule
	}
	return t, nil
}
