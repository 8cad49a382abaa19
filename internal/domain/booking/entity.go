package booking

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses hold their slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// AnimalSnapshot is the animal as it was when the booking was made.
type AnimalSnapshot struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Age    float64 `json:"age"`
	Weight float64 `json:"weight"`
	Breed  string  `json:"breed,omitempty"`
	Count  int     `json:"count"`
}

// VaccinationSnapshot keeps the booked vaccination stable across catalog edits.
type VaccinationSnapshot struct {
	ID              int64   `json:"id"`
	NameAr          string  `json:"nameAr"`
	NameEn          string  `json:"nameEn"`
	Price           float64 `json:"price"`
	Frequency       string  `json:"frequency"`
	FrequencyMonths *int    `json:"frequencyMonths,omitempty"`
	Duration        int     `json:"duration"`
}

type Booking struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	BookingNumber string `gorm:"size:20;not null;uniqueIndex" json:"bookingNumber"`

	CustomerID    int64  `gorm:"not null;index" json:"customerId"`
	CustomerName  string `gorm:"size:255" json:"customerName"`
	CustomerPhone string `gorm:"size:20" json:"customerPhone"`
	BranchID      int64  `gorm:"not null;uniqueIndex:idx_bookings_slot,priority:1;index" json:"branchId"`
	DoctorID      *int64 `gorm:"index" json:"doctorId,omitempty"`

	Animal      AnimalSnapshot      `gorm:"serializer:json;type:text" json:"animal"`
	Vaccination VaccinationSnapshot `gorm:"serializer:json;type:text" json:"vaccination"`

	AppointmentDate string `gorm:"size:10;not null;uniqueIndex:idx_bookings_slot,priority:2;index" json:"appointmentDate"`
	AppointmentTime string `gorm:"size:5;not null;uniqueIndex:idx_bookings_slot,priority:3" json:"appointmentTime"`
	// SlotHold is 1 while the booking occupies its slot and NULL otherwise,
	// so the unique index only binds pending and confirmed bookings.
	SlotHold *int `gorm:"uniqueIndex:idx_bookings_slot,priority:4" json:"-"`

	Status        Status  `gorm:"size:20;not null;index" json:"status"`
	Price         float64 `gorm:"not null" json:"price"`
	Discount      float64 `gorm:"not null;default:0" json:"discount"`
	TotalAmount   float64 `gorm:"not null" json:"totalAmount"`
	OfferID       *int64  `json:"offerId,omitempty"`
	Paid          bool    `gorm:"not null;default:false" json:"paid"`
	PaymentMethod string  `gorm:"size:20" json:"paymentMethod,omitempty"`
	Notes         string  `gorm:"type:text" json:"notes,omitempty"`
	CancelReason  string  `gorm:"type:text" json:"cancelReason,omitempty"`
	CreatedBy     *int64  `json:"createdBy,omitempty"`

	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

// HoldsSlot reports whether the booking blocks its (branch, date, time).
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BeforeSave keeps SlotHold in step with Status on every insert and save.
func (b *Booking) BeforeSave(*gorm.DB) error {
	if b.HoldsSlot() {
		one := 1
		b.SlotHold = &one
	} else {
		b.SlotHold = nil
	}
	return nil
}

// AppointmentAt is the appointment wall-clock time in loc.
func (b *Booking) AppointmentAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.AppointmentDate+" "+b.AppointmentTime, loc)
}
