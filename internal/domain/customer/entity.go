package customer

import (
	"time"

	"vetclinic/internal/pkg/archive"
)

type Customer struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Phone   string `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`
	City    string `gorm:"size:100;index" json:"city,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`

	Animals []Animal `gorm:"foreignKey:CustomerID" json:"animals"`

	TotalBookings   int        `gorm:"not null;default:0" json:"totalBookings"`
	LastBookingDate *time.Time `json:"lastBookingDate,omitempty"`

	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Customer) TableName() string { return "customers" }

// Herd returns an id-keyed view over the loaded animals.
func (c *Customer) Herd() *Herd {
	return NewHerd(c.ID, c.Animals)
}
