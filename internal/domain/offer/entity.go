package offer

import (
	"math"
	"time"

	"vetclinic/internal/pkg/archive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusInactive  Status = "inactive"
	StatusExhausted Status = "exhausted"
)

type Offer struct {
	ID            int64        `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	TitleAr       string       `gorm:"size:255" json:"titleAr,omitempty"`
	Description   string       `gorm:"type:text" json:"description,omitempty"`
	DiscountType  DiscountType `gorm:"size:20;not null" json:"discountType"`
	DiscountValue float64      `gorm:"not null" json:"discountValue"`
	StartDate     time.Time    `gorm:"not null;index" json:"startDate"`
	EndDate       time.Time    `gorm:"not null;index" json:"endDate"`
	UsageLimit    *int         `json:"usageLimit,omitempty"`
	UsedCount     int          `gorm:"not null;default:0" json:"usedCount"`
	MinAmount     float64      `gorm:"not null;default:0" json:"minAmount"`
	MaxDiscount   *float64     `json:"maxDiscount,omitempty"`
	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Computed is filled on read and never stored.
	Computed Status `gorm:"-" json:"status"`
}

func (Offer) TableName() string { return "offers" }

// Status derives the lifecycle state at now.
func (o *Offer) Status(now time.Time) Status {
	switch {
	case !o.Active():
		return StatusInactive
	case now.Before(o.StartDate):
		return StatusUpcoming
	case now.After(o.EndDate):
		return StatusExpired
	case o.UsageLimit != nil && o.UsedCount >= *o.UsageLimit:
		return StatusExhausted
	default:
		return StatusActive
	}
}

func (o *Offer) IsValid(now time.Time) bool {
	return o.Status(now) == StatusActive
}

// Discount returns the amount taken off. It never exceeds amount.
func (o *Offer) Discount(amount float64, now time.Time) (float64, error) {
	if !o.IsValid(now) {
		return 0, ErrOfferNotValid
	}
	if amount < o.MinAmount {
		return 0, ErrBelowMinimum
	}

	var d float64
	switch o.DiscountType {
	case DiscountPercentage:
		d = amount * o.DiscountValue / 100
		if o.MaxDiscount != nil && d > *o.MaxDiscount {
			d = *o.MaxDiscount
		}
	case DiscountFixed:
		d = o.DiscountValue
	default:
		return 0, ErrInvalidDiscount
	}
	if d > amount {
		d = amount
	}
	return round2(d), nil
}

func (o *Offer) withStatus(now time.Time) *Offer {
	o.Computed = o.Status(now)
	return o
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
