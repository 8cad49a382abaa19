package branch

import (
	"strings"
	"time"

	"vetclinic/internal/pkg/archive"
)

// WorkingHours are wall-clock "HH:MM" bounds in the clinic timezone; End is exclusive for slots.
type WorkingHours struct {
	Start string `gorm:"column:start;size:5;not null;default:'08:00'" json:"start"`
	End   string `gorm:"column:end;size:5;not null;default:'16:00'" json:"end"`
}

type Branch struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Location     string       `gorm:"size:500" json:"location"`
	City         string       `gorm:"size:100;index" json:"city"`
	Phone        string       `gorm:"size:20" json:"phone,omitempty"`
	WorkingHours WorkingHours `gorm:"embedded;embeddedPrefix:working_hours_" json:"workingHours"`
	// WorkingDays holds lowercase English weekday names; empty means open every day.
	WorkingDays []string `gorm:"serializer:json;type:text" json:"workingDays"`
	Capacity    int      `gorm:"not null;default:1" json:"capacity"`
	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Branch) TableName() string { return "branches" }

// OpenOn reports whether the branch takes appointments on the given weekday.
func (b *Branch) OpenOn(day time.Weekday) bool {
	if len(b.WorkingDays) == 0 {
		return true
	}
	name := strings.ToLower(day.String())
	for _, d := range b.WorkingDays {
		if strings.ToLower(strings.TrimSpace(d)) == name {
			return true
		}
	}
	return false
}

// ValidDay reports whether s names a weekday.
func ValidDay(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return true
		}
	}
	return false
}
