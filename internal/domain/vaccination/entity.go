package vaccination

import (
	"time"

	"vetclinic/internal/pkg/archive"
)

type Frequency string

const (
	FrequencyOnce       Frequency = "once"
	FrequencyAnnually   Frequency = "annually"
	FrequencyBiannually Frequency = "biannually"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyCustom     Frequency = "custom"
)

// AllAnimals in AnimalTypes makes a vaccination applicable to every species.
const AllAnimals = "all"

// AgeRange bounds are inclusive and optional, in the same unit as the animal's age.
type AgeRange struct {
	Min *float64 `gorm:"column:min" json:"min,omitempty"`
	Max *float64 `gorm:"column:max" json:"max,omitempty"`
}

type Vaccination struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	NameAr          string    `gorm:"size:255;not null" json:"nameAr"`
	NameEn          string    `gorm:"size:255;not null" json:"nameEn"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	AnimalTypes     []string  `gorm:"serializer:json;type:text" json:"animalTypes"`
	Price           float64   `gorm:"not null" json:"price"`
	Duration        int       `gorm:"not null;default:30" json:"duration"`
	Frequency       Frequency `gorm:"size:20;not null" json:"frequency"`
	FrequencyMonths *int      `json:"frequencyMonths,omitempty"`
	AgeRange        AgeRange  `gorm:"embedded;embeddedPrefix:age_" json:"ageRange"`
	SideEffects     []string  `gorm:"serializer:json;type:text" json:"sideEffects"`
	archive.Archive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Vaccination) TableName() string { return "vaccinations" }

// Applies reports whether the vaccination may be given to an animal of the given type and age.
func (v *Vaccination) Applies(animalType string, age float64) bool {
	typeOK := false
	for _, t := range v.AnimalTypes {
		if t == animalType || t == AllAnimals {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return false
	}
	if v.AgeRange.Min != nil && age < *v.AgeRange.Min {
		return false
	}
	if v.AgeRange.Max != nil && age > *v.AgeRange.Max {
		return false
	}
	return true
}

// IntervalMonths is the months between doses; 0 means a single dose.
func (v *Vaccination) IntervalMonths() int {
	switch v.Frequency {
	case FrequencyAnnually:
		return 12
	case FrequencyBiannually:
		return 6
	case FrequencyMonthly:
		return 1
	case FrequencyCustom:
		if v.FrequencyMonths != nil {
			return *v.FrequencyMonths
		}
	}
	return 0
}

// NextDue returns when the next dose is due after a dose given at `given`.
func (v *Vaccination) NextDue(given time.Time) (time.Time, bool) {
	months := v.IntervalMonths()
	if months <= 0 {
		return time.Time{}, false
	}
	return given.AddDate(0, months, 0), true
}
