// Package sequence issues gap-free, strictly increasing document numbers.
package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	Bookings      = "bookings"
	Consultations = "consultations"
)

// Sequence is one named counter row.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

func (Sequence) TableName() string { return "sequences" }

// Next atomically increments the named counter and returns the new value.
// The UPDATE takes the row lock, so concurrent callers never observe the same value.
func Next(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Sequence{}).
			Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&Sequence{Name: name, Value: 1}).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var seq Sequence
		if err := tx.Where("name = ?", name).Take(&seq).Error; err != nil {
			return err
		}
		value = seq.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return value, nil
}

// Format renders n with prefix and zero padding, e.g. Format("BK", 1, 6) = "BK000001".
func Format(prefix string, n int64, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
