package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a spending bucket with a monthly budget.
// BudgetCent stores the budget in cents to avoid float drift.
type Category struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"size:36;index;not null"` // owner
	Name       string `gorm:"size:64;not null"`
	BudgetCent int64  `gorm:"not null"`
	Color      string `gorm:"size:16"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
