package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction records a single expense against a category. It carries the
// same owner as its category; deleting the category deletes it too.
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;index;not null"` // owner
	CategoryID  string    `gorm:"size:36;index;not null"`
	AmountCent  int64     `gorm:"not null"` // cents
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
