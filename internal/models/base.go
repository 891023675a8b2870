package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate hook generates a UUIDv7 for new records. UUIDv7 is time-ordered,
// which keeps primary key inserts append-only.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id.String()
	}
	return nil
}

// All lists every model owned by the application schema, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Transaction{},
	}
}
