package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cheese is a catalog entry. The (name, description) pair is the natural key:
// upserting an existing pair updates the row in place instead of inserting a
// duplicate.
type Cheese struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:uq_cheese_name_description" json:"name"`
	Description string    `gorm:"uniqueIndex:uq_cheese_name_description" json:"description"`
	ImagePath   string    `gorm:"size:255" json:"image_path"`
	CreatedAt   time.Time `json:"-"`
}

func (c *Cheese) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
