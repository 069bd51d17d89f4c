package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrConflict = errors.New("catalog constraint violation")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListAll returns every catalog entry in insertion order.
func (s *Store) ListAll() ([]Cheese, error) {
	var cheeses []Cheese
	if err := s.db.Order("created_at").Find(&cheeses).Error; err != nil {
		return nil, fmt.Errorf("list cheeses: %w", err)
	}
	return cheeses, nil
}

// Upsert inserts a catalog entry, or, when the (name, description) natural
// key already exists, updates the existing row's image path in place. Any
// other integrity violation rolls the transaction back and surfaces as
// ErrConflict.
func (s *Store) Upsert(name, description, imagePath string) error {
	entry := Cheese{Name: name, Description: description, ImagePath: imagePath}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}, {Name: "description"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "image_path",
			}),
		}).Create(&entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fmt.Errorf("upsert cheese: %w", err)
	}
	return nil
}
