package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUsernameTaken is returned when a registration collides with an existing
// username. The unique constraint in the database is the source of truth;
// the store never pre-checks and never overwrites.
var ErrUsernameTaken = errors.New("username already taken")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create hashes the raw password and inserts the user in a single
// transaction. On a duplicate username the write is rolled back and
// ErrUsernameTaken is returned with the driver's constraint message attached.
func (s *Store) Create(username, rawPassword string) (*User, error) {
	hash, err := HashPassword(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{Username: username, PasswordHash: hash}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %v", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Store) FindByUsername(username string) (*User, error) {
	var u User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
