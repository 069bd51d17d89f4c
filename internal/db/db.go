package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cheese-shop/internal/catalog"
	"cheese-shop/internal/config"
	"cheese-shop/internal/user"
)

// Init opens the postgres connection and migrates the shop models. The
// returned handle is shared by all stores; gorm manages the underlying pool.
// TranslateError turns driver-level unique violations into
// gorm.ErrDuplicatedKey so the stores stay portable across the postgres and
// sqlite (test) drivers.
func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(&user.User{}, &catalog.Cheese{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
