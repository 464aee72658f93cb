package db

import (
	"errors"
	"fmt"

	"ordersd/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errDBUnavailable = errors.New("database unavailable")

type Store struct {
	DB *gorm.DB
}

// NewStore connects to postgres and migrates the orders schema. An empty DSN
// returns a no-db store; callers fall back to the in-memory repository.
func NewStore(cfg config.Config) (*Store, error) {
	if cfg.PostgresDSN == "" {
		return &Store{DB: nil}, nil
	}
	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := gdb.AutoMigrate(&OrderModel{}); err != nil {
		return nil, fmt.Errorf("migrate orders: %w", err)
	}
	return &Store{DB: gdb}, nil
}
