package db

import "time"

// OrderModel is the persistence shape for orders. Items are stored as a JSON
// array in a text column to stay portable across postgres versions.
type OrderModel struct {
	ID         string `gorm:"primaryKey;size:64"`
	CustomerID string `gorm:"index;size:128;not null"`
	ItemsJSON  string `gorm:"column:items;type:text;not null"`
	Status     string `gorm:"size:16;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
