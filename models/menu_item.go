package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255); not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2); not null" json:"price"`
	Category    string    `gorm:"type:varchar(50); not null" json:"category"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// Kategori menu yang valid (fixed set)
var MenuCategories = []string{
	"Breakfast",
	"Main Course",
	"Breads",
	"Sides",
	"Desserts",
	"Beverages",
}

func IsValidCategory(category string) bool {
	for _, c := range MenuCategories {
		if c == category {
			return true
		}
	}
	return false
}
