package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	ImageURL  string    `gorm:"not null" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string   `gorm:"not null" json:"name"`
	CategoryID uint     `gorm:"index;not null" json:"categoryId"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`
	ImageURL   string   `gorm:"not null" json:"imageUrl"`
	// Quantity is the pack-size label shown to the shopper, e.g. "500 g".
	Quantity     string    `gorm:"not null" json:"quantity"`
	Price        float64   `gorm:"not null" json:"price"`
	DeliveryTime string    `gorm:"not null;default:'8 mins'" json:"deliveryTime"`
	CreatedAt    time.Time `json:"createdAt"`
}
