package models

import (
	"fmt"

	"gorm.io/gorm"
)

var seedCategories = []string{
	"Paan Corner",
	"Dairy, Bread & Eggs",
	"Fruits & Vegetables",
	"Cold Drinks & Juices",
	"Snacks & Munchies",
	"Breakfast & Instant Food",
	"Sweet Tooth",
	"Atta, Rice & Dal",
	"Chicken, Meat & Fish",
	"Masala, Oil & More",
	"Sauces & Spreads",
	"Baby Care",
	"Pharma & Wellness",
	"Cleaning Essentials",
	"Home & Office",
	"Personal Care",
	"Pet Care",
	"Organic & Premium",
	"Ice Creams",
	"Tea, Coffee & More",
}

// SeedCatalog inserts the storefront categories when the table is empty.
// Products are administered separately (admin endpoints / external tooling).
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]Category, 0, len(seedCategories))
	for _, name := range seedCategories {
		categories = append(categories, Category{
			Name:     name,
			ImageURL: fmt.Sprintf("https://via.placeholder.com/200x200?text=%s", name),
		})
	}
	return db.Create(&categories).Error
}
