package models

import "time"

// Address is a user's shipping address. At most one address per user may
// have IsDefault set; the address controllers clear the others inside the
// same transaction before setting it.
type Address struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"index;not null" json:"userId"`
	FullName     string    `gorm:"not null" json:"fullName"`
	PhoneNumber  string    `gorm:"not null" json:"phoneNumber"`
	AddressLine1 string    `gorm:"not null" json:"addressLine1"`
	AddressLine2 *string   `json:"addressLine2"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	PostalCode   string    `gorm:"not null" json:"postalCode"`
	IsDefault    bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
}
