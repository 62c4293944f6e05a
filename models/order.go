package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed, being prepared
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the order
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before delivery
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         string      `gorm:"index;not null" json:"userId"`
	AddressID      uint        `gorm:"not null" json:"addressId"`
	Address        Address     `gorm:"foreignKey:AddressID" json:"-"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	TotalAmount    float64     `gorm:"not null" json:"totalAmount"`
	DeliveryCharge float64     `gorm:"not null;default:15" json:"deliveryCharge"`
	HandlingCharge float64     `gorm:"not null;default:5" json:"handlingCharge"`
	Status         OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// OrderItem is an immutable snapshot of a cart line at purchase time.
// PriceAtPurchase is copied from the product when the order is placed so
// order history survives later catalog price changes.
type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"index;not null" json:"orderId"`
	ProductID       uint      `gorm:"not null" json:"productId"`
	Product         Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null" json:"priceAtPurchase"`
	CreatedAt       time.Time `json:"createdAt"`
}
