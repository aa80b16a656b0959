package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order est une commande réglée en points sur le catalogue récompenses.
// Items contient les lignes {product_id, name, quantity, price_points}.
type Order struct {
	gorm.Model
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	Items       datatypes.JSONMap `json:"items"`
	TotalPoints int               `gorm:"not null" json:"total_points"`
	Status      string            `gorm:"default:pending" json:"status"`
}
