package models

import "gorm.io/gorm"

// Product est un article du catalogue récompenses, payable en points
// (1 point = 1 €).
type Product struct {
	gorm.Model
	PartnerID   uint   `gorm:"index" json:"partner_id"`
	Name        string `json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description"`
	PricePoints int    `gorm:"not null" json:"price_points"`
	Stock       int    `gorm:"default:0" json:"stock"`
	Active      bool   `gorm:"default:true" json:"active"`
}
