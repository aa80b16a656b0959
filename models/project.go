package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProjectStatusDraft    = "draft"
	ProjectStatusActive   = "active"
	ProjectStatusFunded   = "funded"
	ProjectStatusArchived = "archived"
)

// Project est un projet finançable d'un partenaire. Type reprend les types
// d'investissement du catalogue (ruche, olivier, parcelle_familiale).
type Project struct {
	gorm.Model
	PartnerID    uint              `gorm:"not null;index" json:"partner_id"`
	Name         string            `json:"name"`
	Slug         string            `gorm:"uniqueIndex" json:"slug"`
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	TargetEUR    float64           `json:"target_eur"`
	CollectedEUR float64           `gorm:"default:0" json:"collected_eur"`
	Status       string            `gorm:"default:draft" json:"status"`
	Metadata     datatypes.JSONMap `json:"metadata"`

	Partner Partner `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
