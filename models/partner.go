package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PartnerStatusActive    = "active"
	PartnerStatusSuspended = "suspended"
)

// Partner est un producteur partenaire (apiculteur, oléiculteur...).
type Partner struct {
	gorm.Model
	Name     string            `json:"name"`
	Slug     string            `gorm:"uniqueIndex" json:"slug"`
	Country  string            `json:"country"`
	Status   string            `gorm:"default:active" json:"status"`
	Metadata datatypes.JSONMap `json:"metadata"`

	Projects []Project `json:"projects,omitempty"`
}
