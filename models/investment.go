package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusConfirmed = "confirmed"
	InvestmentStatusCancelled = "cancelled"
)

// Investment est une contribution ponctuelle d'un utilisateur à un projet.
// Le pourcentage de bonus est figé à la création (résolu par le barème du
// moment) ; les points ne sont crédités qu'à la confirmation du paiement.
type Investment struct {
	gorm.Model
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	ProjectID       uint       `gorm:"not null;index" json:"project_id"`
	Type            string     `json:"type"`
	AmountEUR       float64    `gorm:"not null" json:"amount_eur"`
	BonusPercentage float64    `gorm:"not null" json:"bonus_percentage"`
	Status          string     `gorm:"default:pending" json:"status"`
	PointsAwarded   int        `gorm:"default:0" json:"points_awarded"`
	StripeSessionID string     `gorm:"index" json:"-"`
	CheckoutURL     string     `json:"checkout_url,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`

	Project Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
