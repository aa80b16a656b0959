package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription est un abonnement ambassadeur. Chaque échéance facturée
// crédite des points via le même calcul que les investissements.
type Subscription struct {
	gorm.Model
	UserID               uint       `gorm:"not null;index" json:"user_id"`
	Type                 string     `json:"type"`
	BillingFrequency     string     `json:"billing_frequency"`
	AmountEUR            float64    `gorm:"not null" json:"amount_eur"`
	BonusPercentage      float64    `gorm:"not null" json:"bonus_percentage"`
	Status               string     `gorm:"default:active" json:"status"`
	StripeSubscriptionID string     `gorm:"index" json:"-"`
	CurrentPeriodStart   time.Time  `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
}
