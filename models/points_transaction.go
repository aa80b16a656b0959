package models

import "gorm.io/gorm"

const (
	TxEarnInvestment   = "earn_investment"
	TxEarnSubscription = "earn_subscription"
	TxSpendOrder       = "spend_order"
	TxAdjustment       = "adjustment"
)

// PointsTransaction est une ligne du grand livre de points : un crédit
// (Delta > 0) ou un débit (Delta < 0), avec le solde résultant.
type PointsTransaction struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Delta        int    `gorm:"not null" json:"delta"`
	BalanceAfter int    `gorm:"not null" json:"balance_after"`
	Kind         string `gorm:"not null" json:"kind"`
	Reference    string `json:"reference"`
}
