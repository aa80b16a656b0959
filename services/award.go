package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"make-the-change/models"
	"make-the-change/points"
)

// ConfirmInvestment passe un investissement en confirmé, calcule les points
// et les crédite, le tout dans une seule transaction : un échec en cours de
// route ne laisse jamais des points crédités sur un investissement resté en
// attente. Sans effet si l'investissement n'est plus en attente (les
// webhooks Stripe peuvent être livrés plusieurs fois).
func ConfirmInvestment(db *gorm.DB, inv *models.Investment) (*points.Calculation, error) {
	if inv.Status != models.InvestmentStatusPending {
		return nil, nil
	}

	var calc points.Calculation
	err := db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, inv.ProjectID).Error; err != nil {
			return fmt.Errorf("projet introuvable: %w", err)
		}

		var err error
		calc, err = points.ComputeInvestmentPoints(points.Investment{
			Type:            points.InvestmentType(inv.Type),
			AmountEUR:       inv.AmountEUR,
			Partner:         project.Slug,
			BonusPercentage: inv.BonusPercentage,
		})
		if err != nil {
			return err
		}

		if _, err := CreditPoints(tx, inv.UserID, calc.TotalPoints,
			models.TxEarnInvestment, fmt.Sprintf("investment:%d", inv.ID)); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":         models.InvestmentStatusConfirmed,
			"points_awarded": calc.TotalPoints,
			"confirmed_at":   &now,
		}
		if err := tx.Model(inv).Updates(updates).Error; err != nil {
			return err
		}

		// Avancement de la collecte du projet.
		return tx.Model(&project).
			Update("collected_eur", gorm.Expr("collected_eur + ?", inv.AmountEUR)).Error
	})
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

// RecordSubscriptionCycle crédite les points d'une échéance d'abonnement
// facturée. La référence identifie l'échéance (facture Stripe ou saisie
// manuelle) : une référence déjà présente dans le grand livre signifie une
// relivraison du webhook et ne recrédite pas. Tout passe dans une seule
// transaction.
func RecordSubscriptionCycle(db *gorm.DB, sub *models.Subscription, reference string) (*points.Calculation, error) {
	if sub.Status == models.SubscriptionStatusCancelled {
		return nil, fmt.Errorf("abonnement %d résilié", sub.ID)
	}
	if reference == "" {
		return nil, fmt.Errorf("référence d'échéance requise pour l'abonnement %d", sub.ID)
	}

	var calc points.Calculation
	alreadyCredited := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.PointsTransaction
		tx.Where("reference = ? AND kind = ?", reference, models.TxEarnSubscription).First(&existing)
		if existing.ID != 0 {
			alreadyCredited = true
			return nil
		}

		var err error
		calc, err = points.ComputeSubscriptionPoints(points.Subscription{
			Type:             points.SubscriptionType(sub.Type),
			BillingFrequency: points.BillingFrequency(sub.BillingFrequency),
			AmountEUR:        sub.AmountEUR,
			BonusPercentage:  sub.BonusPercentage,
		})
		if err != nil {
			return err
		}

		if _, err := CreditPoints(tx, sub.UserID, calc.TotalPoints,
			models.TxEarnSubscription, reference); err != nil {
			return err
		}

		// Nouvelle période courante.
		start := time.Now()
		end := start.AddDate(0, 1, 0)
		if sub.BillingFrequency == string(points.FrequencyAnnual) {
			end = start.AddDate(1, 0, 0)
		}
		updates := map[string]interface{}{
			"status":               models.SubscriptionStatusActive,
			"current_period_start": start,
			"current_period_end":   &end,
		}
		return tx.Model(sub).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if alreadyCredited {
		return nil, nil
	}
	return &calc, nil
}
