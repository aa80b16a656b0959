package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"make-the-change/models"
)

var ErrInsufficientBalance = errors.New("solde de points insuffisant")

// CreditPoints ajoute des points au solde d'un utilisateur et trace la ligne
// dans le grand livre, le tout dans une seule transaction.
func CreditPoints(db *gorm.DB, userID uint, pts int, kind, reference string) (*models.PointsTransaction, error) {
	if pts <= 0 {
		return nil, fmt.Errorf("crédit de points invalide: %d", pts)
	}
	return applyDelta(db, userID, pts, kind, reference)
}

// DebitPoints retire des points du solde. Échoue si le solde est insuffisant.
func DebitPoints(db *gorm.DB, userID uint, pts int, kind, reference string) (*models.PointsTransaction, error) {
	if pts <= 0 {
		return nil, fmt.Errorf("débit de points invalide: %d", pts)
	}
	return applyDelta(db, userID, -pts, kind, reference)
}

func applyDelta(db *gorm.DB, userID uint, delta int, kind, reference string) (*models.PointsTransaction, error) {
	var entry models.PointsTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		// Verrou de ligne : deux deltas concurrents sur le même utilisateur
		// se sérialisent, sinon l'un des deux écrase l'autre en
		// read-committed.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return fmt.Errorf("utilisateur introuvable: %w", err)
		}

		newBalance := user.PointsBalance + delta
		if newBalance < 0 {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&user).Update("points_balance", newBalance).Error; err != nil {
			return err
		}

		entry = models.PointsTransaction{
			UserID:       userID,
			Delta:        delta,
			BalanceAfter: newBalance,
			Kind:         kind,
			Reference:    reference,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
