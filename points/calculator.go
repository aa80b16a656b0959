package points

import (
	"errors"
	"math"
)

// Erreurs de validation, distinctes pour que l'appelant puisse brancher
// sur la cause (errors.Is).
var (
	ErrInvalidAmount           = errors.New("montant d'investissement invalide")
	ErrInvalidBonusPercentage  = errors.New("pourcentage de bonus invalide")
	ErrInvalidSubscriptionType = errors.New("type d'abonnement invalide")
	ErrInvalidBillingFrequency = errors.New("fréquence de facturation invalide")
)

// ComputeInvestmentPoints calcule les points gagnés pour un investissement.
//
// Les points de base sont le montant arrondi à l'entier supérieur : un
// contributeur ne reçoit jamais moins de points que d'euros versés. Le bonus
// s'applique sur la base déjà arrondie, pas sur le montant brut, puis est
// arrondi au plus proche (0,5 vers le haut). Aucun plafond n'est appliqué au
// pourcentage de bonus : c'est voulu, les règles métier n'en définissent pas.
func ComputeInvestmentPoints(inv Investment) (Calculation, error) {
	if inv.AmountEUR <= 0 {
		return Calculation{}, ErrInvalidAmount
	}
	if inv.BonusPercentage < 0 {
		return Calculation{}, ErrInvalidBonusPercentage
	}

	calc := compute(inv.AmountEUR, inv.BonusPercentage)
	calc.InvestmentType = inv.Type
	return calc, nil
}

// ComputeSubscriptionPoints calcule les points gagnés pour une échéance
// d'abonnement. Même formule que les investissements ; s'y ajoute la
// validation des énumérations formule/cadence.
func ComputeSubscriptionPoints(sub Subscription) (Calculation, error) {
	if !ValidSubscriptionType(sub.Type) {
		return Calculation{}, ErrInvalidSubscriptionType
	}
	if !ValidBillingFrequency(sub.BillingFrequency) {
		return Calculation{}, ErrInvalidBillingFrequency
	}
	if sub.AmountEUR <= 0 {
		return Calculation{}, ErrInvalidAmount
	}
	if sub.BonusPercentage < 0 {
		return Calculation{}, ErrInvalidBonusPercentage
	}

	return compute(sub.AmountEUR, sub.BonusPercentage), nil
}

func compute(amountEUR, bonusPercentage float64) Calculation {
	base := int(math.Ceil(amountEUR))
	bonus := roundHalfUp(float64(base) * bonusPercentage / 100)
	total := base + bonus
	return Calculation{
		BasePoints:          base,
		BonusPoints:         bonus,
		TotalPoints:         total,
		EuroValueEquivalent: total,
	}
}

// roundHalfUp arrondit au plus proche, 0,5 exactement vers le haut.
// Les entrées sont toujours >= 0 ici.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
