package services

import (
	"errors"

	"make-the-change/points"
)

var ErrUnknownPlan = errors.New("barème inconnu pour cette combinaison")

// Barème de bonus par type d'investissement (pourcentage entier).
var investmentBonusRates = map[points.InvestmentType]float64{
	points.InvestmentRuche:             30,
	points.InvestmentOlivier:           40,
	points.InvestmentParcelleFamiliale: 50,
}

type subscriptionPlan struct {
	Type      points.SubscriptionType
	Frequency points.BillingFrequency
}

type subscriptionRate struct {
	AmountEUR       float64
	BonusPercentage float64
}

// Barème des abonnements ambassadeur : montant facturé par échéance et
// bonus associé. L'annuel porte un bonus plus élevé que le mensuel.
var subscriptionRates = map[subscriptionPlan]subscriptionRate{
	{points.SubscriptionAmbassadeurStandard, points.FrequencyMonthly}: {18, 20},
	{points.SubscriptionAmbassadeurStandard, points.FrequencyAnnual}:  {180, 30},
	{points.SubscriptionAmbassadeurPremium, points.FrequencyMonthly}:  {32, 30},
	{points.SubscriptionAmbassadeurPremium, points.FrequencyAnnual}:   {320, 40},
}

// ResolveInvestmentBonus renvoie le pourcentage de bonus applicable à un
// type d'investissement.
func ResolveInvestmentBonus(t points.InvestmentType) (float64, error) {
	rate, ok := investmentBonusRates[t]
	if !ok {
		return 0, ErrUnknownPlan
	}
	return rate, nil
}

// ResolveSubscriptionPlan renvoie le montant par échéance et le bonus pour
// une formule et une cadence données.
func ResolveSubscriptionPlan(t points.SubscriptionType, f points.BillingFrequency) (amountEUR, bonusPercentage float64, err error) {
	rate, ok := subscriptionRates[subscriptionPlan{t, f}]
	if !ok {
		return 0, 0, ErrUnknownPlan
	}
	return rate.AmountEUR, rate.BonusPercentage, nil
}
