package points

// Types d'investissement proposés par la plateforme.
type InvestmentType string

const (
	InvestmentRuche             InvestmentType = "ruche"
	InvestmentOlivier           InvestmentType = "olivier"
	InvestmentParcelleFamiliale InvestmentType = "parcelle_familiale"
)

// Formules d'abonnement ambassadeur.
type SubscriptionType string

const (
	SubscriptionAmbassadeurStandard SubscriptionType = "ambassadeur_standard"
	SubscriptionAmbassadeurPremium  SubscriptionType = "ambassadeur_premium"
)

// Fréquences de facturation reconnues.
type BillingFrequency string

const (
	FrequencyMonthly BillingFrequency = "monthly"
	FrequencyAnnual  BillingFrequency = "annual"
)

// Investment décrit une contribution ponctuelle confirmée par le paiement.
// Type et Partner sont informatifs : ils n'influencent pas le calcul.
type Investment struct {
	Type            InvestmentType `json:"type"`
	AmountEUR       float64        `json:"amount_eur"`
	Partner         string         `json:"partner"`
	BonusPercentage float64        `json:"bonus_percentage"`
}

// Subscription décrit une échéance d'abonnement facturée.
type Subscription struct {
	Type             SubscriptionType `json:"type"`
	BillingFrequency BillingFrequency `json:"billing_frequency"`
	AmountEUR        float64          `json:"amount_eur"`
	BonusPercentage  float64          `json:"bonus_percentage"`
}

// Calculation est le résultat d'un calcul de points.
// Invariants : TotalPoints = BasePoints + BonusPoints et
// EuroValueEquivalent = TotalPoints (1 point = 1 €).
type Calculation struct {
	BasePoints          int            `json:"base_points"`
	BonusPoints         int            `json:"bonus_points"`
	TotalPoints         int            `json:"total_points"`
	InvestmentType      InvestmentType `json:"investment_type,omitempty"`
	EuroValueEquivalent int            `json:"euro_value_equivalent"`
}

// ValidSubscriptionType indique si la formule fait partie des formules reconnues.
func ValidSubscriptionType(t SubscriptionType) bool {
	switch t {
	case SubscriptionAmbassadeurStandard, SubscriptionAmbassadeurPremium:
		return true
	}
	return false
}

// ValidBillingFrequency indique si la cadence fait partie des cadences reconnues.
func ValidBillingFrequency(f BillingFrequency) bool {
	switch f {
	case FrequencyMonthly, FrequencyAnnual:
		return true
	}
	return false
}

// ValidInvestmentType indique si le type d'investissement est connu du catalogue.
func ValidInvestmentType(t InvestmentType) bool {
	switch t {
	case InvestmentRuche, InvestmentOlivier, InvestmentParcelleFamiliale:
		return true
	}
	return false
}
