package stripepay

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentlink"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
	"github.com/stripe/stripe-go/v82/webhook"

	"make-the-change/models"
	"make-the-change/points"
)

var (
	enabled       bool
	webhookSecret string
)

// Init configure le client Stripe depuis l'environnement. Sans clé API, la
// facturation est désactivée et les parcours passent en confirmation manuelle.
func Init() {
	apiKey := os.Getenv("STRIPE_API_KEY")
	if apiKey == "" {
		log.Println("[INFO] STRIPE_API_KEY n'est pas configuré. La facturation Stripe est désactivée.")
		return
	}
	stripe.Key = apiKey
	webhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Println("[AVERTISSEMENT] STRIPE_WEBHOOK_SECRET n'est pas configuré. Les webhooks seront rejetés.")
	}
	enabled = true
}

func Enabled() bool {
	return enabled
}

// ConstructEvent vérifie la signature d'un webhook et décode l'événement.
func ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, webhookSecret)
}

// eurosToCents convertit un montant en euros vers des centimes Stripe.
// Arrondi au plus proche : 49,99 € donne 4999 centimes, pas 4998
// (la multiplication flottante seule tronquerait).
func eurosToCents(amountEUR float64) int64 {
	return int64(math.Round(amountEUR * 100))
}

// CreateInvestmentCheckout crée un lien de paiement ponctuel pour un
// investissement. Les montants Stripe sont en centimes.
func CreateInvestmentCheckout(inv *models.Investment, projectName string) (url string, sessionID string, err error) {
	productParams := &stripe.ProductParams{
		Name:        stripe.String(fmt.Sprintf("Investissement %s — %s", inv.Type, projectName)),
		Description: stripe.String(fmt.Sprintf("investment:%d", inv.ID)),
	}
	prod, err := product.New(productParams)
	if err != nil {
		return "", "", fmt.Errorf("création produit Stripe: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String("eur"),
		UnitAmount: stripe.Int64(eurosToCents(inv.AmountEUR)),
		Product:    stripe.String(prod.ID),
	}
	pr, err := price.New(priceParams)
	if err != nil {
		return "", "", fmt.Errorf("création prix Stripe: %w", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(pr.ID), Quantity: stripe.Int64(1)},
		},
		Metadata: map[string]string{
			"investment_id": fmt.Sprintf("%d", inv.ID),
		},
	}
	link, err := paymentlink.New(linkParams)
	if err != nil {
		return "", "", fmt.Errorf("création lien de paiement Stripe: %w", err)
	}

	log.Printf("Lien de paiement Stripe créé pour l'investissement %d: %s", inv.ID, link.URL)
	return link.URL, link.ID, nil
}

// CreateSubscriptionCheckout crée un lien de paiement récurrent pour un
// abonnement ambassadeur.
func CreateSubscriptionCheckout(sub *models.Subscription) (url string, linkID string, err error) {
	interval := "month"
	if sub.BillingFrequency == string(points.FrequencyAnnual) {
		interval = "year"
	}

	productParams := &stripe.ProductParams{
		Name:        stripe.String(fmt.Sprintf("Abonnement %s (%s)", sub.Type, sub.BillingFrequency)),
		Description: stripe.String(fmt.Sprintf("subscription:%d", sub.ID)),
	}
	prod, err := product.New(productParams)
	if err != nil {
		return "", "", fmt.Errorf("création produit Stripe: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String("eur"),
		UnitAmount: stripe.Int64(eurosToCents(sub.AmountEUR)),
		Product:    stripe.String(prod.ID),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(interval),
			IntervalCount: stripe.Int64(1),
		},
	}
	pr, err := price.New(priceParams)
	if err != nil {
		return "", "", fmt.Errorf("création prix Stripe: %w", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(pr.ID), Quantity: stripe.Int64(1)},
		},
		Metadata: map[string]string{
			"subscription_id": fmt.Sprintf("%d", sub.ID),
		},
	}
	link, err := paymentlink.New(linkParams)
	if err != nil {
		return "", "", fmt.Errorf("création lien de paiement Stripe: %w", err)
	}

	log.Printf("Lien d'abonnement Stripe créé pour l'abonnement %d: %s", sub.ID, link.URL)
	return link.URL, link.ID, nil
}
