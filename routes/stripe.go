package routes

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82"

	"make-the-change/database"
	"make-the-change/integrations/stripepay"
	"make-the-change/models"
	"make-the-change/services"
)

func SetupStripeRoutes(app *fiber.App) {
	// Pas d'authentification : la signature Stripe fait foi.
	app.Post("/stripe/webhook", handleStripeWebhook)
}

func handleStripeWebhook(c *fiber.Ctx) error {
	event, err := stripepay.ConstructEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Signature webhook Stripe invalide: %v", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutCompleted(event)
	case "invoice.paid":
		handleInvoicePaid(event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(event)
	default:
		log.Printf("Événement Stripe ignoré: %s", event.Type)
	}

	return c.SendStatus(fiber.StatusOK)
}

// handleCheckoutCompleted confirme l'investissement payé et crédite les
// points. La confirmation est idempotente : une relivraison du webhook
// retrouve un investissement déjà confirmé et ne fait rien.
func handleCheckoutCompleted(event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("Erreur décodage checkout session: %v", err)
		return
	}

	investmentID, ok := session.Metadata["investment_id"]
	if !ok {
		log.Printf("Checkout session %s sans investment_id, ignorée", session.ID)
		return
	}

	var inv models.Investment
	database.DB.Where("id = ?", investmentID).First(&inv)
	if inv.ID == 0 {
		log.Printf("Investissement %s introuvable pour la session %s", investmentID, session.ID)
		return
	}

	calc, err := services.ConfirmInvestment(database.DB, &inv)
	if err != nil {
		log.Printf("Erreur confirmation investissement %d: %v", inv.ID, err)
		return
	}
	if calc != nil {
		log.Printf("Investissement %d confirmé: %d points crédités", inv.ID, calc.TotalPoints)
	}
}

// handleInvoicePaid enregistre une échéance d'abonnement facturée.
func handleInvoicePaid(event stripe.Event) {
	var invoice struct {
		ID       string            `json:"id"`
		Metadata map[string]string `json:"metadata"`

		SubscriptionDetails struct {
			Metadata map[string]string `json:"metadata"`
		} `json:"subscription_details"`
	}
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		log.Printf("Erreur décodage facture: %v", err)
		return
	}

	subscriptionID, ok := invoice.Metadata["subscription_id"]
	if !ok {
		subscriptionID, ok = invoice.SubscriptionDetails.Metadata["subscription_id"]
	}
	if !ok {
		log.Printf("Facture %s sans subscription_id, ignorée", invoice.ID)
		return
	}

	var sub models.Subscription
	database.DB.Where("id = ?", subscriptionID).First(&sub)
	if sub.ID == 0 {
		log.Printf("Abonnement %s introuvable pour la facture %s", subscriptionID, invoice.ID)
		return
	}

	calc, err := services.RecordSubscriptionCycle(database.DB, &sub, "invoice:"+invoice.ID)
	if err != nil {
		log.Printf("Erreur échéance abonnement %d: %v", sub.ID, err)
		return
	}
	if calc == nil {
		log.Printf("Facture %s déjà créditée pour l'abonnement %d, relivraison ignorée", invoice.ID, sub.ID)
		return
	}
	log.Printf("Échéance abonnement %d enregistrée: %d points crédités", sub.ID, calc.TotalPoints)
}

func handleSubscriptionDeleted(event stripe.Event) {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		log.Printf("Erreur décodage abonnement: %v", err)
		return
	}

	subscriptionID, ok := stripeSub.Metadata["subscription_id"]
	if !ok {
		return
	}

	var sub models.Subscription
	database.DB.Where("id = ?", subscriptionID).First(&sub)
	if sub.ID == 0 || sub.Status == models.SubscriptionStatusCancelled {
		return
	}

	now := time.Now()
	database.DB.Model(&sub).Updates(map[string]interface{}{
		"status":       models.SubscriptionStatusCancelled,
		"cancelled_at": &now,
	})
	log.Printf("Abonnement %d résilié via Stripe (%s)", sub.ID, stripeSub.ID)
}
