package routes

import (
	"log"
	"time"

	"github.com/google/uuid"

	"make-the-change/database"
	"make-the-change/integrations/stripepay"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/points"
	"make-the-change/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSubscriptionRoutes(app *fiber.App) {
	grp := app.Group("/subscriptions", middleware.JWTMiddleware)
	grp.Post("/", createSubscription)
	grp.Get("/", listSubscriptions)
	grp.Post("/:id/cancel", cancelSubscription)
	grp.Post("/:id/cycles", middleware.AdminMiddleware, recordCycle)
}

type subscriptionPayload struct {
	Type             string `json:"type"`
	BillingFrequency string `json:"billing_frequency"`
}

func createSubscription(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body subscriptionPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	tier := points.SubscriptionType(body.Type)
	freq := points.BillingFrequency(body.BillingFrequency)
	if !points.ValidSubscriptionType(tier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formule inconnue", "kind": "invalid_subscription_type"})
	}
	if !points.ValidBillingFrequency(freq) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cadence inconnue", "kind": "invalid_billing_frequency"})
	}

	var existing models.Subscription
	database.DB.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).First(&existing)
	if existing.ID != 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Un abonnement actif existe déjà"})
	}

	amount, bonus, err := services.ResolveSubscriptionPlan(tier, freq)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Barème introuvable pour cette formule"})
	}

	sub := models.Subscription{
		UserID:             userID,
		Type:               body.Type,
		BillingFrequency:   body.BillingFrequency,
		AmountEUR:          amount,
		BonusPercentage:    bonus,
		Status:             models.SubscriptionStatusActive,
		CurrentPeriodStart: time.Now(),
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création abonnement"})
	}

	resp := fiber.Map{"subscription": sub}
	if stripepay.Enabled() {
		url, linkID, err := stripepay.CreateSubscriptionCheckout(&sub)
		if err != nil {
			log.Printf("Erreur checkout Stripe pour l'abonnement %d: %v", sub.ID, err)
		} else {
			database.DB.Model(&sub).Update("stripe_subscription_id", linkID)
			resp["checkout_url"] = url
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func listSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var subs []models.Subscription
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs)
	return c.JSON(fiber.Map{"subscriptions": subs})
}

func cancelSubscription(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var sub models.Subscription
	database.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&sub)
	if sub.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Abonnement introuvable"})
	}
	if sub.Status == models.SubscriptionStatusCancelled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Abonnement déjà résilié"})
	}

	now := time.Now()
	database.DB.Model(&sub).Updates(map[string]interface{}{
		"status":       models.SubscriptionStatusCancelled,
		"cancelled_at": &now,
	})

	return c.JSON(fiber.Map{"message": "Abonnement résilié"})
}

// recordCycle enregistre manuellement une échéance facturée (rattrapage
// admin quand le webhook n'est pas passé).
func recordCycle(c *fiber.Ctx) error {
	var sub models.Subscription
	database.DB.First(&sub, c.Params("id"))
	if sub.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Abonnement introuvable"})
	}

	calc, err := services.RecordSubscriptionCycle(database.DB, &sub, "manual:"+uuid.NewString())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":     "Échéance enregistrée",
		"calculation": calc,
	})
}
