package routes

import (
	"log"

	"make-the-change/database"
	"make-the-change/integrations/stripepay"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/points"
	"make-the-change/services"

	"github.com/gofiber/fiber/v2"
)

func SetupInvestmentRoutes(app *fiber.App) {
	grp := app.Group("/investments", middleware.JWTMiddleware)
	grp.Post("/", createInvestment)
	grp.Get("/", listInvestments)
	grp.Get("/:id", getInvestment)
	grp.Post("/:id/confirm", middleware.AdminMiddleware, confirmInvestment)
}

type investmentPayload struct {
	ProjectID uint    `json:"project_id"`
	AmountEUR float64 `json:"amount_eur"`
}

func createInvestment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body investmentPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if body.AmountEUR <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Montant invalide"})
	}

	var project models.Project
	database.DB.First(&project, body.ProjectID)
	if project.ID == 0 || project.Status != models.ProjectStatusActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Projet introuvable ou inactif"})
	}

	bonus, err := services.ResolveInvestmentBonus(points.InvestmentType(project.Type))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type de projet sans barème"})
	}

	inv := models.Investment{
		UserID:          userID,
		ProjectID:       project.ID,
		Type:            project.Type,
		AmountEUR:       body.AmountEUR,
		BonusPercentage: bonus,
		Status:          models.InvestmentStatusPending,
	}
	if err := database.DB.Create(&inv).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création investissement"})
	}

	if stripepay.Enabled() {
		url, sessionID, err := stripepay.CreateInvestmentCheckout(&inv, project.Name)
		if err != nil {
			log.Printf("Erreur checkout Stripe pour l'investissement %d: %v", inv.ID, err)
		} else {
			database.DB.Model(&inv).Updates(map[string]interface{}{
				"stripe_session_id": sessionID,
				"checkout_url":      url,
			})
			inv.CheckoutURL = url
		}
	}

	return c.Status(fiber.StatusCreated).JSON(inv)
}

func listInvestments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var investments []models.Investment
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&investments)
	return c.JSON(fiber.Map{"investments": investments})
}

func getInvestment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var inv models.Investment
	database.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&inv)
	if inv.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Investissement introuvable"})
	}
	return c.JSON(inv)
}

// confirmInvestment est la confirmation manuelle (virement, paiement hors
// ligne). Le parcours normal passe par le webhook Stripe.
func confirmInvestment(c *fiber.Ctx) error {
	var inv models.Investment
	database.DB.First(&inv, c.Params("id"))
	if inv.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Investissement introuvable"})
	}

	calc, err := services.ConfirmInvestment(database.DB, &inv)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if calc == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Investissement déjà traité"})
	}

	return c.JSON(fiber.Map{
		"message":     "Investissement confirmé",
		"calculation": calc,
	})
}
