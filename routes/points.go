package routes

import (
	"errors"

	"make-the-change/database"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/points"

	"github.com/gofiber/fiber/v2"
)

func SetupPointsRoutes(app *fiber.App) {
	grp := app.Group("/points")
	// Les simulations sont publiques : la vitrine les affiche avant connexion.
	grp.Post("/preview/investment", previewInvestmentPoints)
	grp.Post("/preview/subscription", previewSubscriptionPoints)
	grp.Get("/balance", middleware.JWTMiddleware, getBalance)
	grp.Get("/history", middleware.JWTMiddleware, getHistory)
}

func previewInvestmentPoints(c *fiber.Ctx) error {
	var body points.Investment
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	calc, err := points.ComputeInvestmentPoints(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "kind": errorKind(err)})
	}
	return c.JSON(calc)
}

func previewSubscriptionPoints(c *fiber.Ctx) error {
	var body points.Subscription
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	calc, err := points.ComputeSubscriptionPoints(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "kind": errorKind(err)})
	}
	return c.JSON(calc)
}

func getBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Utilisateur introuvable"})
	}
	return c.JSON(fiber.Map{
		"points_balance":        user.PointsBalance,
		"euro_value_equivalent": user.PointsBalance,
	})
}

func getHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var entries []models.PointsTransaction
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries)
	return c.JSON(fiber.Map{"transactions": entries})
}

// errorKind expose la cause de validation pour que les clients puissent
// brancher sans parser le message.
func errorKind(err error) string {
	switch {
	case errors.Is(err, points.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, points.ErrInvalidBonusPercentage):
		return "invalid_bonus_percentage"
	case errors.Is(err, points.ErrInvalidSubscriptionType):
		return "invalid_subscription_type"
	case errors.Is(err, points.ErrInvalidBillingFrequency):
		return "invalid_billing_frequency"
	}
	return "invalid_request"
}
