package routes

import (
	"make-the-change/database"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupPartnerRoutes(app *fiber.App) {
	grp := app.Group("/partners")
	grp.Get("/", listPartners)
	grp.Get("/:slug", getPartner)
	grp.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, createPartner)
	grp.Patch("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, updatePartner)
}

type partnerPayload struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Status  string `json:"status"`
}

func listPartners(c *fiber.Ctx) error {
	var partners []models.Partner
	database.DB.Where("status = ?", models.PartnerStatusActive).Order("name").Find(&partners)
	return c.JSON(fiber.Map{"partners": partners})
}

func getPartner(c *fiber.Ctx) error {
	var partner models.Partner
	database.DB.Preload("Projects").Where("slug = ?", c.Params("slug")).First(&partner)
	if partner.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partenaire introuvable"})
	}
	return c.JSON(partner)
}

func createPartner(c *fiber.Ctx) error {
	var body partnerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nom requis"})
	}

	partner := models.Partner{
		Name:    body.Name,
		Slug:    utils.GenerateSlug(body.Name),
		Country: body.Country,
		Status:  models.PartnerStatusActive,
	}
	if err := database.DB.Create(&partner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création partenaire"})
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

func updatePartner(c *fiber.Ctx) error {
	var partner models.Partner
	database.DB.First(&partner, c.Params("id"))
	if partner.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partenaire introuvable"})
	}

	var body partnerPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	updates := map[string]interface{}{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Country != "" {
		updates["country"] = body.Country
	}
	if body.Status != "" {
		updates["status"] = body.Status
	}
	database.DB.Model(&partner).Updates(updates)

	return c.JSON(partner)
}
