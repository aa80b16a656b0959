package routes

import (
	"make-the-change/database"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app *fiber.App) {
	grp := app.Group("/products")
	grp.Get("/", listProducts)
	grp.Get("/:slug", getProduct)
	grp.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, createProduct)
	grp.Patch("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, updateProduct)
}

type productPayload struct {
	PartnerID   uint   `json:"partner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePoints int    `json:"price_points"`
	Stock       int    `json:"stock"`
	Active      *bool  `json:"active"`
}

func listProducts(c *fiber.Ctx) error {
	var products []models.Product
	database.DB.Where("active = ?", true).Order("name").Find(&products)
	return c.JSON(fiber.Map{"products": products})
}

func getProduct(c *fiber.Ctx) error {
	var product models.Product
	database.DB.Where("slug = ?", c.Params("slug")).First(&product)
	if product.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produit introuvable"})
	}
	return c.JSON(product)
}

func createProduct(c *fiber.Ctx) error {
	var body productPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if body.Name == "" || body.PricePoints <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nom et prix en points requis"})
	}

	product := models.Product{
		PartnerID:   body.PartnerID,
		Name:        body.Name,
		Slug:        utils.GenerateSlug(body.Name),
		Description: body.Description,
		PricePoints: body.PricePoints,
		Stock:       body.Stock,
		Active:      true,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création produit"})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func updateProduct(c *fiber.Ctx) error {
	var product models.Product
	database.DB.First(&product, c.Params("id"))
	if product.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Produit introuvable"})
	}

	var body productPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	updates := map[string]interface{}{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Description != "" {
		updates["description"] = body.Description
	}
	if body.PricePoints > 0 {
		updates["price_points"] = body.PricePoints
	}
	if body.Stock >= 0 {
		updates["stock"] = body.Stock
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	database.DB.Model(&product).Updates(updates)

	return c.JSON(product)
}
