package routes

import (
	"make-the-change/database"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/points"
	"make-the-change/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupProjectRoutes(app *fiber.App) {
	grp := app.Group("/projects")
	grp.Get("/", listProjects)
	grp.Get("/:slug", getProject)
	grp.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, createProject)
	grp.Patch("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, updateProject)
}

type projectPayload struct {
	PartnerID   uint    `json:"partner_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	TargetEUR   float64 `json:"target_eur"`
	Status      string  `json:"status"`
}

func listProjects(c *fiber.Ctx) error {
	query := database.DB.Where("status = ?", models.ProjectStatusActive)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var projects []models.Project
	query.Order("created_at DESC").Find(&projects)
	return c.JSON(fiber.Map{"projects": projects})
}

func getProject(c *fiber.Ctx) error {
	var project models.Project
	database.DB.Where("slug = ?", c.Params("slug")).First(&project)
	if project.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Projet introuvable"})
	}
	return c.JSON(project)
}

func createProject(c *fiber.Ctx) error {
	var body projectPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nom requis"})
	}
	if !points.ValidInvestmentType(points.InvestmentType(body.Type)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type de projet inconnu"})
	}

	var partner models.Partner
	database.DB.First(&partner, body.PartnerID)
	if partner.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Partenaire introuvable"})
	}

	project := models.Project{
		PartnerID:   partner.ID,
		Name:        body.Name,
		Slug:        utils.GenerateSlug(body.Name),
		Type:        body.Type,
		Description: body.Description,
		TargetEUR:   body.TargetEUR,
		Status:      models.ProjectStatusDraft,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur création projet"})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func updateProject(c *fiber.Ctx) error {
	var project models.Project
	database.DB.First(&project, c.Params("id"))
	if project.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Projet introuvable"})
	}

	var body projectPayload
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
	if body.TargetEUR > 0 {
		updates["target_eur"] = body.TargetEUR
	}
	if body.Status != "" {
		updates["status"] = body.Status
	}
	database.DB.Model(&project).Updates(updates)

	return c.JSON(project)
}
