package routes

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"make-the-change/database"
	"make-the-change/middleware"
	"make-the-change/models"
	"make-the-change/services"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App) {
	grp := app.Group("/orders", middleware.JWTMiddleware)
	grp.Post("/", createOrder)
	grp.Get("/", listOrders)
	grp.Patch("/:id/status", middleware.AdminMiddleware, updateOrderStatus)
}

type orderLinePayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type orderPayload struct {
	Items []orderLinePayload `json:"items"`
}

func createOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body orderPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}
	if len(body.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Commande vide"})
	}

	var order models.Order
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		total := 0
		lines := datatypes.JSONMap{}

		for _, item := range body.Items {
			if item.Quantity <= 0 {
				return errors.New("quantité invalide")
			}

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("produit %d introuvable", item.ProductID)
			}
			if !product.Active || product.Stock < item.Quantity {
				return fmt.Errorf("produit %s indisponible", product.Name)
			}

			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			total += product.PricePoints * item.Quantity
			lines[fmt.Sprintf("%d", product.ID)] = map[string]interface{}{
				"name":         product.Name,
				"quantity":     item.Quantity,
				"price_points": product.PricePoints,
			}
		}

		order = models.Order{
			UserID:      userID,
			Items:       lines,
			TotalPoints: total,
			Status:      models.OrderStatusPaid,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		_, err := services.DebitPoints(tx, userID, total,
			models.TxSpendOrder, fmt.Sprintf("order:%d", order.ID))
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrInsufficientBalance) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "Solde de points insuffisant"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func listOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var orders []models.Order
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders)
	return c.JSON(fiber.Map{"orders": orders})
}

var orderTransitions = map[string][]string{
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

func updateOrderStatus(c *fiber.Ctx) error {
	var order models.Order
	database.DB.First(&order, c.Params("id"))
	if order.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Commande introuvable"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == body.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Transition %s vers %s interdite", order.Status, body.Status),
		})
	}

	// L'annulation recrédite les points débités.
	if body.Status == models.OrderStatusCancelled {
		if _, err := services.CreditPoints(database.DB, order.UserID, order.TotalPoints,
			models.TxAdjustment, fmt.Sprintf("order_cancel:%d", order.ID)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	database.DB.Model(&order).Update("status", body.Status)
	return c.JSON(order)
}
