package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"make-the-change/database"
	"make-the-change/models"
)

func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Non autorisé"})
	}

	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"error": "Token invalide"})
	}

	claims := token.Claims.(jwt.MapClaims)
	c.Locals("user_id", uint(claims["user_id"].(float64)))
	return c.Next()
}

// AdminMiddleware suppose JWTMiddleware déjà passé.
func AdminMiddleware(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	database.DB.First(&user, userID)
	if user.ID == 0 || user.Role != models.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Accès réservé aux administrateurs"})
	}
	return c.Next()
}
