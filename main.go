package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"make-the-change/database"
	"make-the-change/integrations/stripepay"
	"make-the-change/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("pas de .env trouvé")
	}

	database.ConnectDB()
	stripepay.Init()

	app := fiber.New()

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "make-the-change-api",
			"status":  "ok",
		})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPointsRoutes(app)
	routes.SetupPartnerRoutes(app)
	routes.SetupProjectRoutes(app)
	routes.SetupProductRoutes(app)
	routes.SetupInvestmentRoutes(app)
	routes.SetupSubscriptionRoutes(app)
	routes.SetupOrderRoutes(app)
	routes.SetupStripeRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3030"
	}
	log.Println("🚀 Serveur sur http://localhost:" + port)
	log.Fatal(app.Listen(":" + port))
}
