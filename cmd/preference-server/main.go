// Standalone proxy for the payment gateway's preference-creation endpoint.
// Storefronts that cannot hold the access token call this instead of the
// gateway directly; the request and response shapes match the gateway's.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/mercadopago"
)

type createPreferenceRequest struct {
	Items []mercadopago.Item `json:"items"`
	Payer mercadopago.Payer  `json:"payer"`
}

func main() {
	_ = godotenv.Load()

	client := mercadopago.NewClient(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	frontendURL := strings.TrimRight(os.Getenv("FRONTEND_URL"), "/")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Post("/create-preference", func(c *fiber.Ctx) error {
		payload := new(createPreferenceRequest)
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if !validItems(payload.Items) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid items format"})
		}
		if payload.Payer.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payer email"})
		}

		pref, err := client.CreatePreference(mercadopago.PreferenceRequest{
			Items: payload.Items,
			Payer: mercadopago.Payer{Email: payload.Payer.Email},
			BackURLs: mercadopago.BackURLs{
				Success: frontendURL + "/order-confirmation",
				Failure: frontendURL + "/checkout",
				Pending: frontendURL + "/checkout",
			},
			AutoReturn: "approved",
		})
		if err != nil {
			log.Printf("create preference failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"id": pref.ID})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("preference server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

// validItems mirrors the gateway's minimum requirements: every line needs a
// title, a positive quantity, and a non-negative unit price.
func validItems(items []mercadopago.Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if it.Title == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return false
		}
	}
	return true
}
