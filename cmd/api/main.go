package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/cart"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/favorite"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/mercadopago"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/order"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/product"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/section"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/siteconfig"
	"github.com/nmartinez-dev/supplement-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB()
	defer db.Close()

	bootstrapSchema(db)

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	configService := siteconfig.NewService(siteconfig.NewPostgresRepository(db))
	configHandler := siteconfig.NewHandler(configService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPostgresRepository(db), productService))
	sectionHandler := section.NewHandler(section.NewService(section.NewPostgresRepository(db)))

	gateway := mercadopago.NewClient(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	orderService := order.NewService(order.NewPostgresRepository(db), productService, configService, cartService, gateway, frontendURL())
	orderHandler := order.NewHandler(orderService)

	app.Use(requestTrace)

	// public surface: catalog browsing, storefront config, auth, and the
	// payment-gateway return callback
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	configHandler.RegisterPublicRoutes(app)
	sectionHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
		Filter:     isPublicRoute,
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	userHandler.RegisterAdminRoutes(app)
	productHandler.RegisterAdminRoutes(app)
	configHandler.RegisterAdminRoutes(app)
	sectionHandler.RegisterAdminRoutes(app)
	orderHandler.RegisterAdminRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}

// isPublicRoute lets unauthenticated requests through for storefront reads
// and the payment confirmation callback; everything else needs a JWT.
func isPublicRoute(c *fiber.Ctx) bool {
	p := c.Path()
	if c.Method() == fiber.MethodGet {
		switch {
		case strings.HasPrefix(p, "/api/v1/products"),
			strings.HasPrefix(p, "/api/v1/sections"),
			p == "/api/v1/site-config":
			return true
		}
	}
	if c.Method() == fiber.MethodPost {
		if strings.HasPrefix(p, "/api/v1/orders/") && strings.HasSuffix(p, "/confirmation") {
			return true
		}
		if p == "/api/v1/sign-up" || p == "/api/v1/sign-in" {
			return true
		}
	}
	return false
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestTrace(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Status = %d, Took = %v\n",
		c.OriginalURL(), c.Method(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB() *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// bootstrapSchema creates the tables on first boot. camelCase column names
// are quoted to match the repository queries.
func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"userId" SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			name TEXT,
			role TEXT NOT NULL DEFAULT 'customer',
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			"productId" SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			category TEXT,
			subcategory TEXT,
			brand TEXT,
			weight TEXT,
			flavors TEXT[] NOT NULL DEFAULT '{}',
			image TEXT,
			images TEXT[] NOT NULL DEFAULT '{}',
			"isOnSale" BOOLEAN NOT NULL DEFAULT FALSE,
			"salePrice" DOUBLE PRECISION,
			"isCombo" BOOLEAN NOT NULL DEFAULT FALSE,
			"isFeatured" BOOLEAN NOT NULL DEFAULT FALSE,
			tags TEXT[] NOT NULL DEFAULT '{}',
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			"userId" INT PRIMARY KEY,
			items JSONB NOT NULL DEFAULT '[]',
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			"userId" INT NOT NULL,
			"productId" INT NOT NULL,
			"addedAt" TEXT,
			UNIQUE ("userId", "productId")
		)`,
		`CREATE TABLE IF NOT EXISTS product_sections (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT,
			description TEXT,
			type TEXT NOT NULL,
			"productIds" BIGINT[] NOT NULL DEFAULT '{}',
			"isActive" BOOLEAN NOT NULL DEFAULT TRUE,
			"sortOrder" INT NOT NULL DEFAULT 0,
			"createdAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS site_config (
			id TEXT PRIMARY KEY,
			config JSONB NOT NULL,
			version INT NOT NULL DEFAULT 1,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			"userId" INT NOT NULL,
			"userEmail" TEXT,
			items JSONB NOT NULL DEFAULT '[]',
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			"shippingCost" DOUBLE PRECISION NOT NULL DEFAULT 0,
			"totalAmount" DOUBLE PRECISION NOT NULL DEFAULT 0,
			"shippingMethod" TEXT,
			"paymentMethod" TEXT,
			"paymentStatus" TEXT,
			"orderStatus" TEXT,
			"shippingDetails" JSONB NOT NULL DEFAULT '{}',
			"paymentId" TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func frontendURL() string {
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://localhost:5173"
}
