package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/nmartinez-dev/supplement-shop-backend/internal/product"
)

func makeCartApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func seededService() *Service {
	sale := 900.0
	prodRepo := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Whey Protein 1kg", Price: 14500, Stock: 10, Category: "proteins", Image: "/img/whey.jpg", Flavors: []string{"chocolate", "vanilla"}},
		{ID: 2, Name: "Creatine", Price: 1200, Stock: 5, Category: "creatine", IsOnSale: true, SalePrice: &sale, Image: "/img/crea.jpg"},
		{ID: 3, Name: "Shaker", Price: 800, Stock: 0, Category: "accessories", Image: "/img/shaker.jpg"},
	})
	return NewService(NewInMemoryRepository(), product.NewService(prodRepo))
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) ([]CartItem, int) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	var items []CartItem
	json.Unmarshal(b, &items)
	return items, res.StatusCode
}

func TestAddItem_SnapshotsPriceAtAddTime(t *testing.T) {
	svc := seededService()
	app := makeCartApp(NewHandler(svc))

	items, code := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1,"quantity":2,"selectedFlavor":"chocolate"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(items) != 1 || items[0].Price != 14500 || items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", items)
	}

	// sale price is snapshotted for on-sale products
	items2, _ := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":2}`)
	if len(items2) != 2 || items2[1].Price != 900 {
		t.Fatalf("sale price not snapshotted: %+v", items2)
	}

	// same product+flavor merges quantity instead of adding a line
	items3, _ := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1,"quantity":1,"selectedFlavor":"chocolate"}`)
	if len(items3) != 2 || items3[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", items3)
	}

	// different flavor gets its own line
	items4, _ := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1,"selectedFlavor":"vanilla"}`)
	if len(items4) != 3 {
		t.Fatalf("expected separate line per flavor, got %+v", items4)
	}
}

func TestAddItem_OutOfStockAndMissing(t *testing.T) {
	app := makeCartApp(NewHandler(seededService()))

	_, code := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":3}`)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 for out-of-stock, got %d", code)
	}
	_, code2 := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":99}`)
	if code2 != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", code2)
	}
}

func TestSetQuantityAndRemove(t *testing.T) {
	app := makeCartApp(NewHandler(seededService()))

	doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":1,"quantity":2}`)
	items, _ := doJSON(t, app, "PATCH", "/api/v1/cart/items", `{"productId":1,"quantity":5}`)
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("quantity update failed: %+v", items)
	}

	// zero quantity removes the line
	items2, _ := doJSON(t, app, "PATCH", "/api/v1/cart/items", `{"productId":1,"quantity":0}`)
	if len(items2) != 0 {
		t.Fatalf("expected empty cart, got %+v", items2)
	}

	_, code := doJSON(t, app, "PATCH", "/api/v1/cart/items", `{"productId":1,"quantity":1}`)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing line, got %d", code)
	}
}

func TestReplaceAndClear(t *testing.T) {
	app := makeCartApp(NewHandler(seededService()))

	// anonymous browser cart uploaded at sign-in; invalid lines dropped
	body := `[{"productId":1,"name":"Whey Protein 1kg","price":13000,"quantity":1,"image":"/img/whey.jpg"},{"productId":0,"quantity":2}]`
	items, code := doJSON(t, app, "PUT", "/api/v1/cart", body)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(items) != 1 || items[0].Price != 13000 {
		t.Fatalf("replace should keep uploaded snapshot prices: %+v", items)
	}

	items2, _ := doJSON(t, app, "DELETE", "/api/v1/cart", "")
	if len(items2) != 0 {
		t.Fatalf("expected cleared cart, got %+v", items2)
	}
}

func TestCart_RequiresAuth(t *testing.T) {
	app := makeCartApp(NewHandler(seededService()))
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}

func TestSubtotal(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Price: 100, Quantity: 2},
		{ProductID: 2, Price: 50.5, Quantity: 1},
	}
	if got := Subtotal(items); got != 250.5 {
		t.Fatalf("expected 250.5, got %v", got)
	}
}
