package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func ptrString(s string) *string { return &s }

func ptrFloat(f float64) *float64 { return &f }

func makeAdminApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": 1, "role": role}})
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app)
	return app
}

func TestListProducts_Filters(t *testing.T) {
	seed := []Product{
		{ID: 1, Name: "Whey Protein", Category: "proteins", Brand: ptrString("ENA"), IsFeatured: true},
		{ID: 2, Name: "Creatine Monohydrate", Category: "creatine", Brand: ptrString("Star"), IsOnSale: true, SalePrice: ptrFloat(900), Price: 1200},
		{ID: 3, Name: "Whey Isolate", Category: "proteins", Brand: ptrString("Star"), Tags: []string{"lactose-free"}},
	}
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	app := makeAdminApp(h)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?category=proteins", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, "Whey Protein") || !strings.Contains(body, "Whey Isolate") {
		t.Fatalf("category filter missing products: %s", body)
	}
	if strings.Contains(body, "Creatine") {
		t.Fatalf("category filter leaked other categories: %s", body)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?onSale=true", nil))
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "Creatine") || strings.Contains(string(b2), "Whey") {
		t.Fatalf("onSale filter wrong: %s", string(b2))
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?tag=lactose-free", nil))
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "Whey Isolate") || strings.Contains(string(b3), "Creatine") {
		t.Fatalf("tag filter wrong: %s", string(b3))
	}

	// pagination happens before the response is built
	res4, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?limit=1&offset=1", nil))
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), "Creatine") || strings.Contains(string(b4), "Whey") {
		t.Fatalf("pagination wrong: %s", string(b4))
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAdminApp(h)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/99", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAdminApp(h)

	// missing name and category
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"price":100}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "name") || !strings.Contains(string(b), "category") {
		t.Fatalf("expected field errors, got %s", string(b))
	}

	// sale price must undercut list price
	bad := `{"name":"BCAA","category":"aminoacids","price":500,"isOnSale":true,"salePrice":600}`
	req2 := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(bad))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-Role", "admin")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for salePrice >= price, got %d", res2.StatusCode)
	}

	good := `{"name":"BCAA","category":"aminoacids","price":500,"stock":10,"flavors":["lemon","cola"]}`
	req3 := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(good))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-Role", "admin")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "lemon") {
		t.Fatalf("flavors not persisted: %s", string(b3))
	}
}

func TestAdminProductRoutes_RequireAdmin(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAdminApp(h)

	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"name":"X","category":"c","price":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "customer")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer role, got %d", res.StatusCode)
	}
}

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: 1000}
	if p.EffectivePrice() != 1000 {
		t.Fatalf("expected list price")
	}
	p.IsOnSale = true
	p.SalePrice = ptrFloat(750)
	if p.EffectivePrice() != 750 {
		t.Fatalf("expected sale price")
	}
	p.SalePrice = nil
	if p.EffectivePrice() != 1000 {
		t.Fatalf("on sale without a sale price falls back to list price")
	}
}
