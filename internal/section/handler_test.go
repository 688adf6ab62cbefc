package section

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeSectionApp(h *Handler) *fiber.App {
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

func TestListSections_ActiveOnlyAndOrdered(t *testing.T) {
	seed := []Section{
		{ID: 1, Name: "Ofertas", Slug: "ofertas", Type: "sale", IsActive: true, SortOrder: 2},
		{ID: 2, Name: "Destacados", Slug: "destacados", Type: "featured", IsActive: true, SortOrder: 1},
		{ID: 3, Name: "Draft", Slug: "draft", Type: "custom", IsActive: false, SortOrder: 0},
	}
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	app := makeSectionApp(h)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/sections", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if strings.Contains(body, "Draft") {
		t.Fatalf("inactive section leaked into public list: %s", body)
	}
	if strings.Index(body, "Destacados") > strings.Index(body, "Ofertas") {
		t.Fatalf("sections not ordered by sortOrder: %s", body)
	}

	// admin list includes drafts
	req := httptest.NewRequest("GET", "/api/v1/admin/sections", nil)
	req.Header.Set("X-User-Role", "admin")
	res2, _ := app.Test(req)
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "Draft") {
		t.Fatalf("admin list should include inactive sections: %s", string(b2))
	}
}

func TestCreateSection_Validation(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeSectionApp(h)

	req := httptest.NewRequest("POST", "/api/v1/admin/sections", strings.NewReader(`{"name":"X","slug":"x","type":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bogus type, got %d", res.StatusCode)
	}

	good := `{"name":"Combos","slug":"combos","type":"combo","productIds":[1,2],"isActive":true,"sortOrder":3}`
	req2 := httptest.NewRequest("POST", "/api/v1/admin/sections", strings.NewReader(good))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-Role", "admin")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), `"productIds":[1,2]`) {
		t.Fatalf("productIds not persisted: %s", string(b))
	}
}

func TestSectionAdminRoutes_RequireAdmin(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeSectionApp(h)

	req := httptest.NewRequest("POST", "/api/v1/admin/sections", strings.NewReader(`{"name":"X","slug":"x","type":"sale"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}
